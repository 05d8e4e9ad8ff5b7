package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe reports that the process is serving.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness checks the upstream services' own readiness endpoints.
type Readiness struct {
	client    *http.Client
	upstreams map[string]string // name -> base URL
}

func NewReadiness(timeout time.Duration, upstreams map[string]string) *Readiness {
	return &Readiness{client: &http.Client{Timeout: timeout}, upstreams: upstreams}
}

// Probe answers 200 when every upstream is ready and 503 otherwise, with
// the state of each upstream.
func (r *Readiness) Probe(c fiber.Ctx) error {
	states := make(fiber.Map, len(r.upstreams))
	ready := true
	for name, base := range r.upstreams {
		if r.check(c, base+"/health/ready") {
			states[name] = "ready"
		} else {
			states[name] = "unavailable"
			ready = false
		}
	}
	if !ready {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "upstreams": states})
	}
	return c.JSON(fiber.Map{"status": "ready", "upstreams": states})
}

func (r *Readiness) check(c fiber.Ctx, url string) bool {
	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// StartupProbe reports that the application has started.
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
