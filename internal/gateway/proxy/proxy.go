package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// forwardedHeaders are copied from the client request to the upstream.
var forwardedHeaders = []string{"Content-Type", "Authorization", "Accept"}

// ============================================================
// Proxy Handler
// ============================================================

type Proxy struct {
	client *http.Client
}

func New(timeout time.Duration) *Proxy {
	return &Proxy{client: &http.Client{Timeout: timeout}}
}

// To forwards to upstream base joined with the request path below prefix,
// keeping the query string. With prefix "/api/v1", a request to
// /api/v1/projects/7/dxf?x=1 goes to base + /projects/7/dxf?x=1.
func (p *Proxy) To(base, prefix string) fiber.Handler {
	base = strings.TrimRight(base, "/")
	return func(c fiber.Ctx) error {
		target := base + strings.TrimPrefix(c.Path(), prefix)
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			target += "?" + string(q)
		}
		return p.Forward(c, target)
	}
}

// Forward sends the request body unchanged to targetURL. Multipart bodies
// keep their boundary because the Content-Type header is copied as is.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] %s %s -> %s (%d bytes)", c.Method(), c.Path(), targetURL, len(c.Body()))

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, h := range forwardedHeaders {
		if v := c.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && key != "Content-Length" {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
