package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/config"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/middleware"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/gateway/handlers"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/gateway/proxy"
)

const apiPrefix = "/api/v1"

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load("3000")
	upstreamTimeout := time.Duration(cfg.WriteTimeout) * time.Second

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("gateway"))
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check & Docs Routes
	// ============================================================

	readiness := handlers.NewReadiness(2*time.Second, map[string]string{
		"drafter":  cfg.DrafterURL,
		"projects": cfg.ProjectsURL,
	})
	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", readiness.Probe)
	app.Get("/health/startup", handlers.StartupProbe)

	docs, err := handlers.NewDocs(cfg.APIDocFile)
	if err != nil {
		log.Fatalf("Failed to load API docs: %v", err)
	}
	app.Get("/docs", docs.UI("/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", docs.Spec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(apiPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Duct Drafter API v1",
			"status":  "ok",
		})
	})

	p := proxy.New(upstreamTimeout)

	// Drafter Service
	drafter := p.To(cfg.DrafterURL, apiPrefix)
	api.Get("/archetypes", drafter)
	api.Post("/generate", drafter)
	api.Post("/render", drafter)
	api.Post("/convert", drafter)
	api.Post("/transcode", drafter)
	api.Post("/export", drafter)
	api.Get("/standards/:diameter", drafter)

	// Projects Service
	projects := p.To(cfg.ProjectsURL, apiPrefix)
	api.Post("/login", projects)
	api.Post("/logout", projects)
	api.Get("/projects", projects)
	api.Post("/projects", projects)
	api.Get("/projects/:id", projects)
	api.Delete("/projects/:id", projects)
	api.Get("/projects/:id/dxf", projects)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying drafter routes to %s, project routes to %s", cfg.DrafterURL, cfg.ProjectsURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
