package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/config"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/middleware"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/handlers"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/standards"
)

// ============================================================
// Drafter Service
// ============================================================

func main() {
	cfg := config.Load("3001")

	table, err := standards.Load(cfg.StandardsFile)
	if err != nil {
		log.Fatalf("load standards: %v", err)
	}
	drafter := handlers.NewDrafterHandler(fittings.New(table), cfg.CompanyName)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Drafter Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("drafter"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Drafter Routes
	// ============================================================

	drafter.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Drafter Service on %s (env: %s, standards: %q)", addr, cfg.Environment, cfg.StandardsFile)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
