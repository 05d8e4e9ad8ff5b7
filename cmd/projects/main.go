package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/config"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/common/middleware"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/standards"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/handlers"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/repository"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/service"
)

// ============================================================
// Projects Service
// ============================================================

func main() {
	cfg := config.Load("3002")

	db, err := repository.OpenSQLite(cfg.ProjectsDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	table, err := standards.Load(cfg.StandardsFile)
	if err != nil {
		log.Fatalf("load standards: %v", err)
	}
	projects := service.NewProjectService(repo, fittings.New(table), cfg.CompanyName)
	sessions := service.NewSessionManager(cfg.AccessCode)
	projectsHandler := handlers.NewProjectsHandler(projects, sessions)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Projects Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("projects"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Project Routes
	// ============================================================

	projectsHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Projects Service on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.ProjectsDBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
