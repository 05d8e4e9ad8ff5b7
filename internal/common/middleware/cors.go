package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// ExposedHeaders are the response headers a browser client reads from DXF
// downloads.
var ExposedHeaders = []string{"Content-Disposition", "X-Skipped-Nodes"}

// CORS allows every origin and method, including Authorization for the
// project routes.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: ExposedHeaders,
	})
}
