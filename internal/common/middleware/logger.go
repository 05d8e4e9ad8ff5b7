package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger is the access log middleware shared by all services. Each line is
// tagged with the service name so the three processes can share one console.
func Logger(service string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     accessFormat(service),
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// accessFormat renders the log line template for service.
func accessFormat(service string) string {
	tag := strings.ToUpper(strings.TrimSpace(service))
	if tag == "" {
		tag = "HTTP"
	}
	return "[${time}] [" + tag + "] ${status} - ${latency} ${method} ${path}" +
		" | ${bytesSent}B ${reqHeader:Content-Type}\n"
}
