package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat semua request; reqid diisi middleware
// request-ID di main.go supaya log bisa dikorelasikan per request.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeZone:   "UTC",
		Format:     "${time} reqid=${locals:reqid} ${status} ${method} ${path} ip=${ip} ${latency}\n",
	})
}
