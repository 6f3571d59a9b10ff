// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

var startedAt = time.Now()

// BaseRoutes: endpoint dasar tanpa auth.
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "belajarku-assessment",
			"status":  "running",
		})
	})

	app.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	})
}
