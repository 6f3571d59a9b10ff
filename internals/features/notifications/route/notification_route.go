// file: internals/features/notifications/route/notification_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/notifications/controller"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewNotificationController(db)

	notifications := user.Group("/notifications")
	notifications.Get("/", ctl.ListMine)
	notifications.Post("/:id/read", ctl.MarkRead)
}
