// file: internals/features/notifications/controller/notification_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/notifications/service"
	helper "belajarku_backend/internals/helpers"
)

type NotificationController struct {
	DB      *gorm.DB
	Service *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:      db,
		Service: service.NewNotificationService(db),
	}
}

// GET /api/u/notifications
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.ListByUser(c.Context(), userID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Notifikasi", rows, &pg)
}

// POST /api/u/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctl.Service.MarkRead(c.Context(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", fiber.Map{
		"notification_id": id,
	})
}
