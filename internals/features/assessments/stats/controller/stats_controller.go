// file: internals/features/assessments/stats/controller/stats_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/stats/service"
	helper "belajarku_backend/internals/helpers"
)

type StatsController struct {
	DB      *gorm.DB
	Service *service.StatsService
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{
		DB:      db,
		Service: service.NewStatsService(db),
	}
}

// GET /api/a/assessments/:assessment_id/stats
func (ctl *StatsController) GetByAssessment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	stats, err := ctl.Service.GetAssessmentStatistics(c.Context(), assessmentID, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Statistik assessment", stats)
}
