// file: internals/features/assessments/stats/route/stats_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/stats/controller"
)

func StatsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)

	admin.Get("/assessments/:assessment_id/stats", ctl.GetByAssessment)
}
