// file: internals/features/assessments/attempts/route/attempt_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/attempts/controller"
	"belajarku_backend/internals/middlewares"
)

// AttemptUserRoutes: sisi siswa (sudah lewat auth).
func AttemptUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttemptUserController(db)

	user.Post("/attempts", ctl.Start)
	user.Get("/attempts/:id", ctl.GetByID)
	user.Delete("/attempts/:id", ctl.Delete)
	// submit dibatasi terpisah, klien quiz suka retry agresif
	user.Post("/attempts/:id/submit", middlewares.SubmitRateLimiter(), ctl.Submit)

	user.Get("/assessments/:assessment_id/attempts", ctl.ListMine)
	user.Get("/assessments/:assessment_id/attempts/active", ctl.FindActive)
}

// AttemptAdminRoutes: sisi pengajar (sudah lewat auth + role guard).
func AttemptAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttemptAdminController(db)

	admin.Get("/assessments/:assessment_id/attempts", ctl.ListByAssessment)
	admin.Get("/attempts/:id", ctl.GetByID)
	admin.Delete("/attempts/:id", ctl.Delete)
	admin.Patch("/attempts/:id/feedback", ctl.SetFeedback)
	admin.Patch("/responses/:id/grade", ctl.GradeResponse)
}
