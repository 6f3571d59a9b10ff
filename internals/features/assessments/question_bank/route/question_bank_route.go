// file: internals/features/assessments/question_bank/route/question_bank_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/question_bank/controller"
)

// AssessmentAdminRoutes: sisi pengajar (sudah lewat auth + role guard).
func AssessmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssessmentController(db)

	assessments := admin.Group("/assessments")
	assessments.Post("/", ctl.Create)
	assessments.Get("/", ctl.ListMine)
	assessments.Get("/:id", ctl.GetByID)
	assessments.Patch("/:id", ctl.Update)
	assessments.Delete("/:id", ctl.Delete)
	assessments.Post("/:id/publish", ctl.Publish)
	assessments.Put("/:id/questions", ctl.ReplaceQuestions)
}

// AssessmentUserRoutes: sisi siswa (sudah lewat auth).
func AssessmentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssessmentUserController(db)

	user.Get("/topics/:topic_id/assessments", ctl.ListByTopic)
	user.Get("/assessments/:id", ctl.GetByID)
}
