// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"belajarku_backend/internals/constants"
	attemptroute "belajarku_backend/internals/features/assessments/attempts/route"
	qbankroute "belajarku_backend/internals/features/assessments/question_bank/route"
	statsroute "belajarku_backend/internals/features/assessments/stats/route"
	notifroute "belajarku_backend/internals/features/notifications/route"
	"belajarku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh route aplikasi.
//
//	/api/u — butuh login (siswa & pengajar)
//	/api/a — butuh login + role pengajar ke atas
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api")

	user := api.Group("/u", auth.AuthMiddleware())
	qbankroute.AssessmentUserRoutes(user, db)
	attemptroute.AttemptUserRoutes(user, db)
	notifroute.NotificationUserRoutes(user, db)

	admin := api.Group("/a",
		auth.AuthMiddleware(),
		auth.OnlyRoles(constants.RoleErrorTeacher("assessment"), constants.TeacherAndAbove...),
	)
	qbankroute.AssessmentAdminRoutes(admin, db)
	attemptroute.AttemptAdminRoutes(admin, db)
	statsroute.StatsAdminRoutes(admin, db)
}
