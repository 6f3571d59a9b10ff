// file: internals/features/assessments/attempts/controller/attempt_admin_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	"belajarku_backend/internals/features/assessments/attempts/service"
	helper "belajarku_backend/internals/helpers"
)

/* =========================================================
   CONTROLLER: Attempt (sisi pengajar)
   - daftar attempt per assessment
   - review manual soal code + feedback
========================================================= */

type AttemptAdminController struct {
	DB       *gorm.DB
	Attempts *service.AttemptService
	Review   *service.ReviewService
	validate *validator.Validate
}

func NewAttemptAdminController(db *gorm.DB) *AttemptAdminController {
	return &AttemptAdminController{
		DB:       db,
		Attempts: service.NewAttemptService(db),
		Review:   service.NewReviewService(db),
	}
}

func (ctl *AttemptAdminController) ensureValidator() *validator.Validate {
	if ctl.validate == nil {
		ctl.validate = validator.New()
	}
	return ctl.validate
}

// GET /api/a/assessments/:assessment_id/attempts
func (ctl *AttemptAdminController) ListByAssessment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Attempts.ListByAssessment(c.Context(), assessmentID, userID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := make([]*adto.AttemptResponse, 0, len(rows))
	for i := range rows {
		items = append(items, adto.FromModelAttempt(&rows[i], false))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar attempt", items, &pg)
}

// GET /api/a/attempts/:id — detail attempt + seluruh jawaban
// (hanya pembuat assessment-nya)
func (ctl *AttemptAdminController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	attempt, err := ctl.Attempts.GetAttemptForInstructor(c.Context(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Detail attempt", adto.FromModelAttempt(attempt, true))
}

// DELETE /api/a/attempts/:id — hapus attempt yang belum ternilai
func (ctl *AttemptAdminController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctl.Attempts.DeleteAttempt(c.Context(), id, userID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Attempt berhasil dihapus", fiber.Map{
		"attempt_id": id,
	})
}

// PATCH /api/a/responses/:id/grade — nilai manual satu jawaban
func (ctl *AttemptAdminController) GradeResponse(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req adto.GradeResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	attempt, err := ctl.Review.GradeResponse(c.Context(), id, userID, &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Jawaban berhasil dinilai", adto.FromModelAttempt(attempt, false))
}

// PATCH /api/a/attempts/:id/feedback
func (ctl *AttemptAdminController) SetFeedback(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req adto.AttemptFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	attempt, err := ctl.Review.SetAttemptFeedback(c.Context(), id, userID, req.AttemptFeedback)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Feedback tersimpan", adto.FromModelAttempt(attempt, false))
}
