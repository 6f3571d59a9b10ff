// file: internals/features/assessments/attempts/controller/attempt_user_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	"belajarku_backend/internals/features/assessments/attempts/service"
	"belajarku_backend/internals/features/assessments/errs"
	helper "belajarku_backend/internals/helpers"
)

/* =========================================================
   CONTROLLER: Attempt (sisi siswa)
========================================================= */

type AttemptUserController struct {
	DB       *gorm.DB
	Attempts *service.AttemptService
	Scoring  *service.ScoringService
	validate *validator.Validate
}

func NewAttemptUserController(db *gorm.DB) *AttemptUserController {
	return &AttemptUserController{
		DB:       db,
		Attempts: service.NewAttemptService(db),
		Scoring:  service.NewScoringService(db),
	}
}

func (ctl *AttemptUserController) ensureValidator() *validator.Validate {
	if ctl.validate == nil {
		ctl.validate = validator.New()
	}
	return ctl.validate
}

// POST /api/u/attempts — mulai (atau lanjutkan) attempt
func (ctl *AttemptUserController) Start(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req adto.StartAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	attempt, err := ctl.Attempts.StartAttempt(c.Context(), req.AttemptAssessmentID, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Attempt dimulai", adto.FromModelAttempt(attempt, false))
}

// GET /api/u/assessments/:assessment_id/attempts/active
func (ctl *AttemptUserController) FindActive(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	attempt, err := ctl.Attempts.FindActiveAttempt(c.Context(), assessmentID, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Attempt aktif", adto.FromModelAttempt(attempt, false))
}

// POST /api/u/attempts/:id/submit — submit final
func (ctl *AttemptUserController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req adto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	attempt, err := ctl.Scoring.SubmitAttempt(c.Context(), id, userID, &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Jawaban berhasil disubmit", adto.FromModelAttempt(attempt, true))
}

// GET /api/u/attempts/:id — hasil attempt milik sendiri
func (ctl *AttemptUserController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	attempt, err := ctl.Attempts.GetAttempt(c.Context(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if attempt.AttemptStudentID != userID {
		return helper.JsonAppError(c, errs.Authorization("bukan attempt milik Anda"))
	}
	return helper.JsonOK(c, "Detail attempt", adto.FromModelAttempt(attempt, true))
}

// DELETE /api/u/attempts/:id — batalkan attempt yang belum ternilai
func (ctl *AttemptUserController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "Attempt dibatalkan", fiber.Map{
		"attempt_id": id,
	})
}

// GET /api/u/assessments/:assessment_id/attempts — riwayat sendiri
func (ctl *AttemptUserController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	rows, err := ctl.Attempts.ListByStudent(c.Context(), assessmentID, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := make([]*adto.AttemptResponse, 0, len(rows))
	for i := range rows {
		items = append(items, adto.FromModelAttempt(&rows[i], false))
	}
	return helper.JsonOK(c, "Riwayat attempt", items)
}
