// file: internals/features/assessments/question_bank/controller/assessment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/errs"
	qdto "belajarku_backend/internals/features/assessments/question_bank/dto"
	"belajarku_backend/internals/features/assessments/question_bank/service"
	helper "belajarku_backend/internals/helpers"
)

/* =========================================================
   CONTROLLER: Assessment (sisi pengajar)
========================================================= */

type AssessmentController struct {
	DB       *gorm.DB
	Service  *service.QuestionBankService
	validate *validator.Validate
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{
		DB:      db,
		Service: service.NewQuestionBankService(db),
	}
}

func (ctl *AssessmentController) ensureValidator() *validator.Validate {
	if ctl.validate == nil {
		ctl.validate = validator.New()
	}
	return ctl.validate
}

// POST /api/a/assessments
func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req qdto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m, questions, err := ctl.Service.DefineAssessment(c.Context(), &req, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Assessment berhasil dibuat",
		qdto.FromModelAssessment(m, questions, true))
}

// GET /api/a/assessments — daftar milik pengajar yang login
func (ctl *AssessmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.ListByInstructor(c.Context(), userID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := make([]*qdto.AssessmentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, qdto.FromModelAssessment(&rows[i], nil, true))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar assessment", items, &pg)
}

// GET /api/a/assessments/:id — detail lengkap beserta kunci jawaban
func (ctl *AssessmentController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, questions, err := ctl.Service.GetAssessment(c.Context(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if m.AssessmentCreatedBy != userID {
		return helper.JsonAppError(c, errs.Authorization("bukan assessment milik Anda"))
	}
	return helper.JsonOK(c, "Detail assessment",
		qdto.FromModelAssessment(m, questions, true))
}

// PATCH /api/a/assessments/:id
func (ctl *AssessmentController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req qdto.UpdateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m, err := ctl.Service.UpdateAssessment(c.Context(), id, &req, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Assessment berhasil diperbarui",
		qdto.FromModelAssessment(m, nil, true))
}

// POST /api/a/assessments/:id/publish
func (ctl *AssessmentController) Publish(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := ctl.Service.PublishAssessment(c.Context(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Assessment berhasil dipublish",
		qdto.FromModelAssessment(m, nil, true))
}

// DELETE /api/a/assessments/:id
func (ctl *AssessmentController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctl.Service.DeleteAssessment(c.Context(), id, userID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Assessment berhasil dihapus", fiber.Map{
		"assessment_id": id,
	})
}

// PUT /api/a/assessments/:id/questions — ganti seluruh set soal
func (ctl *AssessmentController) ReplaceQuestions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req qdto.ReplaceQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.ensureValidator().Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	questions, err := ctl.Service.ReplaceQuestions(c.Context(), id, req.Questions, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := make([]*qdto.QuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, qdto.FromModelQuestion(&questions[i], true))
	}
	return helper.JsonUpdated(c, "Soal berhasil diganti", items)
}
