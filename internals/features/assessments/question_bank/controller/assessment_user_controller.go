// file: internals/features/assessments/question_bank/controller/assessment_user_controller.go
package controller

import (
	"math/rand"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/assessments/errs"
	qdto "belajarku_backend/internals/features/assessments/question_bank/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
	"belajarku_backend/internals/features/assessments/question_bank/service"
	helper "belajarku_backend/internals/helpers"
)

/* =========================================================
   CONTROLLER: Assessment (sisi siswa)
   - hanya yang sudah publish
   - kunci jawaban tidak pernah ikut response
========================================================= */

type AssessmentUserController struct {
	DB      *gorm.DB
	Service *service.QuestionBankService
}

func NewAssessmentUserController(db *gorm.DB) *AssessmentUserController {
	return &AssessmentUserController{
		DB:      db,
		Service: service.NewQuestionBankService(db),
	}
}

// GET /api/u/topics/:topic_id/assessments
func (ctl *AssessmentUserController) ListByTopic(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("topic_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Topic ID tidak valid")
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.ListPublishedByTopic(c.Context(), topicID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := make([]*qdto.AssessmentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, qdto.FromModelAssessment(&rows[i], nil, false))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar assessment", items, &pg)
}

// GET /api/u/assessments/:id — soal untuk dikerjakan, tanpa kunci
func (ctl *AssessmentUserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, questions, err := ctl.Service.GetAssessment(c.Context(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if !m.AssessmentIsPublished {
		// assessment draft tidak terlihat dari sisi siswa
		return helper.JsonAppError(c, errs.NotFound("assessment tidak ditemukan"))
	}

	if m.AssessmentRandomizeQuestions {
		shuffleQuestions(questions)
	}
	return helper.JsonOK(c, "Detail assessment",
		qdto.FromModelAssessment(m, questions, false))
}

func shuffleQuestions(questions []qmodel.QuestionModel) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
