// file: internals/features/assessments/question_bank/dto/assessment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

/* ==========================================================================================
   REQUEST — CREATE
========================================================================================== */

type CreateAssessmentRequest struct {
	AssessmentTopicID uuid.UUID `json:"assessment_topic_id" validate:"required"`

	AssessmentTitle       string  `json:"assessment_title" validate:"required,max=180"`
	AssessmentDescription *string `json:"assessment_description" validate:"omitempty"`

	AssessmentTimeLimitMinutes   *int                    `json:"assessment_time_limit_minutes" validate:"omitempty,min=1"`
	AssessmentPassingScore       float64                 `json:"assessment_passing_score" validate:"omitempty,min=0"`
	AssessmentPassingScoreUnit   *qmodel.PassingScoreUnit `json:"assessment_passing_score_unit" validate:"omitempty,oneof=percent points"`
	AssessmentMaxAttempts        *int                    `json:"assessment_max_attempts" validate:"omitempty,min=1"`
	AssessmentRandomizeQuestions bool                    `json:"assessment_randomize_questions"`

	// Soal boleh langsung disertakan saat create
	Questions []QuestionSpec `json:"questions" validate:"omitempty,dive"`
}

func (r *CreateAssessmentRequest) ToModel(createdBy uuid.UUID) *qmodel.AssessmentModel {
	m := &qmodel.AssessmentModel{
		AssessmentTopicID:            r.AssessmentTopicID,
		AssessmentCreatedBy:          createdBy,
		AssessmentTitle:              r.AssessmentTitle,
		AssessmentDescription:        r.AssessmentDescription,
		AssessmentTimeLimitMinutes:   r.AssessmentTimeLimitMinutes,
		AssessmentPassingScore:       r.AssessmentPassingScore,
		AssessmentPassingScoreUnit:   qmodel.PassingScorePercent,
		AssessmentMaxAttempts:        r.AssessmentMaxAttempts,
		AssessmentRandomizeQuestions: r.AssessmentRandomizeQuestions,
	}
	if r.AssessmentPassingScoreUnit != nil {
		m.AssessmentPassingScoreUnit = *r.AssessmentPassingScoreUnit
	}
	return m
}

/* ==========================================================================================
   REQUEST — UPDATE/PATCH (PARTIAL)
   Pointer supaya field yang tidak dikirim tidak diubah. Perubahan struktur
   soal TIDAK lewat sini (pakai ReplaceQuestions).
========================================================================================== */

type UpdateAssessmentRequest struct {
	AssessmentTitle       *string `json:"assessment_title" validate:"omitempty,max=180"`
	AssessmentDescription *string `json:"assessment_description" validate:"omitempty"`

	AssessmentTimeLimitMinutes   *int                     `json:"assessment_time_limit_minutes" validate:"omitempty,min=1"`
	AssessmentPassingScore       *float64                 `json:"assessment_passing_score" validate:"omitempty,min=0"`
	AssessmentPassingScoreUnit   *qmodel.PassingScoreUnit `json:"assessment_passing_score_unit" validate:"omitempty,oneof=percent points"`
	AssessmentMaxAttempts        *int                     `json:"assessment_max_attempts" validate:"omitempty,min=1"`
	AssessmentRandomizeQuestions *bool                    `json:"assessment_randomize_questions" validate:"omitempty"`
}

func (r *UpdateAssessmentRequest) ApplyToModel(m *qmodel.AssessmentModel) {
	if r.AssessmentTitle != nil {
		m.AssessmentTitle = *r.AssessmentTitle
	}
	if r.AssessmentDescription != nil {
		m.AssessmentDescription = r.AssessmentDescription
	}
	if r.AssessmentTimeLimitMinutes != nil {
		m.AssessmentTimeLimitMinutes = r.AssessmentTimeLimitMinutes
	}
	if r.AssessmentPassingScore != nil {
		m.AssessmentPassingScore = *r.AssessmentPassingScore
	}
	if r.AssessmentPassingScoreUnit != nil {
		m.AssessmentPassingScoreUnit = *r.AssessmentPassingScoreUnit
	}
	if r.AssessmentMaxAttempts != nil {
		m.AssessmentMaxAttempts = r.AssessmentMaxAttempts
	}
	if r.AssessmentRandomizeQuestions != nil {
		m.AssessmentRandomizeQuestions = *r.AssessmentRandomizeQuestions
	}
}

/* ==========================================================================================
   RESPONSE DTO
========================================================================================== */

type AssessmentResponse struct {
	AssessmentID        uuid.UUID `json:"assessment_id"`
	AssessmentTopicID   uuid.UUID `json:"assessment_topic_id"`
	AssessmentCreatedBy uuid.UUID `json:"assessment_created_by"`

	AssessmentTitle       string  `json:"assessment_title"`
	AssessmentDescription *string `json:"assessment_description,omitempty"`

	AssessmentTimeLimitMinutes   *int                    `json:"assessment_time_limit_minutes,omitempty"`
	AssessmentPassingScore       float64                 `json:"assessment_passing_score"`
	AssessmentPassingScoreUnit   qmodel.PassingScoreUnit `json:"assessment_passing_score_unit"`
	AssessmentMaxAttempts        *int                    `json:"assessment_max_attempts,omitempty"`
	AssessmentRandomizeQuestions bool                    `json:"assessment_randomize_questions"`

	AssessmentIsPublished bool       `json:"assessment_is_published"`
	AssessmentPublishedAt *time.Time `json:"assessment_published_at,omitempty"`

	AssessmentCreatedAt time.Time `json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time `json:"assessment_updated_at"`

	Questions []QuestionResponse `json:"questions,omitempty"`
}

func FromModelAssessment(m *qmodel.AssessmentModel, questions []qmodel.QuestionModel, withAnswers bool) *AssessmentResponse {
	resp := &AssessmentResponse{
		AssessmentID:                 m.AssessmentID,
		AssessmentTopicID:            m.AssessmentTopicID,
		AssessmentCreatedBy:          m.AssessmentCreatedBy,
		AssessmentTitle:              m.AssessmentTitle,
		AssessmentDescription:        m.AssessmentDescription,
		AssessmentTimeLimitMinutes:   m.AssessmentTimeLimitMinutes,
		AssessmentPassingScore:       m.AssessmentPassingScore,
		AssessmentPassingScoreUnit:   m.AssessmentPassingScoreUnit,
		AssessmentMaxAttempts:        m.AssessmentMaxAttempts,
		AssessmentRandomizeQuestions: m.AssessmentRandomizeQuestions,
		AssessmentIsPublished:        m.AssessmentIsPublished,
		AssessmentPublishedAt:        m.AssessmentPublishedAt,
		AssessmentCreatedAt:          m.AssessmentCreatedAt,
		AssessmentUpdatedAt:          m.AssessmentUpdatedAt,
	}
	if len(questions) > 0 {
		resp.Questions = make([]QuestionResponse, 0, len(questions))
		for i := range questions {
			resp.Questions = append(resp.Questions, *FromModelQuestion(&questions[i], withAnswers))
		}
	}
	return resp
}
