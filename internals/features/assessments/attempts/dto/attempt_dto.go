// file: internals/features/assessments/attempts/dto/attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	amodel "belajarku_backend/internals/features/assessments/attempts/model"
)

/* ==========================================================================================
   REQUEST — START / SUBMIT
========================================================================================== */

type StartAttemptRequest struct {
	AttemptAssessmentID uuid.UUID `json:"attempt_assessment_id" validate:"required"`
}

// MatchedPair: satu pasangan jawaban soal matching.
type MatchedPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// AnswerSpec: jawaban satu soal. Field mana yang dipakai tergantung tipe
// soalnya; field lain diabaikan.
type AnswerSpec struct {
	QuestionID        uuid.UUID     `json:"question_id" validate:"required"`
	SelectedOptionIDs []uuid.UUID   `json:"selected_option_ids" validate:"omitempty"`
	AnswerText        *string       `json:"answer_text" validate:"omitempty"`
	AnswerCode        *string       `json:"answer_code" validate:"omitempty"`
	MatchedPairs      []MatchedPair `json:"matched_pairs" validate:"omitempty,dive"`
}

// SubmitAttemptRequest: submit final. Soal yang tidak ada jawabannya
// dihitung kosong (0 poin).
type SubmitAttemptRequest struct {
	Answers []AnswerSpec `json:"answers" validate:"omitempty,dive"`
}

/* ==========================================================================================
   REQUEST — REVIEW MANUAL (pengajar)
========================================================================================== */

type GradeResponseRequest struct {
	ResponsePointsEarned float64 `json:"response_points_earned" validate:"min=0"`
	ResponseIsCorrect    *bool   `json:"response_is_correct" validate:"omitempty"`
}

type AttemptFeedbackRequest struct {
	AttemptFeedback string `json:"attempt_feedback" validate:"required"`
}

/* ==========================================================================================
   RESPONSE DTO
========================================================================================== */

type ResponseItem struct {
	ResponseID         uuid.UUID `json:"response_id"`
	ResponseAttemptID  uuid.UUID `json:"response_attempt_id"`
	ResponseQuestionID uuid.UUID `json:"response_question_id"`

	ResponseSelectedOptionIDs []uuid.UUID   `json:"response_selected_option_ids,omitempty"`
	ResponseAnswerText        *string       `json:"response_answer_text,omitempty"`
	ResponseAnswerCode        *string       `json:"response_answer_code,omitempty"`
	ResponseMatchedPairs      []MatchedPair `json:"response_matched_pairs,omitempty"`

	ResponseIsCorrect    *bool      `json:"response_is_correct,omitempty"`
	ResponsePointsEarned *float64   `json:"response_points_earned,omitempty"`
	ResponseGradedAt     *time.Time `json:"response_graded_at,omitempty"`
}

type AttemptResponse struct {
	AttemptID           uuid.UUID `json:"attempt_id"`
	AttemptAssessmentID uuid.UUID `json:"attempt_assessment_id"`
	AttemptStudentID    uuid.UUID `json:"attempt_student_id"`

	AttemptNumber int                  `json:"attempt_number"`
	AttemptStatus amodel.AttemptStatus `json:"attempt_status"`

	AttemptStartedAt  time.Time  `json:"attempt_started_at"`
	AttemptFinishedAt *time.Time `json:"attempt_finished_at,omitempty"`

	AttemptMaxScore     float64  `json:"attempt_max_score"`
	AttemptScore        *float64 `json:"attempt_score,omitempty"`
	AttemptScorePercent *float64 `json:"attempt_score_percent,omitempty"`
	AttemptIsPassed     *bool    `json:"attempt_is_passed,omitempty"`

	AttemptFeedback *string `json:"attempt_feedback,omitempty"`

	Responses []ResponseItem `json:"responses,omitempty"`
}

func FromModelAttempt(m *amodel.AttemptModel, withResponses bool) *AttemptResponse {
	resp := &AttemptResponse{
		AttemptID:           m.AttemptID,
		AttemptAssessmentID: m.AttemptAssessmentID,
		AttemptStudentID:    m.AttemptStudentID,
		AttemptNumber:       m.AttemptNumber,
		AttemptStatus:       m.AttemptStatus,
		AttemptStartedAt:    m.AttemptStartedAt,
		AttemptFinishedAt:   m.AttemptFinishedAt,
		AttemptMaxScore:     m.AttemptMaxScore,
		AttemptScore:        m.AttemptScore,
		AttemptScorePercent: m.AttemptScorePercent,
		AttemptIsPassed:     m.AttemptIsPassed,
		AttemptFeedback:     m.AttemptFeedback,
	}
	if withResponses && len(m.AttemptResponses) > 0 {
		resp.Responses = make([]ResponseItem, 0, len(m.AttemptResponses))
		for i := range m.AttemptResponses {
			resp.Responses = append(resp.Responses, *FromModelResponse(&m.AttemptResponses[i]))
		}
	}
	return resp
}

func FromModelResponse(m *amodel.ResponseModel) *ResponseItem {
	item := &ResponseItem{
		ResponseID:           m.ResponseID,
		ResponseAttemptID:    m.ResponseAttemptID,
		ResponseQuestionID:   m.ResponseQuestionID,
		ResponseAnswerText:   m.ResponseAnswerText,
		ResponseAnswerCode:   m.ResponseAnswerCode,
		ResponseIsCorrect:    m.ResponseIsCorrect,
		ResponsePointsEarned: m.ResponsePointsEarned,
		ResponseGradedAt:     m.ResponseGradedAt,
	}
	item.ResponseSelectedOptionIDs = DecodeOptionIDs(m.ResponseSelectedOptionIDs)
	item.ResponseMatchedPairs = DecodeMatchedPairs(m.ResponseMatchedPairs)
	return item
}
