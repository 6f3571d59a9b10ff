// file: internals/features/assessments/attempts/model/response_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =============================================================================
   MODEL: attempt_responses
   Payload jawaban per tipe soal disimpan di kolom jsonb:
   - pilihan        → response_selected_option_ids: ["uuid", ...]
   - short_answer   → response_answer_text
   - matching       → response_matched_pairs: [{"left":"..","right":".."}, ...]
   - code           → response_answer_code (dinilai manual)
============================================================================= */

type ResponseModel struct {
	ResponseID         uuid.UUID `gorm:"column:response_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"response_id"`
	ResponseAttemptID  uuid.UUID `gorm:"column:response_attempt_id;type:uuid;not null;uniqueIndex:uq_response_attempt_question,priority:1" json:"response_attempt_id"`
	ResponseQuestionID uuid.UUID `gorm:"column:response_question_id;type:uuid;not null;uniqueIndex:uq_response_attempt_question,priority:2" json:"response_question_id"`

	ResponseSelectedOptionIDs datatypes.JSON `gorm:"column:response_selected_option_ids;type:jsonb" json:"response_selected_option_ids,omitempty"`
	ResponseAnswerText        *string        `gorm:"column:response_answer_text;type:text" json:"response_answer_text,omitempty"`
	ResponseAnswerCode        *string        `gorm:"column:response_answer_code;type:text" json:"response_answer_code,omitempty"`
	ResponseMatchedPairs      datatypes.JSON `gorm:"column:response_matched_pairs;type:jsonb" json:"response_matched_pairs,omitempty"`

	// Null selama menunggu review manual (soal code)
	ResponseIsCorrect    *bool      `gorm:"column:response_is_correct" json:"response_is_correct,omitempty"`
	ResponsePointsEarned *float64   `gorm:"column:response_points_earned;type:numeric(6,2)" json:"response_points_earned,omitempty"`
	ResponseGradedAt     *time.Time `gorm:"column:response_graded_at;type:timestamptz" json:"response_graded_at,omitempty"`

	ResponseCreatedAt time.Time `gorm:"column:response_created_at;type:timestamptz;not null;autoCreateTime" json:"response_created_at"`
	ResponseUpdatedAt time.Time `gorm:"column:response_updated_at;type:timestamptz;not null;autoUpdateTime" json:"response_updated_at"`
}

func (ResponseModel) TableName() string { return "attempt_responses" }

// IsGraded: sudah punya nilai (otomatis atau hasil review manual).
func (m *ResponseModel) IsGraded() bool { return m.ResponsePointsEarned != nil }
