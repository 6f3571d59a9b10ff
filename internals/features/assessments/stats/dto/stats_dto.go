// file: internals/features/assessments/stats/dto/stats_dto.go
package dto

import (
	"github.com/google/uuid"

	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

/* ==========================================================================================
   RESPONSE DTO — statistik agregat satu assessment (read-only)
========================================================================================== */

type OptionStat struct {
	OptionID   uuid.UUID `json:"option_id"`
	OptionText string    `json:"option_text"`
	IsCorrect  bool      `json:"is_correct"`
	// Berapa kali opsi ini dipilih di seluruh attempt yang disubmit
	SelectedCount int64 `json:"selected_count"`
}

type QuestionStat struct {
	QuestionID       uuid.UUID           `json:"question_id"`
	QuestionPosition int                 `json:"question_position"`
	QuestionType     qmodel.QuestionType `json:"question_type"`
	QuestionText     string              `json:"question_text"`

	AnswerCount  int64   `json:"answer_count"`
	CorrectCount int64   `json:"correct_count"`
	CorrectRate  float64 `json:"correct_rate"`

	// Hanya terisi untuk soal bertipe pilihan
	OptionDistribution []OptionStat `json:"option_distribution,omitempty"`
}

type AssessmentStatsResponse struct {
	AssessmentID uuid.UUID `json:"assessment_id"`

	TotalAttempts     int64 `json:"total_attempts"`
	CompletedAttempts int64 `json:"completed_attempts"`
	GradedAttempts    int64 `json:"graded_attempts"`
	PassedAttempts    int64 `json:"passed_attempts"`

	// Persentase 0..100 terhadap attempt yang sudah disubmit
	PassRate float64 `json:"pass_rate"`

	AverageScorePercent float64 `json:"average_score_percent"`
	AverageTimeMinutes  float64 `json:"average_time_minutes"`

	Questions []QuestionStat `json:"questions"`
}
