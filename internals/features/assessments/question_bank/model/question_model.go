// file: internals/features/assessments/question_bank/model/question_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* =============================================================================
   ENUM-like: tipe soal
============================================================================= */

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeMatching       QuestionType = "matching"
	QuestionTypeCode           QuestionType = "code"
)

func (t QuestionType) String() string { return string(t) }
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeTrueFalse,
		QuestionTypeShortAnswer, QuestionTypeMatching, QuestionTypeCode:
		return true
	default:
		return false
	}
}

// AutoGradable: semua tipe kecuali code bisa dinilai otomatis.
func (t QuestionType) AutoGradable() bool { return t != QuestionTypeCode }

func (t *QuestionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

/* =============================================================================
   MODEL: assessment_questions
============================================================================= */

type QuestionModel struct {
	QuestionID           uuid.UUID    `gorm:"column:question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	QuestionAssessmentID uuid.UUID    `gorm:"column:question_assessment_id;type:uuid;not null;index:idx_question_assessment,priority:1" json:"question_assessment_id"`
	QuestionPosition     int          `gorm:"column:question_position;not null;index:idx_question_assessment,priority:2" json:"question_position"`
	QuestionType         QuestionType `gorm:"column:question_type;type:varchar(16);not null" json:"question_type"`
	QuestionText         string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionPoints       float64      `gorm:"column:question_points;type:numeric(6,2);not null;default:1" json:"question_points"`
	QuestionExplanation  *string      `gorm:"column:question_explanation;type:text" json:"question_explanation,omitempty"`

	// Khusus tipe code (tidak pernah dinilai otomatis)
	QuestionCodeSnippet  *string `gorm:"column:question_code_snippet;type:text" json:"question_code_snippet,omitempty"`
	QuestionCodeLanguage *string `gorm:"column:question_code_language;type:varchar(32)" json:"question_code_language,omitempty"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;type:timestamptz;not null;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;type:timestamptz;not null;autoUpdateTime" json:"question_updated_at"`

	// Relasi (diisi lewat Preload; cascade dikelola eksplisit di service)
	QuestionOptions       []OptionModel       `gorm:"foreignKey:OptionQuestionID;references:QuestionID" json:"question_options,omitempty"`
	QuestionMatchingPairs []MatchingPairModel `gorm:"foreignKey:PairQuestionID;references:QuestionID" json:"question_matching_pairs,omitempty"`
}

func (QuestionModel) TableName() string { return "assessment_questions" }

/* ===================================================================
   Helper methods
=================================================================== */

func (m *QuestionModel) IsChoice() bool {
	switch m.QuestionType {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeTrueFalse:
		return true
	default:
		return false
	}
}

// CorrectOptionIDs mengembalikan id opsi yang benar (urutan posisi).
func (m *QuestionModel) CorrectOptionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m.QuestionOptions))
	for _, op := range m.QuestionOptions {
		if op.OptionIsCorrect {
			ids = append(ids, op.OptionID)
		}
	}
	return ids
}

// CanonicalAnswer: untuk short_answer, opsi pertama yang ditandai benar
// adalah jawaban teks kanonis.
func (m *QuestionModel) CanonicalAnswer() (string, bool) {
	for _, op := range m.QuestionOptions {
		if op.OptionIsCorrect {
			return op.OptionText, true
		}
	}
	return "", false
}
