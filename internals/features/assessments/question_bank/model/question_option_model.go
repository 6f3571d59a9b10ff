// file: internals/features/assessments/question_bank/model/question_option_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OptionModel struct {
	OptionID         uuid.UUID `gorm:"column:option_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"option_id"`
	OptionQuestionID uuid.UUID `gorm:"column:option_question_id;type:uuid;not null;index:idx_option_question,priority:1" json:"option_question_id"`
	OptionPosition   int       `gorm:"column:option_position;not null;index:idx_option_question,priority:2" json:"option_position"`
	OptionText       string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	OptionIsCorrect  bool      `gorm:"column:option_is_correct;not null;default:false" json:"option_is_correct"`
	OptionExplanation *string  `gorm:"column:option_explanation;type:text" json:"option_explanation,omitempty"`

	OptionCreatedAt time.Time `gorm:"column:option_created_at;type:timestamptz;not null;autoCreateTime" json:"option_created_at"`
}

func (OptionModel) TableName() string { return "question_options" }
