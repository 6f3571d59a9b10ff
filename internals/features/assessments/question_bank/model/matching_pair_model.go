// file: internals/features/assessments/question_bank/model/matching_pair_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type MatchingPairModel struct {
	PairID         uuid.UUID `gorm:"column:pair_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"pair_id"`
	PairQuestionID uuid.UUID `gorm:"column:pair_question_id;type:uuid;not null;index:idx_pair_question,priority:1" json:"pair_question_id"`
	PairPosition   int       `gorm:"column:pair_position;not null;index:idx_pair_question,priority:2" json:"pair_position"`
	PairLeft       string    `gorm:"column:pair_left;type:text;not null" json:"pair_left"`
	PairRight      string    `gorm:"column:pair_right;type:text;not null" json:"pair_right"`

	PairCreatedAt time.Time `gorm:"column:pair_created_at;type:timestamptz;not null;autoCreateTime" json:"pair_created_at"`
}

func (MatchingPairModel) TableName() string { return "question_matching_pairs" }
