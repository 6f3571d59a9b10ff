// file: internals/features/assessments/question_bank/model/assessment_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: satuan passing score ('percent' | 'points')
============================================================================= */

type PassingScoreUnit string

const (
	PassingScorePercent PassingScoreUnit = "percent"
	PassingScorePoints  PassingScoreUnit = "points"
)

func (u PassingScoreUnit) String() string { return string(u) }
func (u PassingScoreUnit) Valid() bool {
	switch u {
	case PassingScorePercent, PassingScorePoints:
		return true
	default:
		return false
	}
}

func (u *PassingScoreUnit) Scan(value any) error {
	if value == nil {
		*u = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*u = PassingScoreUnit(v)
	case []byte:
		*u = PassingScoreUnit(string(v))
	default:
		return fmt.Errorf("unsupported type for PassingScoreUnit: %T", value)
	}
	if !u.Valid() {
		return fmt.Errorf("invalid PassingScoreUnit: %q", *u)
	}
	return nil
}

func (u PassingScoreUnit) Value() (driver.Value, error) {
	if u == "" {
		return nil, nil
	}
	if !u.Valid() {
		return nil, fmt.Errorf("invalid PassingScoreUnit: %q", u)
	}
	return string(u), nil
}

/* =============================================================================
   MODEL: assessments
============================================================================= */

type AssessmentModel struct {
	AssessmentID uuid.UUID `gorm:"column:assessment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"assessment_id"`

	// Referensi eksternal (topic CRUD di luar subsystem ini)
	AssessmentTopicID   uuid.UUID `gorm:"column:assessment_topic_id;type:uuid;not null;index:idx_assessment_topic" json:"assessment_topic_id"`
	AssessmentCreatedBy uuid.UUID `gorm:"column:assessment_created_by;type:uuid;not null;index:idx_assessment_created_by" json:"assessment_created_by"`

	AssessmentTitle       string  `gorm:"column:assessment_title;type:varchar(180);not null" json:"assessment_title"`
	AssessmentDescription *string `gorm:"column:assessment_description;type:text" json:"assessment_description,omitempty"`

	AssessmentTimeLimitMinutes   *int             `gorm:"column:assessment_time_limit_minutes" json:"assessment_time_limit_minutes,omitempty"`
	AssessmentPassingScore       float64          `gorm:"column:assessment_passing_score;type:numeric(7,3);not null;default:0" json:"assessment_passing_score"`
	AssessmentPassingScoreUnit   PassingScoreUnit `gorm:"column:assessment_passing_score_unit;type:varchar(8);not null;default:'percent'" json:"assessment_passing_score_unit"`
	AssessmentMaxAttempts        *int             `gorm:"column:assessment_max_attempts" json:"assessment_max_attempts,omitempty"` // NULL = tanpa batas
	AssessmentRandomizeQuestions bool             `gorm:"column:assessment_randomize_questions;not null;default:false" json:"assessment_randomize_questions"`

	AssessmentIsPublished bool       `gorm:"column:assessment_is_published;not null;default:false;index:idx_assessment_published" json:"assessment_is_published"`
	AssessmentPublishedAt *time.Time `gorm:"column:assessment_published_at;type:timestamptz" json:"assessment_published_at,omitempty"`

	AssessmentCreatedAt time.Time      `gorm:"column:assessment_created_at;type:timestamptz;not null;autoCreateTime" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time      `gorm:"column:assessment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"assessment_updated_at"`
	AssessmentDeletedAt gorm.DeletedAt `gorm:"column:assessment_deleted_at;index" json:"assessment_deleted_at,omitempty"`
}

func (AssessmentModel) TableName() string { return "assessments" }

/* ===================================================================
   Helper methods
=================================================================== */

// IsPassedBy menentukan lulus/tidak berdasarkan satuan passing score.
// maxScore = snapshot total poin attempt (denominator percent).
func (m *AssessmentModel) IsPassedBy(score, maxScore float64) bool {
	if m.AssessmentPassingScoreUnit == PassingScorePoints {
		return score >= m.AssessmentPassingScore
	}
	percent := 0.0
	if maxScore > 0 {
		percent = score / maxScore * 100
	}
	return percent >= m.AssessmentPassingScore
}
