// file: internals/features/assessments/attempts/model/attempt_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* =============================================================================
   ENUM-like: status attempt
   Siklus: in_progress → (graded | pending_review) → graded
============================================================================= */

type AttemptStatus string

const (
	AttemptStatusInProgress    AttemptStatus = "in_progress"
	AttemptStatusPendingReview AttemptStatus = "pending_review"
	AttemptStatusGraded        AttemptStatus = "graded"
)

func (s AttemptStatus) String() string { return string(s) }
func (s AttemptStatus) Valid() bool {
	switch s {
	case AttemptStatusInProgress, AttemptStatusPendingReview, AttemptStatusGraded:
		return true
	default:
		return false
	}
}

func (s *AttemptStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AttemptStatus(v)
	case []byte:
		*s = AttemptStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for AttemptStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid AttemptStatus: %q", *s)
	}
	return nil
}

func (s AttemptStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid AttemptStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: assessment_attempts
   - partial unique index: satu attempt in_progress per (assessment, siswa)
   - attempt_max_score = snapshot total poin soal saat mulai (soal bisa
     berubah sebelum ada attempt, snapshot menjaga konsistensi riwayat)
============================================================================= */

type AttemptModel struct {
	AttemptID           uuid.UUID `gorm:"column:attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"attempt_id"`
	AttemptAssessmentID uuid.UUID `gorm:"column:attempt_assessment_id;type:uuid;not null;index:idx_attempt_assessment;uniqueIndex:uq_attempt_active,where:attempt_status = 'in_progress',priority:1" json:"attempt_assessment_id"`
	AttemptStudentID    uuid.UUID `gorm:"column:attempt_student_id;type:uuid;not null;index:idx_attempt_student;uniqueIndex:uq_attempt_active,where:attempt_status = 'in_progress',priority:2" json:"attempt_student_id"`

	// Nomor urut per (assessment, siswa), mulai dari 1
	AttemptNumber int           `gorm:"column:attempt_number;not null" json:"attempt_number"`
	AttemptStatus AttemptStatus `gorm:"column:attempt_status;type:varchar(16);not null;default:'in_progress'" json:"attempt_status"`

	AttemptStartedAt  time.Time  `gorm:"column:attempt_started_at;type:timestamptz;not null" json:"attempt_started_at"`
	AttemptFinishedAt *time.Time `gorm:"column:attempt_finished_at;type:timestamptz" json:"attempt_finished_at,omitempty"`

	AttemptMaxScore float64 `gorm:"column:attempt_max_score;type:numeric(8,2);not null" json:"attempt_max_score"`

	// Null selama in_progress / pending_review
	AttemptScore        *float64 `gorm:"column:attempt_score;type:numeric(8,2)" json:"attempt_score,omitempty"`
	AttemptScorePercent *float64 `gorm:"column:attempt_score_percent;type:numeric(6,2)" json:"attempt_score_percent,omitempty"`
	AttemptIsPassed     *bool    `gorm:"column:attempt_is_passed" json:"attempt_is_passed,omitempty"`

	AttemptFeedback *string `gorm:"column:attempt_feedback;type:text" json:"attempt_feedback,omitempty"`

	AttemptCreatedAt time.Time `gorm:"column:attempt_created_at;type:timestamptz;not null;autoCreateTime" json:"attempt_created_at"`
	AttemptUpdatedAt time.Time `gorm:"column:attempt_updated_at;type:timestamptz;not null;autoUpdateTime" json:"attempt_updated_at"`

	AttemptResponses []ResponseModel `gorm:"foreignKey:ResponseAttemptID;references:AttemptID" json:"attempt_responses,omitempty"`
}

func (AttemptModel) TableName() string { return "assessment_attempts" }

func (m *AttemptModel) IsActive() bool { return m.AttemptStatus == AttemptStatusInProgress }

// IsCompleted: sudah disubmit (dinilai penuh atau menunggu review manual).
func (m *AttemptModel) IsCompleted() bool { return m.AttemptStatus != AttemptStatusInProgress }

// ElapsedMinutes: durasi pengerjaan, hanya berarti setelah submit.
func (m *AttemptModel) ElapsedMinutes() float64 {
	if m.AttemptFinishedAt == nil {
		return 0
	}
	return m.AttemptFinishedAt.Sub(m.AttemptStartedAt).Minutes()
}
