// file: internals/features/assessments/attempts/service/attempt_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	amodel "belajarku_backend/internals/features/assessments/attempts/model"
	"belajarku_backend/internals/features/assessments/errs"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
	qservice "belajarku_backend/internals/features/assessments/question_bank/service"
)

/* =========================================================
   SERVICE: Attempt lifecycle (start / find / list)
========================================================= */

type AttemptService struct {
	DB *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{DB: db}
}

// AttemptLimitReached: max_attempts nil = tanpa batas. Attempt yang masih
// in_progress tidak dihitung ke kuota.
func AttemptLimitReached(maxAttempts *int, completed int64) bool {
	if maxAttempts == nil {
		return false
	}
	return completed >= int64(*maxAttempts)
}

// StartAttempt memulai attempt baru. Idempoten: bila masih ada attempt
// in_progress untuk (assessment, siswa), attempt itu yang dikembalikan.
func (s *AttemptService) StartAttempt(
	ctx context.Context,
	assessmentID uuid.UUID,
	studentID uuid.UUID,
) (*amodel.AttemptModel, error) {
	var attempt amodel.AttemptModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock baris assessment supaya start paralel dari siswa yang sama
		// terserialisasi; partial unique index jadi jaring pengaman terakhir.
		var assessment qmodel.AssessmentModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("assessment tidak ditemukan")
			}
			return err
		}
		if !assessment.AssessmentIsPublished {
			return errs.NotFound("assessment tidak ditemukan")
		}

		// Attempt aktif? kembalikan yang sama
		var active amodel.AttemptModel
		err := tx.
			Where("attempt_assessment_id = ? AND attempt_student_id = ? AND attempt_status = ?",
				assessmentID, studentID, amodel.AttemptStatusInProgress).
			First(&active).Error
		if err == nil {
			attempt = active
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Kuota: hanya attempt yang sudah disubmit yang dihitung
		var completed int64
		if err := tx.Model(&amodel.AttemptModel{}).
			Where("attempt_assessment_id = ? AND attempt_student_id = ? AND attempt_status <> ?",
				assessmentID, studentID, amodel.AttemptStatusInProgress).
			Count(&completed).Error; err != nil {
			return err
		}
		if AttemptLimitReached(assessment.AssessmentMaxAttempts, completed) {
			return errs.LimitExceeded("batas maksimal attempt sudah tercapai")
		}

		var maxNumber int
		if err := tx.Model(&amodel.AttemptModel{}).
			Where("attempt_assessment_id = ? AND attempt_student_id = ?", assessmentID, studentID).
			Select("COALESCE(MAX(attempt_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		// Snapshot nilai maksimum dari soal saat ini
		var questions []qmodel.QuestionModel
		if err := tx.
			Where("question_assessment_id = ?", assessmentID).
			Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return errs.Conflict("assessment belum punya soal")
		}

		attempt = amodel.AttemptModel{
			AttemptAssessmentID: assessmentID,
			AttemptStudentID:    studentID,
			AttemptNumber:       maxNumber + 1,
			AttemptStatus:       amodel.AttemptStatusInProgress,
			AttemptStartedAt:    time.Now().UTC(),
			AttemptMaxScore:     qservice.TotalPoints(questions),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			if errs.IsUniqueViolation(err) {
				return errs.Conflict("masih ada attempt yang sedang berjalan")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindActiveAttempt mengembalikan attempt in_progress milik siswa, atau
// NotFound bila tidak ada.
func (s *AttemptService) FindActiveAttempt(
	ctx context.Context,
	assessmentID uuid.UUID,
	studentID uuid.UUID,
) (*amodel.AttemptModel, error) {
	var attempt amodel.AttemptModel
	err := s.DB.WithContext(ctx).
		Where("attempt_assessment_id = ? AND attempt_student_id = ? AND attempt_status = ?",
			assessmentID, studentID, amodel.AttemptStatusInProgress).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("tidak ada attempt yang sedang berjalan")
		}
		return nil, err
	}
	return &attempt, nil
}

// GetAttempt memuat attempt + seluruh jawabannya.
func (s *AttemptService) GetAttempt(
	ctx context.Context,
	attemptID uuid.UUID,
) (*amodel.AttemptModel, error) {
	var attempt amodel.AttemptModel
	err := s.DB.WithContext(ctx).
		Preload("AttemptResponses").
		First(&attempt, "attempt_id = ?", attemptID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("attempt tidak ditemukan")
		}
		return nil, err
	}
	return &attempt, nil
}

// GetAttemptForInstructor: seperti GetAttempt, tapi hanya untuk pembuat
// assessment-nya.
func (s *AttemptService) GetAttemptForInstructor(
	ctx context.Context,
	attemptID uuid.UUID,
	instructorID uuid.UUID,
) (*amodel.AttemptModel, error) {
	attempt, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := s.assertAssessmentOwner(ctx, attempt.AttemptAssessmentID, instructorID); err != nil {
		return nil, err
	}
	return attempt, nil
}

// DeleteAttempt menghapus attempt beserta seluruh jawabannya dalam satu
// transaksi. Ditolak (Conflict) begitu ada jawaban yang sudah ternilai:
// riwayat penilaian tidak boleh hilang. Boleh dilakukan siswa pemilik
// attempt atau pembuat assessment-nya.
func (s *AttemptService) DeleteAttempt(
	ctx context.Context,
	attemptID uuid.UUID,
	callerID uuid.UUID,
) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt amodel.AttemptModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "attempt_id = ?", attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("attempt tidak ditemukan")
			}
			return err
		}

		if attempt.AttemptStudentID != callerID {
			var assessment qmodel.AssessmentModel
			if err := tx.
				First(&assessment, "assessment_id = ?", attempt.AttemptAssessmentID).Error; err != nil {
				return err
			}
			if assessment.AssessmentCreatedBy != callerID {
				return errs.Authorization("bukan attempt milik Anda")
			}
		}

		var graded int64
		if err := tx.Model(&amodel.ResponseModel{}).
			Where("response_attempt_id = ? AND (response_points_earned IS NOT NULL OR response_graded_at IS NOT NULL)",
				attempt.AttemptID).
			Count(&graded).Error; err != nil {
			return err
		}
		if graded > 0 {
			return errs.Conflict("attempt sudah punya penilaian; tidak bisa dihapus")
		}

		if err := tx.
			Where("response_attempt_id = ?", attempt.AttemptID).
			Delete(&amodel.ResponseModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&attempt).Error
	})
}

// ListByStudent: riwayat attempt siswa pada satu assessment.
func (s *AttemptService) ListByStudent(
	ctx context.Context,
	assessmentID uuid.UUID,
	studentID uuid.UUID,
) ([]amodel.AttemptModel, error) {
	var rows []amodel.AttemptModel
	err := s.DB.WithContext(ctx).
		Where("attempt_assessment_id = ? AND attempt_student_id = ?", assessmentID, studentID).
		Order("attempt_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByAssessment: sisi pengajar, semua attempt satu assessment.
// Hanya pembuat assessment yang boleh.
func (s *AttemptService) ListByAssessment(
	ctx context.Context,
	assessmentID uuid.UUID,
	instructorID uuid.UUID,
	offset, limit int,
) ([]amodel.AttemptModel, int64, error) {
	if err := s.assertAssessmentOwner(ctx, assessmentID, instructorID); err != nil {
		return nil, 0, err
	}

	q := s.DB.WithContext(ctx).Model(&amodel.AttemptModel{}).
		Where("attempt_assessment_id = ?", assessmentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []amodel.AttemptModel
	if err := q.Order("attempt_started_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *AttemptService) assertAssessmentOwner(ctx context.Context, assessmentID, instructorID uuid.UUID) error {
	var assessment qmodel.AssessmentModel
	if err := s.DB.WithContext(ctx).
		First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("assessment tidak ditemukan")
		}
		return err
	}
	if assessment.AssessmentCreatedBy != instructorID {
		return errs.Authorization("bukan assessment milik Anda")
	}
	return nil
}
