// file: internals/features/assessments/attempts/service/review_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	amodel "belajarku_backend/internals/features/assessments/attempts/model"
	"belajarku_backend/internals/features/assessments/errs"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
	notifservice "belajarku_backend/internals/features/notifications/service"
)

/* =========================================================
   SERVICE: Review manual (pengajar)
   - menilai jawaban soal code
   - attempt otomatis final (graded) saat jawaban terakhir dinilai
========================================================= */

type ReviewService struct {
	DB       *gorm.DB
	Notifier *notifservice.NotificationService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		DB:       db,
		Notifier: notifservice.NewNotificationService(db),
	}
}

// GradeResponse memberi nilai manual satu jawaban. Hanya pembuat
// assessment yang boleh; hanya selama attempt pending_review.
func (s *ReviewService) GradeResponse(
	ctx context.Context,
	responseID uuid.UUID,
	instructorID uuid.UUID,
	req *adto.GradeResponseRequest,
) (*amodel.AttemptModel, error) {
	var attempt amodel.AttemptModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var response amodel.ResponseModel
		if err := tx.
			First(&response, "response_id = ?", responseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("jawaban tidak ditemukan")
			}
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "attempt_id = ?", response.ResponseAttemptID).Error; err != nil {
			return err
		}
		if attempt.AttemptStatus != amodel.AttemptStatusPendingReview {
			return errs.Conflict("attempt tidak sedang menunggu review")
		}

		assessment, err := s.ownedAssessment(tx, attempt.AttemptAssessmentID, instructorID)
		if err != nil {
			return err
		}

		var question qmodel.QuestionModel
		if err := tx.
			First(&question, "question_id = ?", response.ResponseQuestionID).Error; err != nil {
			return err
		}
		if req.ResponsePointsEarned > question.QuestionPoints {
			return errs.Validation("nilai %.2f melebihi poin maksimal soal (%.2f)",
				req.ResponsePointsEarned, question.QuestionPoints)
		}

		now := time.Now().UTC()
		points := req.ResponsePointsEarned
		isCorrect := points >= question.QuestionPoints
		if req.ResponseIsCorrect != nil {
			isCorrect = *req.ResponseIsCorrect
		}
		response.ResponsePointsEarned = &points
		response.ResponseIsCorrect = &isCorrect
		response.ResponseGradedAt = &now
		if err := tx.Save(&response).Error; err != nil {
			return err
		}

		return s.finalizeIfFullyGraded(tx, &attempt, assessment)
	})
	if err != nil {
		return nil, err
	}

	if attempt.AttemptStatus == amodel.AttemptStatusGraded {
		s.Notifier.SendAsync(
			attempt.AttemptStudentID,
			"Review selesai",
			fmt.Sprintf("Attempt #%d selesai direview: %.2f dari %.2f poin",
				attempt.AttemptNumber, *attempt.AttemptScore, attempt.AttemptMaxScore),
			[]string{"assessment", "graded"},
		)
	}
	return &attempt, nil
}

// SetAttemptFeedback menulis catatan pengajar pada attempt yang sudah
// disubmit, lalu memberi tahu siswanya.
func (s *ReviewService) SetAttemptFeedback(
	ctx context.Context,
	attemptID uuid.UUID,
	instructorID uuid.UUID,
	feedback string,
) (*amodel.AttemptModel, error) {
	var attempt amodel.AttemptModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "attempt_id = ?", attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("attempt tidak ditemukan")
			}
			return err
		}
		if attempt.IsActive() {
			return errs.Conflict("attempt belum disubmit")
		}
		if _, err := s.ownedAssessment(tx, attempt.AttemptAssessmentID, instructorID); err != nil {
			return err
		}

		attempt.AttemptFeedback = &feedback
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.SendAsync(
		attempt.AttemptStudentID,
		"Feedback pengajar",
		fmt.Sprintf("Attempt #%d mendapat feedback baru", attempt.AttemptNumber),
		[]string{"assessment", "feedback"},
	)
	return &attempt, nil
}

/* =========================================================
   INTERNAL
========================================================= */

func (s *ReviewService) ownedAssessment(tx *gorm.DB, assessmentID, instructorID uuid.UUID) (*qmodel.AssessmentModel, error) {
	var assessment qmodel.AssessmentModel
	if err := tx.
		First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
		return nil, err
	}
	if assessment.AssessmentCreatedBy != instructorID {
		return nil, errs.Authorization("bukan assessment milik Anda")
	}
	return &assessment, nil
}

// finalizeIfFullyGraded menutup attempt bila tidak ada lagi jawaban
// yang menunggu nilai: skor dijumlah ulang dari seluruh response.
func (s *ReviewService) finalizeIfFullyGraded(tx *gorm.DB, attempt *amodel.AttemptModel, assessment *qmodel.AssessmentModel) error {
	var ungraded int64
	if err := tx.Model(&amodel.ResponseModel{}).
		Where("response_attempt_id = ? AND response_points_earned IS NULL", attempt.AttemptID).
		Count(&ungraded).Error; err != nil {
		return err
	}
	if ungraded > 0 {
		return nil
	}

	var total float64
	if err := tx.Model(&amodel.ResponseModel{}).
		Where("response_attempt_id = ?", attempt.AttemptID).
		Select("COALESCE(SUM(response_points_earned), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	percent := ScorePercent(total, attempt.AttemptMaxScore)
	passed := assessment.IsPassedBy(total, attempt.AttemptMaxScore)

	attempt.AttemptStatus = amodel.AttemptStatusGraded
	attempt.AttemptScore = &total
	attempt.AttemptScorePercent = &percent
	attempt.AttemptIsPassed = &passed
	return tx.Save(attempt).Error
}
