// file: internals/features/assessments/attempts/service/scoring_service.go
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
   SERVICE: Scoring (submit final, satu transaksi)
========================================================= */

type ScoringService struct {
	DB       *gorm.DB
	Notifier *notifservice.NotificationService
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{
		DB:       db,
		Notifier: notifservice.NewNotificationService(db),
	}
}

// ScorePercent: persentase skor terhadap nilai maksimum; max 0 → 0.
func ScorePercent(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

// SubmitAttempt menilai seluruh jawaban dan menutup attempt dalam satu
// transaksi. Soal yang tidak dijawab tetap dapat baris response (0 poin)
// supaya riwayat & statistik lengkap.
//
// Hasil:
//   - semua soal ternilai otomatis → status graded, skor final
//   - ada soal code berisi jawaban → status pending_review, skor null
func (s *ScoringService) SubmitAttempt(
	ctx context.Context,
	attemptID uuid.UUID,
	studentID uuid.UUID,
	req *adto.SubmitAttemptRequest,
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
		if attempt.AttemptStudentID != studentID {
			return errs.Authorization("bukan attempt milik Anda")
		}
		if !attempt.IsActive() {
			return errs.Conflict("attempt sudah disubmit")
		}

		var assessment qmodel.AssessmentModel
		if err := tx.
			First(&assessment, "assessment_id = ?", attempt.AttemptAssessmentID).Error; err != nil {
			return err
		}

		var questions []qmodel.QuestionModel
		if err := tx.
			Where("question_assessment_id = ?", attempt.AttemptAssessmentID).
			Order("question_position ASC").
			Preload("QuestionOptions").
			Preload("QuestionMatchingPairs").
			Find(&questions).Error; err != nil {
			return err
		}

		answers := indexAnswers(req.Answers)
		if err := rejectUnknownQuestions(answers, questions); err != nil {
			return err
		}

		now := time.Now().UTC()
		var totalEarned float64
		pending := 0

		responses := make([]amodel.ResponseModel, 0, len(questions))
		for i := range questions {
			q := &questions[i]
			ans := answers[q.QuestionID]

			r := buildResponse(attempt.AttemptID, q, ans, now)
			if r.ResponsePointsEarned == nil {
				pending++
			} else {
				totalEarned += *r.ResponsePointsEarned
			}
			responses = append(responses, r)
		}
		if err := tx.Create(&responses).Error; err != nil {
			return err
		}

		attempt.AttemptFinishedAt = &now
		if pending == 0 {
			percent := ScorePercent(totalEarned, attempt.AttemptMaxScore)
			passed := assessment.IsPassedBy(totalEarned, attempt.AttemptMaxScore)

			attempt.AttemptStatus = amodel.AttemptStatusGraded
			attempt.AttemptScore = &totalEarned
			attempt.AttemptScorePercent = &percent
			attempt.AttemptIsPassed = &passed
		} else {
			attempt.AttemptStatus = amodel.AttemptStatusPendingReview
		}
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		attempt.AttemptResponses = responses
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySubmitted(&attempt)
	return &attempt, nil
}

func (s *ScoringService) notifySubmitted(attempt *amodel.AttemptModel) {
	switch attempt.AttemptStatus {
	case amodel.AttemptStatusGraded:
		s.Notifier.SendAsync(
			attempt.AttemptStudentID,
			"Hasil assessment",
			fmt.Sprintf("Attempt #%d selesai dinilai: %.2f dari %.2f poin",
				attempt.AttemptNumber, *attempt.AttemptScore, attempt.AttemptMaxScore),
			[]string{"assessment", "graded"},
		)
	case amodel.AttemptStatusPendingReview:
		s.Notifier.SendAsync(
			attempt.AttemptStudentID,
			"Jawaban terkirim",
			fmt.Sprintf("Attempt #%d menunggu review pengajar", attempt.AttemptNumber),
			[]string{"assessment", "pending_review"},
		)
	}
}

/* =========================================================
   INTERNAL
========================================================= */

// indexAnswers: jawaban terakhir menang bila question_id dobel.
func indexAnswers(answers []adto.AnswerSpec) map[uuid.UUID]*adto.AnswerSpec {
	idx := make(map[uuid.UUID]*adto.AnswerSpec, len(answers))
	for i := range answers {
		idx[answers[i].QuestionID] = &answers[i]
	}
	return idx
}

func rejectUnknownQuestions(answers map[uuid.UUID]*adto.AnswerSpec, questions []qmodel.QuestionModel) error {
	known := make(map[uuid.UUID]bool, len(questions))
	for i := range questions {
		known[questions[i].QuestionID] = true
	}
	for id := range answers {
		if !known[id] {
			return errs.Validation("jawaban merujuk soal yang tidak ada: %s", id)
		}
	}
	return nil
}

// buildResponse menilai satu soal dan membentuk baris response-nya.
// PointsEarned nil = menunggu review manual.
func buildResponse(attemptID uuid.UUID, q *qmodel.QuestionModel, ans *adto.AnswerSpec, now time.Time) amodel.ResponseModel {
	r := amodel.ResponseModel{
		ResponseAttemptID:  attemptID,
		ResponseQuestionID: q.QuestionID,
	}
	if ans != nil {
		r.ResponseSelectedOptionIDs = adto.EncodeOptionIDs(ans.SelectedOptionIDs)
		r.ResponseAnswerText = ans.AnswerText
		r.ResponseAnswerCode = ans.AnswerCode
		r.ResponseMatchedPairs = adto.EncodeMatchedPairs(ans.MatchedPairs)
	}

	result := EvaluateAnswer(q, ans)
	if result.Pending {
		return r
	}

	isCorrect := result.IsCorrect
	points := result.Points
	gradedAt := now
	r.ResponseIsCorrect = &isCorrect
	r.ResponsePointsEarned = &points
	r.ResponseGradedAt = &gradedAt
	return r
}
