// file: internals/features/assessments/stats/service/stats_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	amodel "belajarku_backend/internals/features/assessments/attempts/model"
	"belajarku_backend/internals/features/assessments/errs"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
	sdto "belajarku_backend/internals/features/assessments/stats/dto"
)

/* =========================================================
   SERVICE: Statistik agregat (read-only, tidak pernah
   mengubah data attempt)
========================================================= */

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// GetAssessmentStatistics mengagregasi seluruh attempt satu assessment.
// Hanya pembuat assessment yang boleh melihat.
func (s *StatsService) GetAssessmentStatistics(
	ctx context.Context,
	assessmentID uuid.UUID,
	instructorID uuid.UUID,
) (*sdto.AssessmentStatsResponse, error) {
	var assessment qmodel.AssessmentModel
	if err := s.DB.WithContext(ctx).
		First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("assessment tidak ditemukan")
		}
		return nil, err
	}
	if assessment.AssessmentCreatedBy != instructorID {
		return nil, errs.Authorization("bukan assessment milik Anda")
	}

	var questions []qmodel.QuestionModel
	if err := s.DB.WithContext(ctx).
		Where("question_assessment_id = ?", assessmentID).
		Order("question_position ASC").
		Preload("QuestionOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_position ASC")
		}).
		Find(&questions).Error; err != nil {
		return nil, err
	}

	var attempts []amodel.AttemptModel
	if err := s.DB.WithContext(ctx).
		Where("attempt_assessment_id = ?", assessmentID).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	var responses []amodel.ResponseModel
	if err := s.DB.WithContext(ctx).
		Where("response_attempt_id IN (?)",
			s.DB.Model(&amodel.AttemptModel{}).
				Select("attempt_id").
				Where("attempt_assessment_id = ?", assessmentID)).
		Find(&responses).Error; err != nil {
		return nil, err
	}

	stats := BuildAssessmentStats(assessmentID, questions, attempts, responses)
	return stats, nil
}

/* =========================================================
   BUILDER (fungsi murni, tanpa DB)
========================================================= */

// BuildAssessmentStats menghitung agregat dari data yang sudah dimuat.
// Aman untuk assessment tanpa attempt: semua rasio 0, distribusi opsi
// tetap lengkap dengan hitungan nol.
func BuildAssessmentStats(
	assessmentID uuid.UUID,
	questions []qmodel.QuestionModel,
	attempts []amodel.AttemptModel,
	responses []amodel.ResponseModel,
) *sdto.AssessmentStatsResponse {
	stats := &sdto.AssessmentStatsResponse{
		AssessmentID: assessmentID,
		Questions:    make([]sdto.QuestionStat, 0, len(questions)),
	}

	var sumPercent float64
	var sumMinutes float64
	var timed int64

	for i := range attempts {
		a := &attempts[i]
		stats.TotalAttempts++
		if !a.IsCompleted() {
			continue
		}
		stats.CompletedAttempts++
		if a.AttemptFinishedAt != nil {
			sumMinutes += a.ElapsedMinutes()
			timed++
		}
		if a.AttemptStatus != amodel.AttemptStatusGraded {
			continue
		}
		stats.GradedAttempts++
		if a.AttemptScorePercent != nil {
			sumPercent += *a.AttemptScorePercent
		}
		if a.AttemptIsPassed != nil && *a.AttemptIsPassed {
			stats.PassedAttempts++
		}
	}

	if stats.CompletedAttempts > 0 {
		stats.PassRate = float64(stats.PassedAttempts) / float64(stats.CompletedAttempts) * 100
	}
	// rata-rata skor hanya dari attempt graded: yang pending_review
	// belum punya persentase
	if stats.GradedAttempts > 0 {
		stats.AverageScorePercent = sumPercent / float64(stats.GradedAttempts)
	}
	if timed > 0 {
		stats.AverageTimeMinutes = sumMinutes / float64(timed)
	}

	byQuestion := make(map[uuid.UUID][]*amodel.ResponseModel, len(questions))
	for i := range responses {
		r := &responses[i]
		byQuestion[r.ResponseQuestionID] = append(byQuestion[r.ResponseQuestionID], r)
	}

	for i := range questions {
		stats.Questions = append(stats.Questions,
			buildQuestionStat(&questions[i], byQuestion[questions[i].QuestionID]))
	}
	return stats
}

func buildQuestionStat(q *qmodel.QuestionModel, responses []*amodel.ResponseModel) sdto.QuestionStat {
	stat := sdto.QuestionStat{
		QuestionID:       q.QuestionID,
		QuestionPosition: q.QuestionPosition,
		QuestionType:     q.QuestionType,
		QuestionText:     q.QuestionText,
	}

	// Distribusi opsi dimulai dari nol supaya opsi yang tidak pernah
	// dipilih tetap tampil
	var optionIdx map[uuid.UUID]int
	if q.IsChoice() {
		optionIdx = make(map[uuid.UUID]int, len(q.QuestionOptions))
		stat.OptionDistribution = make([]sdto.OptionStat, 0, len(q.QuestionOptions))
		for _, op := range q.QuestionOptions {
			optionIdx[op.OptionID] = len(stat.OptionDistribution)
			stat.OptionDistribution = append(stat.OptionDistribution, sdto.OptionStat{
				OptionID:   op.OptionID,
				OptionText: op.OptionText,
				IsCorrect:  op.OptionIsCorrect,
			})
		}
	}

	for _, r := range responses {
		stat.AnswerCount++
		if r.ResponseIsCorrect != nil && *r.ResponseIsCorrect {
			stat.CorrectCount++
		}
		if optionIdx != nil {
			for _, id := range adto.DecodeOptionIDs(r.ResponseSelectedOptionIDs) {
				if pos, ok := optionIdx[id]; ok {
					stat.OptionDistribution[pos].SelectedCount++
				}
			}
		}
	}

	if stat.AnswerCount > 0 {
		stat.CorrectRate = float64(stat.CorrectCount) / float64(stat.AnswerCount)
	}
	return stat
}
