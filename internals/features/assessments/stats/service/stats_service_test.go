// file: internals/features/assessments/stats/service/stats_service_test.go
package service

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	amodel "belajarku_backend/internals/features/assessments/attempts/model"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

func f64(v float64) *float64 { return &v }
func b(v bool) *bool         { return &v }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildAssessmentStatsNoAttempts(t *testing.T) {
	assessmentID := uuid.New()
	questions := []qmodel.QuestionModel{
		{
			QuestionID:   uuid.New(),
			QuestionType: qmodel.QuestionTypeSingleChoice,
			QuestionOptions: []qmodel.OptionModel{
				{OptionID: uuid.New(), OptionText: "a", OptionIsCorrect: true},
				{OptionID: uuid.New(), OptionText: "b"},
			},
		},
	}

	stats := BuildAssessmentStats(assessmentID, questions, nil, nil)

	if stats.TotalAttempts != 0 || stats.CompletedAttempts != 0 {
		t.Fatalf("tanpa attempt: %+v", stats)
	}
	if stats.PassRate != 0 || stats.AverageScorePercent != 0 || stats.AverageTimeMinutes != 0 {
		t.Fatal("rasio harus 0 tanpa pembagian nol")
	}
	if len(stats.Questions) != 1 {
		t.Fatalf("statistik soal harus lengkap, dapat %d", len(stats.Questions))
	}
	qs := stats.Questions[0]
	if qs.AnswerCount != 0 || qs.CorrectRate != 0 {
		t.Fatalf("soal tanpa jawaban: %+v", qs)
	}
	if len(qs.OptionDistribution) != 2 {
		t.Fatalf("distribusi opsi harus tetap lengkap: %+v", qs.OptionDistribution)
	}
	for _, op := range qs.OptionDistribution {
		if op.SelectedCount != 0 {
			t.Fatalf("hitungan opsi harus nol: %+v", op)
		}
	}
}

func TestPassRatePercentOfCompleted(t *testing.T) {
	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mk := func(status amodel.AttemptStatus, passed *bool) amodel.AttemptModel {
		return amodel.AttemptModel{
			AttemptID:        uuid.New(),
			AttemptStatus:    status,
			AttemptStartedAt: started,
			AttemptIsPassed:  passed,
		}
	}

	// 1 lulus + 1 gagal (graded) + 1 pending_review = 3 attempt disubmit
	attempts := []amodel.AttemptModel{
		mk(amodel.AttemptStatusGraded, b(true)),
		mk(amodel.AttemptStatusGraded, b(false)),
		mk(amodel.AttemptStatusPendingReview, nil),
	}

	stats := BuildAssessmentStats(uuid.New(), nil, attempts, nil)

	if stats.CompletedAttempts != 3 || stats.PassedAttempts != 1 {
		t.Fatalf("completed=%d passed=%d, want 3/1", stats.CompletedAttempts, stats.PassedAttempts)
	}
	if !almostEqual(stats.PassRate, 100.0/3.0) {
		t.Fatalf("PassRate = %v, want 33.33 (persen dari yang disubmit)", stats.PassRate)
	}
}

func TestBuildAssessmentStats(t *testing.T) {
	assessmentID := uuid.New()

	q := qmodel.QuestionModel{
		QuestionID:   uuid.New(),
		QuestionType: qmodel.QuestionTypeSingleChoice,
		QuestionOptions: []qmodel.OptionModel{
			{OptionID: uuid.New(), OptionText: "benar", OptionIsCorrect: true},
			{OptionID: uuid.New(), OptionText: "salah"},
		},
	}
	correctID := q.QuestionOptions[0].OptionID
	wrongID := q.QuestionOptions[1].OptionID

	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	finish := func(min int) *time.Time {
		ts := started.Add(time.Duration(min) * time.Minute)
		return &ts
	}

	attempts := []amodel.AttemptModel{
		{
			AttemptID:           uuid.New(),
			AttemptStatus:       amodel.AttemptStatusGraded,
			AttemptStartedAt:    started,
			AttemptFinishedAt:   finish(10),
			AttemptScorePercent: f64(100),
			AttemptIsPassed:     b(true),
		},
		{
			AttemptID:           uuid.New(),
			AttemptStatus:       amodel.AttemptStatusGraded,
			AttemptStartedAt:    started,
			AttemptFinishedAt:   finish(20),
			AttemptScorePercent: f64(0),
			AttemptIsPassed:     b(false),
		},
		{
			AttemptID:        uuid.New(),
			AttemptStatus:    amodel.AttemptStatusInProgress,
			AttemptStartedAt: started,
		},
		{
			AttemptID:         uuid.New(),
			AttemptStatus:     amodel.AttemptStatusPendingReview,
			AttemptStartedAt:  started,
			AttemptFinishedAt: finish(30),
		},
	}

	responses := []amodel.ResponseModel{
		{
			ResponseAttemptID:         attempts[0].AttemptID,
			ResponseQuestionID:        q.QuestionID,
			ResponseSelectedOptionIDs: adto.EncodeOptionIDs([]uuid.UUID{correctID}),
			ResponseIsCorrect:         b(true),
		},
		{
			ResponseAttemptID:         attempts[1].AttemptID,
			ResponseQuestionID:        q.QuestionID,
			ResponseSelectedOptionIDs: adto.EncodeOptionIDs([]uuid.UUID{wrongID}),
			ResponseIsCorrect:         b(false),
		},
	}

	stats := BuildAssessmentStats(assessmentID, []qmodel.QuestionModel{q}, attempts, responses)

	if stats.TotalAttempts != 4 {
		t.Fatalf("TotalAttempts = %d, want 4", stats.TotalAttempts)
	}
	if stats.CompletedAttempts != 3 {
		t.Fatalf("CompletedAttempts = %d, want 3 (in_progress tidak dihitung)", stats.CompletedAttempts)
	}
	if stats.GradedAttempts != 2 || stats.PassedAttempts != 1 {
		t.Fatalf("graded=%d passed=%d, want 2/1", stats.GradedAttempts, stats.PassedAttempts)
	}
	// pass rate = lulus / seluruh attempt yang disubmit (termasuk yang
	// masih pending_review), dalam persen
	if !almostEqual(stats.PassRate, 100.0/3.0) {
		t.Fatalf("PassRate = %v, want %v", stats.PassRate, 100.0/3.0)
	}
	if !almostEqual(stats.AverageScorePercent, 50) {
		t.Fatalf("AverageScorePercent = %v, want 50", stats.AverageScorePercent)
	}
	if !almostEqual(stats.AverageTimeMinutes, 20) {
		t.Fatalf("AverageTimeMinutes = %v, want 20", stats.AverageTimeMinutes)
	}

	qs := stats.Questions[0]
	if qs.AnswerCount != 2 || qs.CorrectCount != 1 {
		t.Fatalf("answer=%d correct=%d, want 2/1", qs.AnswerCount, qs.CorrectCount)
	}
	if !almostEqual(qs.CorrectRate, 0.5) {
		t.Fatalf("CorrectRate = %v, want 0.5", qs.CorrectRate)
	}
	for _, op := range qs.OptionDistribution {
		if op.SelectedCount != 1 {
			t.Fatalf("setiap opsi dipilih sekali, dapat %+v", op)
		}
	}
}
