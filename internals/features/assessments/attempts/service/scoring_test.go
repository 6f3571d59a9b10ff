// file: internals/features/assessments/attempts/service/scoring_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

func intptr(i int) *int { return &i }

func TestAttemptLimitReached(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts *int
		completed   int64
		want        bool
	}{
		{"tanpa batas", nil, 100, false},
		{"belum mencapai batas", intptr(3), 2, false},
		{"tepat di batas", intptr(3), 3, true},
		{"melewati batas", intptr(3), 4, true},
		{"batas satu, belum pernah", intptr(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttemptLimitReached(tt.maxAttempts, tt.completed); got != tt.want {
				t.Fatalf("AttemptLimitReached(%v, %d) = %v, want %v",
					tt.maxAttempts, tt.completed, got, tt.want)
			}
		})
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		max   float64
		want  float64
	}{
		{"skor penuh", 10, 10, 100},
		{"setengah", 5, 10, 50},
		{"nol", 0, 10, 0},
		{"max nol tidak membagi nol", 5, 0, 0},
		{"max negatif diperlakukan nol", 5, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePercent(tt.score, tt.max); got != tt.want {
				t.Fatalf("ScorePercent(%v, %v) = %v, want %v", tt.score, tt.max, got, tt.want)
			}
		})
	}
}

func TestBuildResponseAutoGraded(t *testing.T) {
	q := choiceQuestion(qmodel.QuestionTypeSingleChoice, 5, true, false)
	now := time.Now().UTC()
	attemptID := uuid.New()

	ans := &adto.AnswerSpec{
		QuestionID:        q.QuestionID,
		SelectedOptionIDs: []uuid.UUID{q.QuestionOptions[0].OptionID},
	}
	r := buildResponse(attemptID, q, ans, now)

	if r.ResponsePointsEarned == nil || *r.ResponsePointsEarned != 5 {
		t.Fatalf("PointsEarned = %v, want 5", r.ResponsePointsEarned)
	}
	if r.ResponseIsCorrect == nil || !*r.ResponseIsCorrect {
		t.Fatal("jawaban benar harus is_correct=true")
	}
	if r.ResponseGradedAt == nil {
		t.Fatal("jawaban ternilai otomatis harus punya graded_at")
	}
	if got := adto.DecodeOptionIDs(r.ResponseSelectedOptionIDs); len(got) != 1 || got[0] != ans.SelectedOptionIDs[0] {
		t.Fatalf("payload opsi tidak tersimpan utuh: %v", got)
	}
}

func TestBuildResponsePendingCode(t *testing.T) {
	q := &qmodel.QuestionModel{
		QuestionID:     uuid.New(),
		QuestionType:   qmodel.QuestionTypeCode,
		QuestionPoints: 10,
	}
	ans := &adto.AnswerSpec{QuestionID: q.QuestionID, AnswerCode: strptr("fmt.Println()")}
	r := buildResponse(uuid.New(), q, ans, time.Now().UTC())

	if r.ResponsePointsEarned != nil || r.ResponseIsCorrect != nil || r.ResponseGradedAt != nil {
		t.Fatalf("jawaban code harus menunggu review, dapat %+v", r)
	}
	if r.ResponseAnswerCode == nil {
		t.Fatal("kode jawaban hilang")
	}
}

func TestBuildResponseSkipped(t *testing.T) {
	q := choiceQuestion(qmodel.QuestionTypeMultipleChoice, 4, true, true)
	r := buildResponse(uuid.New(), q, nil, time.Now().UTC())

	if r.ResponsePointsEarned == nil || *r.ResponsePointsEarned != 0 {
		t.Fatalf("soal dilewati harus 0 poin, dapat %v", r.ResponsePointsEarned)
	}
	if r.ResponseIsCorrect == nil || *r.ResponseIsCorrect {
		t.Fatal("soal dilewati harus is_correct=false")
	}
}
