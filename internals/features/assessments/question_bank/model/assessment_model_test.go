// file: internals/features/assessments/question_bank/model/assessment_model_test.go
package model

import "testing"

func TestIsPassedByPercent(t *testing.T) {
	m := &AssessmentModel{
		AssessmentPassingScore:     70,
		AssessmentPassingScoreUnit: PassingScorePercent,
	}

	tests := []struct {
		name  string
		score float64
		max   float64
		want  bool
	}{
		{"di atas ambang", 8, 10, true},
		{"tepat di ambang", 7, 10, true},
		{"di bawah ambang", 6.9, 10, false},
		{"skor nol", 0, 10, false},
		{"max nol tidak pernah lulus", 5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsPassedBy(tt.score, tt.max); got != tt.want {
				t.Fatalf("IsPassedBy(%v, %v) = %v, want %v", tt.score, tt.max, got, tt.want)
			}
		})
	}
}

func TestIsPassedByPoints(t *testing.T) {
	m := &AssessmentModel{
		AssessmentPassingScore:     15,
		AssessmentPassingScoreUnit: PassingScorePoints,
	}

	if !m.IsPassedBy(15, 20) {
		t.Fatal("skor tepat di ambang poin harus lulus")
	}
	if m.IsPassedBy(14.99, 20) {
		t.Fatal("skor di bawah ambang poin tidak boleh lulus")
	}
	// satuan poin mengabaikan max score
	if !m.IsPassedBy(15, 0) {
		t.Fatal("satuan poin tidak bergantung pada max score")
	}
}

func TestQuestionTypeAutoGradable(t *testing.T) {
	for _, typ := range []QuestionType{
		QuestionTypeSingleChoice, QuestionTypeMultipleChoice,
		QuestionTypeTrueFalse, QuestionTypeShortAnswer, QuestionTypeMatching,
	} {
		if !typ.AutoGradable() {
			t.Fatalf("%s harus bisa dinilai otomatis", typ)
		}
	}
	if QuestionTypeCode.AutoGradable() {
		t.Fatal("code tidak boleh dinilai otomatis")
	}
}
