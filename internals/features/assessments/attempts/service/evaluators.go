// file: internals/features/assessments/attempts/service/evaluators.go
package service

import (
	"strings"

	"github.com/google/uuid"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

/* =========================================================
   EVALUATOR PER TIPE SOAL (fungsi murni, tanpa DB)

   Aturan umum:
   - jawaban kosong = salah, 0 poin (bukan pending)
   - tidak ada partial credit
   - soal code dengan jawaban = Pending (menunggu review manual)
========================================================= */

type EvalResult struct {
	IsCorrect bool
	Points    float64
	// Pending: benar/salah belum bisa ditentukan otomatis
	Pending bool
}

// EvaluateAnswer menilai satu jawaban terhadap soalnya. Jawaban nil
// berarti soal dilewati (0 poin).
func EvaluateAnswer(q *qmodel.QuestionModel, ans *adto.AnswerSpec) EvalResult {
	if ans == nil {
		return EvalResult{}
	}

	switch q.QuestionType {
	case qmodel.QuestionTypeSingleChoice, qmodel.QuestionTypeTrueFalse:
		return score(q, evalSingleChoice(q, ans.SelectedOptionIDs))
	case qmodel.QuestionTypeMultipleChoice:
		return score(q, evalMultipleChoice(q, ans.SelectedOptionIDs))
	case qmodel.QuestionTypeShortAnswer:
		return score(q, evalShortAnswer(q, ans.AnswerText))
	case qmodel.QuestionTypeMatching:
		return score(q, evalMatching(q, ans.MatchedPairs))
	case qmodel.QuestionTypeCode:
		if ans.AnswerCode == nil || strings.TrimSpace(*ans.AnswerCode) == "" {
			return EvalResult{}
		}
		return EvalResult{Pending: true}
	default:
		return EvalResult{}
	}
}

func score(q *qmodel.QuestionModel, correct bool) EvalResult {
	if !correct {
		return EvalResult{}
	}
	return EvalResult{IsCorrect: true, Points: q.QuestionPoints}
}

// single_choice / true_false: tepat satu opsi dipilih dan opsi itu benar.
func evalSingleChoice(q *qmodel.QuestionModel, selected []uuid.UUID) bool {
	if len(selected) != 1 {
		return false
	}
	for _, op := range q.QuestionOptions {
		if op.OptionID == selected[0] {
			return op.OptionIsCorrect
		}
	}
	return false
}

// multiple_choice: himpunan pilihan == himpunan opsi benar, tanpa
// partial credit.
func evalMultipleChoice(q *qmodel.QuestionModel, selected []uuid.UUID) bool {
	correct := q.CorrectOptionIDs()
	if len(selected) == 0 || len(selected) != len(correct) {
		return false
	}
	want := make(map[uuid.UUID]bool, len(correct))
	for _, id := range correct {
		want[id] = true
	}
	seen := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		if !want[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// short_answer: trim + case-insensitive terhadap jawaban kanonis.
func evalShortAnswer(q *qmodel.QuestionModel, answer *string) bool {
	if answer == nil {
		return false
	}
	given := strings.TrimSpace(*answer)
	if given == "" {
		return false
	}
	canonical, ok := q.CanonicalAnswer()
	if !ok {
		return false
	}
	return strings.EqualFold(given, strings.TrimSpace(canonical))
}

// matching: pemetaan left→right siswa harus identik dengan kunci,
// urutan tidak diperhitungkan.
func evalMatching(q *qmodel.QuestionModel, pairs []adto.MatchedPair) bool {
	if len(pairs) == 0 || len(pairs) != len(q.QuestionMatchingPairs) {
		return false
	}
	want := make(map[string]string, len(q.QuestionMatchingPairs))
	for _, p := range q.QuestionMatchingPairs {
		want[strings.TrimSpace(p.PairLeft)] = strings.TrimSpace(p.PairRight)
	}
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		left := strings.TrimSpace(p.Left)
		right, ok := want[left]
		if !ok || seen[left] || right != strings.TrimSpace(p.Right) {
			return false
		}
		seen[left] = true
	}
	return true
}
