// file: internals/features/assessments/question_bank/service/question_bank_service_test.go
package service

import (
	"strings"
	"testing"

	"belajarku_backend/internals/features/assessments/errs"
	qdto "belajarku_backend/internals/features/assessments/question_bank/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

func optSpec(text string, correct bool) qdto.OptionSpec {
	return qdto.OptionSpec{OptionText: text, OptionIsCorrect: correct}
}

func TestValidateQuestionSpecs(t *testing.T) {
	tests := []struct {
		name    string
		spec    qdto.QuestionSpec
		wantErr string // substring pesan error, kosong = valid
	}{
		{
			"single_choice valid",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeSingleChoice,
				QuestionText: "Ibukota Indonesia?",
				Options:      []qdto.OptionSpec{optSpec("Jakarta", true), optSpec("Bandung", false)},
			},
			"",
		},
		{
			"single_choice dua opsi benar",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeSingleChoice,
				QuestionText: "x?",
				Options:      []qdto.OptionSpec{optSpec("a", true), optSpec("b", true)},
			},
			"tepat satu opsi",
		},
		{
			"single_choice tanpa opsi benar",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeSingleChoice,
				QuestionText: "x?",
				Options:      []qdto.OptionSpec{optSpec("a", false), optSpec("b", false)},
			},
			"tepat satu opsi",
		},
		{
			"true_false valid",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeTrueFalse,
				QuestionText: "Bumi bulat?",
				Options:      []qdto.OptionSpec{optSpec("Benar", true), optSpec("Salah", false)},
			},
			"",
		},
		{
			"multiple_choice tanpa opsi benar",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeMultipleChoice,
				QuestionText: "x?",
				Options:      []qdto.OptionSpec{optSpec("a", false), optSpec("b", false)},
			},
			"minimal satu opsi",
		},
		{
			"multiple_choice beberapa benar",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeMultipleChoice,
				QuestionText: "bilangan prima?",
				Options:      []qdto.OptionSpec{optSpec("2", true), optSpec("3", true), optSpec("4", false)},
			},
			"",
		},
		{
			"opsi kurang dari dua",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeSingleChoice,
				QuestionText: "x?",
				Options:      []qdto.OptionSpec{optSpec("a", true)},
			},
			"minimal 2 opsi",
		},
		{
			"short_answer valid",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeShortAnswer,
				QuestionText: "Ibukota Prancis?",
				Options:      []qdto.OptionSpec{optSpec("Paris", true)},
			},
			"",
		},
		{
			"short_answer tanpa jawaban kanonis",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeShortAnswer,
				QuestionText: "x?",
			},
			"kanonis",
		},
		{
			"matching valid",
			qdto.QuestionSpec{
				QuestionType:  qmodel.QuestionTypeMatching,
				QuestionText:  "pasangkan",
				MatchingPairs: []qdto.MatchingPairSpec{{PairLeft: "a", PairRight: "1"}},
			},
			"",
		},
		{
			"matching tanpa pasangan",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeMatching,
				QuestionText: "pasangkan",
			},
			"minimal satu pasangan",
		},
		{
			"matching dengan opsi",
			qdto.QuestionSpec{
				QuestionType:  qmodel.QuestionTypeMatching,
				QuestionText:  "pasangkan",
				Options:       []qdto.OptionSpec{optSpec("a", true)},
				MatchingPairs: []qdto.MatchingPairSpec{{PairLeft: "a", PairRight: "1"}},
			},
			"tidak boleh punya opsi",
		},
		{
			"code valid",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeCode,
				QuestionText: "tulis hello world",
			},
			"",
		},
		{
			"code dengan opsi",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeCode,
				QuestionText: "x",
				Options:      []qdto.OptionSpec{optSpec("a", true)},
			},
			"tidak boleh punya opsi",
		},
		{
			"teks kosong",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionTypeCode,
				QuestionText: "   ",
			},
			"teks soal wajib",
		},
		{
			"poin negatif",
			qdto.QuestionSpec{
				QuestionType:   qmodel.QuestionTypeCode,
				QuestionText:   "x",
				QuestionPoints: -1,
			},
			"tidak boleh negatif",
		},
		{
			"tipe tidak dikenal",
			qdto.QuestionSpec{
				QuestionType: qmodel.QuestionType("essay"),
				QuestionText: "x",
			},
			"tidak dikenal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestionSpecs([]qdto.QuestionSpec{tt.spec})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("spec valid ditolak: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("spec invalid lolos, harusnya error mengandung %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("pesan error %q tidak mengandung %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateQuestionSpecsReportsIndex(t *testing.T) {
	specs := []qdto.QuestionSpec{
		{
			QuestionType: qmodel.QuestionTypeCode,
			QuestionText: "valid",
		},
		{
			QuestionType: qmodel.QuestionTypeSingleChoice,
			QuestionText: "rusak",
			Options:      []qdto.OptionSpec{optSpec("a", false), optSpec("b", false)},
		},
	}

	err := ValidateQuestionSpecs(specs)
	if err == nil {
		t.Fatal("soal kedua invalid, harus error")
	}
	ve, ok := err.(*errs.ValidationError)
	if !ok {
		t.Fatalf("tipe error %T, harus *errs.ValidationError", err)
	}
	if ve.QuestionIndex != 1 {
		t.Fatalf("QuestionIndex = %d, want 1", ve.QuestionIndex)
	}
	if !strings.Contains(err.Error(), "soal ke-2") {
		t.Fatalf("pesan %q tidak menyebut soal ke-2", err.Error())
	}
}

func TestTotalPoints(t *testing.T) {
	questions := []qmodel.QuestionModel{
		{QuestionPoints: 1},
		{QuestionPoints: 2.5},
		{QuestionPoints: 10},
	}
	if got := TotalPoints(questions); got != 13.5 {
		t.Fatalf("TotalPoints = %v, want 13.5", got)
	}
	if got := TotalPoints(nil); got != 0 {
		t.Fatalf("TotalPoints(nil) = %v, want 0", got)
	}
}
