// file: internals/features/assessments/question_bank/dto/question_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

/* ==========================================================================================
   SPEC — soal dikirim wholesale (create assessment / replace questions),
   tidak pernah dipatch per-field.
========================================================================================== */

type OptionSpec struct {
	OptionText        string  `json:"option_text" validate:"required"`
	OptionIsCorrect   bool    `json:"option_is_correct"`
	OptionExplanation *string `json:"option_explanation" validate:"omitempty"`
}

type MatchingPairSpec struct {
	PairLeft  string `json:"pair_left" validate:"required"`
	PairRight string `json:"pair_right" validate:"required"`
}

type QuestionSpec struct {
	QuestionType   qmodel.QuestionType `json:"question_type" validate:"required,oneof=single_choice multiple_choice true_false short_answer matching code"`
	QuestionText   string              `json:"question_text" validate:"required"`
	QuestionPoints float64             `json:"question_points" validate:"omitempty,min=0"`

	QuestionExplanation  *string `json:"question_explanation" validate:"omitempty"`
	QuestionCodeSnippet  *string `json:"question_code_snippet" validate:"omitempty"`
	QuestionCodeLanguage *string `json:"question_code_language" validate:"omitempty,max=32"`

	Options       []OptionSpec       `json:"options" validate:"omitempty,dive"`
	MatchingPairs []MatchingPairSpec `json:"matching_pairs" validate:"omitempty,dive"`
}

// ToModel membangun model question + anak-anaknya (belum punya ID;
// posisi diisi dari urutan spec).
func (s *QuestionSpec) ToModel(assessmentID uuid.UUID, position int) *qmodel.QuestionModel {
	points := s.QuestionPoints
	if points == 0 {
		points = 1
	}
	q := &qmodel.QuestionModel{
		QuestionAssessmentID: assessmentID,
		QuestionPosition:     position,
		QuestionType:         s.QuestionType,
		QuestionText:         s.QuestionText,
		QuestionPoints:       points,
		QuestionExplanation:  s.QuestionExplanation,
		QuestionCodeSnippet:  s.QuestionCodeSnippet,
		QuestionCodeLanguage: s.QuestionCodeLanguage,
	}
	for i, op := range s.Options {
		q.QuestionOptions = append(q.QuestionOptions, qmodel.OptionModel{
			OptionPosition:    i,
			OptionText:        op.OptionText,
			OptionIsCorrect:   op.OptionIsCorrect,
			OptionExplanation: op.OptionExplanation,
		})
	}
	for i, p := range s.MatchingPairs {
		q.QuestionMatchingPairs = append(q.QuestionMatchingPairs, qmodel.MatchingPairModel{
			PairPosition: i,
			PairLeft:     p.PairLeft,
			PairRight:    p.PairRight,
		})
	}
	return q
}

type ReplaceQuestionsRequest struct {
	Questions []QuestionSpec `json:"questions" validate:"required,min=1,dive"`
}

/* ==========================================================================================
   RESPONSE DTO
   withAnswers=false (sisi siswa): flag benar/salah & jawaban kanonis disembunyikan.
========================================================================================== */

type OptionResponse struct {
	OptionID          uuid.UUID `json:"option_id"`
	OptionPosition    int       `json:"option_position"`
	OptionText        string    `json:"option_text"`
	OptionIsCorrect   *bool     `json:"option_is_correct,omitempty"`
	OptionExplanation *string   `json:"option_explanation,omitempty"`
}

type MatchingPairResponse struct {
	PairID       uuid.UUID `json:"pair_id"`
	PairPosition int       `json:"pair_position"`
	PairLeft     string    `json:"pair_left"`
	PairRight    string    `json:"pair_right"`
}

type QuestionResponse struct {
	QuestionID           uuid.UUID           `json:"question_id"`
	QuestionAssessmentID uuid.UUID           `json:"question_assessment_id"`
	QuestionPosition     int                 `json:"question_position"`
	QuestionType         qmodel.QuestionType `json:"question_type"`
	QuestionText         string              `json:"question_text"`
	QuestionPoints       float64             `json:"question_points"`
	QuestionExplanation  *string             `json:"question_explanation,omitempty"`
	QuestionCodeSnippet  *string             `json:"question_code_snippet,omitempty"`
	QuestionCodeLanguage *string             `json:"question_code_language,omitempty"`

	Options       []OptionResponse       `json:"options,omitempty"`
	MatchingPairs []MatchingPairResponse `json:"matching_pairs,omitempty"`

	QuestionCreatedAt time.Time `json:"question_created_at"`
	QuestionUpdatedAt time.Time `json:"question_updated_at"`
}

func FromModelQuestion(m *qmodel.QuestionModel, withAnswers bool) *QuestionResponse {
	resp := &QuestionResponse{
		QuestionID:           m.QuestionID,
		QuestionAssessmentID: m.QuestionAssessmentID,
		QuestionPosition:     m.QuestionPosition,
		QuestionType:         m.QuestionType,
		QuestionText:         m.QuestionText,
		QuestionPoints:       m.QuestionPoints,
		QuestionExplanation:  m.QuestionExplanation,
		QuestionCodeSnippet:  m.QuestionCodeSnippet,
		QuestionCodeLanguage: m.QuestionCodeLanguage,
		QuestionCreatedAt:    m.QuestionCreatedAt,
		QuestionUpdatedAt:    m.QuestionUpdatedAt,
	}

	// short_answer: opsi menyimpan jawaban kanonis — jangan bocor ke siswa.
	if m.QuestionType != qmodel.QuestionTypeShortAnswer || withAnswers {
		for _, op := range m.QuestionOptions {
			or := OptionResponse{
				OptionID:          op.OptionID,
				OptionPosition:    op.OptionPosition,
				OptionText:        op.OptionText,
				OptionExplanation: op.OptionExplanation,
			}
			if withAnswers {
				v := op.OptionIsCorrect
				or.OptionIsCorrect = &v
			}
			resp.Options = append(resp.Options, or)
		}
	}

	// matching: sisi siswa tetap butuh left/right (pasangan diacak di FE),
	// tapi urutan pair yang benar hanya untuk instruktur.
	for _, p := range m.QuestionMatchingPairs {
		resp.MatchingPairs = append(resp.MatchingPairs, MatchingPairResponse{
			PairID:       p.PairID,
			PairPosition: p.PairPosition,
			PairLeft:     p.PairLeft,
			PairRight:    p.PairRight,
		})
	}

	return resp
}
