// file: internals/features/assessments/question_bank/service/question_bank_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"belajarku_backend/internals/features/assessments/errs"
	qdto "belajarku_backend/internals/features/assessments/question_bank/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
)

/* =========================================================
   SERVICE: Question Bank
   - define/replace wholesale (tidak pernah patch per-field)
   - cascade delete eksplisit di dalam satu transaksi
========================================================= */

type QuestionBankService struct {
	DB *gorm.DB
}

func NewQuestionBankService(db *gorm.DB) *QuestionBankService {
	return &QuestionBankService{DB: db}
}

/* =========================================================
   VALIDASI SHAPE SOAL (per tipe)
========================================================= */

// ValidateQuestionSpecs mengecek aturan per tipe; error menyebut index
// soal yang bermasalah.
func ValidateQuestionSpecs(specs []qdto.QuestionSpec) error {
	for i := range specs {
		if err := validateQuestionSpec(i, &specs[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestionSpec(i int, s *qdto.QuestionSpec) error {
	if !s.QuestionType.Valid() {
		return errs.ValidationAt(i, "tipe soal tidak dikenal: %q", s.QuestionType)
	}
	if strings.TrimSpace(s.QuestionText) == "" {
		return errs.ValidationAt(i, "teks soal wajib diisi")
	}
	if s.QuestionPoints < 0 {
		return errs.ValidationAt(i, "poin soal tidak boleh negatif")
	}

	correct := 0
	for _, op := range s.Options {
		if strings.TrimSpace(op.OptionText) == "" {
			return errs.ValidationAt(i, "teks opsi tidak boleh kosong")
		}
		if op.OptionIsCorrect {
			correct++
		}
	}

	switch s.QuestionType {
	case qmodel.QuestionTypeSingleChoice, qmodel.QuestionTypeTrueFalse:
		if len(s.Options) < 2 {
			return errs.ValidationAt(i, "minimal 2 opsi diperlukan")
		}
		if correct != 1 {
			return errs.ValidationAt(i, "harus tepat satu opsi dengan option_is_correct=true")
		}
		if len(s.MatchingPairs) > 0 {
			return errs.ValidationAt(i, "tipe pilihan tidak boleh punya matching pairs")
		}
	case qmodel.QuestionTypeMultipleChoice:
		if len(s.Options) < 2 {
			return errs.ValidationAt(i, "minimal 2 opsi diperlukan")
		}
		if correct < 1 {
			return errs.ValidationAt(i, "minimal satu opsi harus benar")
		}
		if len(s.MatchingPairs) > 0 {
			return errs.ValidationAt(i, "tipe pilihan tidak boleh punya matching pairs")
		}
	case qmodel.QuestionTypeShortAnswer:
		// opsi pertama yang benar = jawaban teks kanonis
		if correct < 1 {
			return errs.ValidationAt(i, "short_answer butuh satu opsi benar sebagai jawaban kanonis")
		}
		if len(s.MatchingPairs) > 0 {
			return errs.ValidationAt(i, "short_answer tidak boleh punya matching pairs")
		}
	case qmodel.QuestionTypeMatching:
		if len(s.MatchingPairs) < 1 {
			return errs.ValidationAt(i, "matching butuh minimal satu pasangan")
		}
		if len(s.Options) > 0 {
			return errs.ValidationAt(i, "matching tidak boleh punya opsi")
		}
		for _, p := range s.MatchingPairs {
			if strings.TrimSpace(p.PairLeft) == "" || strings.TrimSpace(p.PairRight) == "" {
				return errs.ValidationAt(i, "pasangan matching tidak boleh kosong")
			}
		}
	case qmodel.QuestionTypeCode:
		// tidak pernah dinilai otomatis; opsi/pair tidak dipakai
		if len(s.Options) > 0 || len(s.MatchingPairs) > 0 {
			return errs.ValidationAt(i, "soal code tidak boleh punya opsi atau matching pairs")
		}
	}
	return nil
}

/* =========================================================
   DEFINE / REPLACE
========================================================= */

// DefineAssessment membuat assessment + soal awal (opsional) dalam satu tx.
func (s *QuestionBankService) DefineAssessment(
	ctx context.Context,
	req *qdto.CreateAssessmentRequest,
	createdBy uuid.UUID,
) (*qmodel.AssessmentModel, []qmodel.QuestionModel, error) {
	if err := ValidateQuestionSpecs(req.Questions); err != nil {
		return nil, nil, err
	}

	m := req.ToModel(createdBy)
	var questions []qmodel.QuestionModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		qs, err := insertQuestions(tx, m.AssessmentID, req.Questions)
		if err != nil {
			return err
		}
		questions = qs
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return m, questions, nil
}

// ReplaceQuestions mengganti seluruh set soal secara destruktif:
// hapus soal+opsi+pair lama, insert set baru — satu transaksi.
// Ditolak (Conflict) bila sudah ada attempt terhadap assessment ini.
func (s *QuestionBankService) ReplaceQuestions(
	ctx context.Context,
	assessmentID uuid.UUID,
	specs []qdto.QuestionSpec,
	callerID uuid.UUID,
) ([]qmodel.QuestionModel, error) {
	if err := ValidateQuestionSpecs(specs); err != nil {
		return nil, err
	}

	var questions []qmodel.QuestionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment.AssessmentCreatedBy != callerID {
			return errs.Authorization("hanya pembuat assessment yang boleh mengubah soal")
		}

		attempts, err := countAttempts(tx, assessmentID)
		if err != nil {
			return err
		}
		if attempts > 0 {
			return errs.Conflict("assessment sudah punya attempt; soal tidak boleh diubah")
		}

		if err := deleteQuestionsCascade(tx, assessmentID); err != nil {
			return err
		}
		qs, err := insertQuestions(tx, assessmentID, specs)
		if err != nil {
			return err
		}
		questions = qs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

/* =========================================================
   UPDATE / PUBLISH / DELETE
========================================================= */

func (s *QuestionBankService) UpdateAssessment(
	ctx context.Context,
	assessmentID uuid.UUID,
	req *qdto.UpdateAssessmentRequest,
	callerID uuid.UUID,
) (*qmodel.AssessmentModel, error) {
	var m qmodel.AssessmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment.AssessmentCreatedBy != callerID {
			return errs.Authorization("hanya pembuat assessment yang boleh mengubah data")
		}
		req.ApplyToModel(assessment)
		if !assessment.AssessmentPassingScoreUnit.Valid() {
			return errs.Validation("satuan passing score tidak valid")
		}
		if err := tx.Save(assessment).Error; err != nil {
			return err
		}
		m = *assessment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// PublishAssessment menandai siap dikerjakan; minimal satu soal.
func (s *QuestionBankService) PublishAssessment(
	ctx context.Context,
	assessmentID uuid.UUID,
	callerID uuid.UUID,
) (*qmodel.AssessmentModel, error) {
	var m qmodel.AssessmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment.AssessmentCreatedBy != callerID {
			return errs.Authorization("hanya pembuat assessment yang boleh publish")
		}

		var total int64
		if err := tx.Model(&qmodel.QuestionModel{}).
			Where("question_assessment_id = ?", assessmentID).
			Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return errs.Validation("assessment tanpa soal tidak bisa dipublish")
		}

		if !assessment.AssessmentIsPublished {
			now := time.Now().UTC()
			assessment.AssessmentIsPublished = true
			assessment.AssessmentPublishedAt = &now
			if err := tx.Save(assessment).Error; err != nil {
				return err
			}
		}
		m = *assessment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteAssessment: cascade eksplisit (soal, opsi, pair) dalam satu tx.
// Ditolak bila sudah ada attempt (histori jawaban jangan jadi yatim).
func (s *QuestionBankService) DeleteAssessment(
	ctx context.Context,
	assessmentID uuid.UUID,
	callerID uuid.UUID,
) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment.AssessmentCreatedBy != callerID {
			return errs.Authorization("hanya pembuat assessment yang boleh menghapus")
		}

		attempts, err := countAttempts(tx, assessmentID)
		if err != nil {
			return err
		}
		if attempts > 0 {
			return errs.Conflict("assessment sudah punya attempt; tidak bisa dihapus")
		}

		if err := deleteQuestionsCascade(tx, assessmentID); err != nil {
			return err
		}
		return tx.Delete(assessment).Error
	})
}

/* =========================================================
   READ SIDE
========================================================= */

// GetAssessment memuat assessment + soal terurut posisi (beserta opsi/pair).
func (s *QuestionBankService) GetAssessment(
	ctx context.Context,
	assessmentID uuid.UUID,
) (*qmodel.AssessmentModel, []qmodel.QuestionModel, error) {
	var m qmodel.AssessmentModel
	if err := s.DB.WithContext(ctx).
		First(&m, "assessment_id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFound("assessment tidak ditemukan")
		}
		return nil, nil, err
	}

	questions, err := s.LoadQuestions(ctx, assessmentID)
	if err != nil {
		return nil, nil, err
	}
	return &m, questions, nil
}

// LoadQuestions memuat soal + anak-anaknya, urut posisi.
func (s *QuestionBankService) LoadQuestions(
	ctx context.Context,
	assessmentID uuid.UUID,
) ([]qmodel.QuestionModel, error) {
	var questions []qmodel.QuestionModel
	err := s.DB.WithContext(ctx).
		Where("question_assessment_id = ?", assessmentID).
		Order("question_position ASC").
		Preload("QuestionOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_position ASC")
		}).
		Preload("QuestionMatchingPairs", func(db *gorm.DB) *gorm.DB {
			return db.Order("pair_position ASC")
		}).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByInstructor: sisi pengajar, semua status publish.
func (s *QuestionBankService) ListByInstructor(
	ctx context.Context,
	instructorID uuid.UUID,
	offset, limit int,
) ([]qmodel.AssessmentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&qmodel.AssessmentModel{}).
		Where("assessment_created_by = ?", instructorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []qmodel.AssessmentModel
	if err := q.Order("assessment_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListPublishedByTopic: sisi siswa, hanya yang sudah publish.
func (s *QuestionBankService) ListPublishedByTopic(
	ctx context.Context,
	topicID uuid.UUID,
	offset, limit int,
) ([]qmodel.AssessmentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&qmodel.AssessmentModel{}).
		Where("assessment_topic_id = ? AND assessment_is_published = TRUE", topicID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []qmodel.AssessmentModel
	if err := q.Order("assessment_published_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// TotalPoints menjumlah nilai maksimum seluruh soal (snapshot attempt).
func TotalPoints(questions []qmodel.QuestionModel) float64 {
	var total float64
	for i := range questions {
		total += questions[i].QuestionPoints
	}
	return total
}

/* =========================================================
   INTERNAL
========================================================= */

func lockAssessment(tx *gorm.DB, assessmentID uuid.UUID) (*qmodel.AssessmentModel, error) {
	var m qmodel.AssessmentModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "assessment_id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("assessment tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

func countAttempts(tx *gorm.DB, assessmentID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Table("assessment_attempts").
		Where("attempt_assessment_id = ?", assessmentID).
		Count(&n).Error
	return n, err
}

// deleteQuestionsCascade menghapus opsi, pair, lalu soal — urutan anak dulu.
func deleteQuestionsCascade(tx *gorm.DB, assessmentID uuid.UUID) error {
	sub := tx.Model(&qmodel.QuestionModel{}).
		Select("question_id").
		Where("question_assessment_id = ?", assessmentID)

	if err := tx.
		Where("option_question_id IN (?)", sub).
		Delete(&qmodel.OptionModel{}).Error; err != nil {
		return err
	}
	if err := tx.
		Where("pair_question_id IN (?)", sub).
		Delete(&qmodel.MatchingPairModel{}).Error; err != nil {
		return err
	}
	return tx.
		Where("question_assessment_id = ?", assessmentID).
		Delete(&qmodel.QuestionModel{}).Error
}

func insertQuestions(tx *gorm.DB, assessmentID uuid.UUID, specs []qdto.QuestionSpec) ([]qmodel.QuestionModel, error) {
	questions := make([]qmodel.QuestionModel, 0, len(specs))
	for i := range specs {
		q := specs[i].ToModel(assessmentID, i)
		if err := tx.Create(q).Error; err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}
