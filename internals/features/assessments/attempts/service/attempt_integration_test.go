// file: internals/features/assessments/attempts/service/attempt_integration_test.go
package service

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	adto "belajarku_backend/internals/features/assessments/attempts/dto"
	amodel "belajarku_backend/internals/features/assessments/attempts/model"
	"belajarku_backend/internals/features/assessments/errs"
	qdto "belajarku_backend/internals/features/assessments/question_bank/dto"
	qmodel "belajarku_backend/internals/features/assessments/question_bank/model"
	qservice "belajarku_backend/internals/features/assessments/question_bank/service"
	nmodel "belajarku_backend/internals/features/notifications/model"
)

// Jalankan dengan postgres sungguhan:
//
//	ASSESSMENT_INTEGRATION=1 TEST_DATABASE_DSN="host=localhost user=... dbname=..." go test ./...
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("ASSESSMENT_INTEGRATION") != "1" {
		t.Skip("set ASSESSMENT_INTEGRATION=1 untuk menjalankan test integrasi")
	}
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN kosong")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("gagal konek postgres: %v", err)
	}
	if err := db.AutoMigrate(
		&qmodel.AssessmentModel{},
		&qmodel.QuestionModel{},
		&qmodel.OptionModel{},
		&qmodel.MatchingPairModel{},
		&amodel.AttemptModel{},
		&amodel.ResponseModel{},
		&nmodel.NotificationModel{},
	); err != nil {
		t.Fatalf("gagal migrate: %v", err)
	}
	return db
}

func seedAssessment(t *testing.T, db *gorm.DB, teacherID uuid.UUID, questions []qdto.QuestionSpec) (*qmodel.AssessmentModel, []qmodel.QuestionModel) {
	t.Helper()
	ctx := context.Background()
	qsvc := qservice.NewQuestionBankService(db)

	req := &qdto.CreateAssessmentRequest{
		AssessmentTopicID:      uuid.New(),
		AssessmentTitle:        "Kuis Integrasi",
		AssessmentPassingScore: 70,
		Questions:              questions,
	}
	m, qs, err := qsvc.DefineAssessment(ctx, req, teacherID)
	if err != nil {
		t.Fatalf("DefineAssessment: %v", err)
	}
	if _, err := qsvc.PublishAssessment(ctx, m.AssessmentID, teacherID); err != nil {
		t.Fatalf("PublishAssessment: %v", err)
	}
	m.AssessmentIsPublished = true

	t.Cleanup(func() {
		db.Where("response_attempt_id IN (?)",
			db.Model(&amodel.AttemptModel{}).Select("attempt_id").
				Where("attempt_assessment_id = ?", m.AssessmentID)).
			Delete(&amodel.ResponseModel{})
		db.Where("attempt_assessment_id = ?", m.AssessmentID).Delete(&amodel.AttemptModel{})
		db.Where("option_question_id IN (?)",
			db.Model(&qmodel.QuestionModel{}).Select("question_id").
				Where("question_assessment_id = ?", m.AssessmentID)).
			Delete(&qmodel.OptionModel{})
		db.Where("question_assessment_id = ?", m.AssessmentID).Delete(&qmodel.QuestionModel{})
		db.Unscoped().Where("assessment_id = ?", m.AssessmentID).Delete(&qmodel.AssessmentModel{})
	})
	return m, qs
}

func TestAttemptLifecycleIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacherID := uuid.New()
	studentID := uuid.New()

	assessment, questions := seedAssessment(t, db, teacherID, []qdto.QuestionSpec{
		{
			QuestionType:   qmodel.QuestionTypeSingleChoice,
			QuestionText:   "Ibukota Indonesia?",
			QuestionPoints: 5,
			Options: []qdto.OptionSpec{
				{OptionText: "Jakarta", OptionIsCorrect: true},
				{OptionText: "Surabaya"},
			},
		},
		{
			QuestionType:   qmodel.QuestionTypeShortAnswer,
			QuestionText:   "Ibukota Prancis?",
			QuestionPoints: 5,
			Options: []qdto.OptionSpec{
				{OptionText: "Paris", OptionIsCorrect: true},
			},
		},
	})

	attempts := NewAttemptService(db)
	scoring := NewScoringService(db)

	// start pertama
	attempt, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if attempt.AttemptNumber != 1 || attempt.AttemptMaxScore != 10 {
		t.Fatalf("attempt pertama: number=%d max=%v", attempt.AttemptNumber, attempt.AttemptMaxScore)
	}

	// start kedua selama masih berjalan = attempt yang sama
	again, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt ulang: %v", err)
	}
	if again.AttemptID != attempt.AttemptID {
		t.Fatal("start saat masih in_progress harus mengembalikan attempt yang sama")
	}

	// submit: semua jawaban benar (" paris " tetap diterima)
	answer := " paris "
	submitted, err := scoring.SubmitAttempt(ctx, attempt.AttemptID, studentID, &adto.SubmitAttemptRequest{
		Answers: []adto.AnswerSpec{
			{QuestionID: questions[0].QuestionID, SelectedOptionIDs: []uuid.UUID{questions[0].QuestionOptions[0].OptionID}},
			{QuestionID: questions[1].QuestionID, AnswerText: &answer},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if submitted.AttemptStatus != amodel.AttemptStatusGraded {
		t.Fatalf("status = %s, want graded", submitted.AttemptStatus)
	}
	if submitted.AttemptScore == nil || *submitted.AttemptScore != 10 {
		t.Fatalf("score = %v, want 10", submitted.AttemptScore)
	}
	if submitted.AttemptScorePercent == nil || *submitted.AttemptScorePercent != 100 {
		t.Fatalf("percent = %v, want 100", submitted.AttemptScorePercent)
	}
	if submitted.AttemptIsPassed == nil || !*submitted.AttemptIsPassed {
		t.Fatal("skor penuh harus lulus")
	}

	// submit kedua kali = Conflict
	_, err = scoring.SubmitAttempt(ctx, attempt.AttemptID, studentID, &adto.SubmitAttemptRequest{})
	if _, ok := err.(*errs.ConflictError); !ok {
		t.Fatalf("submit dobel harus ConflictError, dapat %v", err)
	}

	// attempt berikutnya nomor 2
	second, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt kedua: %v", err)
	}
	if second.AttemptNumber != 2 {
		t.Fatalf("attempt kedua number = %d, want 2", second.AttemptNumber)
	}
}

func TestManualReviewIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacherID := uuid.New()
	studentID := uuid.New()

	assessment, questions := seedAssessment(t, db, teacherID, []qdto.QuestionSpec{
		{
			QuestionType:   qmodel.QuestionTypeCode,
			QuestionText:   "Tulis fungsi penjumlahan",
			QuestionPoints: 10,
		},
	})

	attempts := NewAttemptService(db)
	scoring := NewScoringService(db)
	review := NewReviewService(db)

	attempt, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	code := "func add(a, b int) int { return a + b }"
	submitted, err := scoring.SubmitAttempt(ctx, attempt.AttemptID, studentID, &adto.SubmitAttemptRequest{
		Answers: []adto.AnswerSpec{
			{QuestionID: questions[0].QuestionID, AnswerCode: &code},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if submitted.AttemptStatus != amodel.AttemptStatusPendingReview {
		t.Fatalf("status = %s, want pending_review", submitted.AttemptStatus)
	}
	if submitted.AttemptScore != nil {
		t.Fatal("skor harus null selama menunggu review")
	}

	var responseID uuid.UUID
	for _, r := range submitted.AttemptResponses {
		if r.ResponsePointsEarned == nil {
			responseID = r.ResponseID
		}
	}
	if responseID == uuid.Nil {
		t.Fatal("tidak ada jawaban yang menunggu nilai")
	}

	// siswa lain tidak boleh menilai
	_, err = review.GradeResponse(ctx, responseID, uuid.New(), &adto.GradeResponseRequest{ResponsePointsEarned: 10})
	if _, ok := err.(*errs.AuthorizationError); !ok {
		t.Fatalf("penilaian oleh bukan pemilik harus AuthorizationError, dapat %v", err)
	}

	graded, err := review.GradeResponse(ctx, responseID, teacherID, &adto.GradeResponseRequest{ResponsePointsEarned: 8})
	if err != nil {
		t.Fatalf("GradeResponse: %v", err)
	}
	if graded.AttemptStatus != amodel.AttemptStatusGraded {
		t.Fatalf("setelah jawaban terakhir dinilai status = %s, want graded", graded.AttemptStatus)
	}
	if graded.AttemptScore == nil || *graded.AttemptScore != 8 {
		t.Fatalf("score = %v, want 8", graded.AttemptScore)
	}
	if graded.AttemptScorePercent == nil || *graded.AttemptScorePercent != 80 {
		t.Fatalf("percent = %v, want 80", graded.AttemptScorePercent)
	}
	if graded.AttemptIsPassed == nil || !*graded.AttemptIsPassed {
		t.Fatal("80% dengan ambang 70% harus lulus")
	}
}

func TestDeleteAttemptIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacherID := uuid.New()
	studentID := uuid.New()

	assessment, questions := seedAssessment(t, db, teacherID, []qdto.QuestionSpec{
		{
			QuestionType: qmodel.QuestionTypeTrueFalse,
			QuestionText: "Air mendidih di 100°C?",
			Options: []qdto.OptionSpec{
				{OptionText: "Benar", OptionIsCorrect: true},
				{OptionText: "Salah"},
			},
		},
	})

	attempts := NewAttemptService(db)
	scoring := NewScoringService(db)

	// attempt in_progress (belum ada penilaian) boleh dihapus pemiliknya
	attempt, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	// bukan pemilik & bukan pembuat assessment: ditolak
	err = attempts.DeleteAttempt(ctx, attempt.AttemptID, uuid.New())
	if _, ok := err.(*errs.AuthorizationError); !ok {
		t.Fatalf("hapus oleh orang lain harus AuthorizationError, dapat %v", err)
	}

	if err := attempts.DeleteAttempt(ctx, attempt.AttemptID, studentID); err != nil {
		t.Fatalf("DeleteAttempt: %v", err)
	}
	if _, err := attempts.FindActiveAttempt(ctx, assessment.AssessmentID, studentID); err == nil {
		t.Fatal("attempt terhapus masih terbaca sebagai aktif")
	}

	// attempt yang sudah ternilai tidak boleh dihapus
	attempt, err = attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt ulang: %v", err)
	}
	if _, err := scoring.SubmitAttempt(ctx, attempt.AttemptID, studentID, &adto.SubmitAttemptRequest{
		Answers: []adto.AnswerSpec{
			{QuestionID: questions[0].QuestionID, SelectedOptionIDs: []uuid.UUID{questions[0].QuestionOptions[0].OptionID}},
		},
	}); err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	err = attempts.DeleteAttempt(ctx, attempt.AttemptID, studentID)
	if _, ok := err.(*errs.ConflictError); !ok {
		t.Fatalf("hapus attempt ternilai harus ConflictError, dapat %v", err)
	}
	err = attempts.DeleteAttempt(ctx, attempt.AttemptID, teacherID)
	if _, ok := err.(*errs.ConflictError); !ok {
		t.Fatalf("pembuat assessment pun tidak boleh hapus attempt ternilai, dapat %v", err)
	}
}

func TestInstructorReadOwnershipIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacherID := uuid.New()
	otherTeacherID := uuid.New()
	studentID := uuid.New()

	assessment, _ := seedAssessment(t, db, teacherID, []qdto.QuestionSpec{
		{
			QuestionType: qmodel.QuestionTypeShortAnswer,
			QuestionText: "Ibukota Jepang?",
			Options: []qdto.OptionSpec{
				{OptionText: "Tokyo", OptionIsCorrect: true},
			},
		},
	})

	attempts := NewAttemptService(db)
	attempt, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	// pengajar lain tidak boleh membaca attempt assessment orang lain
	_, _, err = attempts.ListByAssessment(ctx, assessment.AssessmentID, otherTeacherID, 0, 20)
	if _, ok := err.(*errs.AuthorizationError); !ok {
		t.Fatalf("list oleh pengajar lain harus AuthorizationError, dapat %v", err)
	}
	_, err = attempts.GetAttemptForInstructor(ctx, attempt.AttemptID, otherTeacherID)
	if _, ok := err.(*errs.AuthorizationError); !ok {
		t.Fatalf("detail oleh pengajar lain harus AuthorizationError, dapat %v", err)
	}

	// pembuatnya sendiri tetap bisa
	rows, total, err := attempts.ListByAssessment(ctx, assessment.AssessmentID, teacherID, 0, 20)
	if err != nil {
		t.Fatalf("ListByAssessment: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("list pembuat: total=%d len=%d, want 1/1", total, len(rows))
	}
	if _, err := attempts.GetAttemptForInstructor(ctx, attempt.AttemptID, teacherID); err != nil {
		t.Fatalf("GetAttemptForInstructor: %v", err)
	}
}

func TestAttemptLimitIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacherID := uuid.New()
	studentID := uuid.New()
	maxAttempts := 1

	assessment, questions := seedAssessment(t, db, teacherID, []qdto.QuestionSpec{
		{
			QuestionType: qmodel.QuestionTypeTrueFalse,
			QuestionText: "Bumi bulat?",
			Options: []qdto.OptionSpec{
				{OptionText: "Benar", OptionIsCorrect: true},
				{OptionText: "Salah"},
			},
		},
	})
	if err := db.Model(&qmodel.AssessmentModel{}).
		Where("assessment_id = ?", assessment.AssessmentID).
		Update("assessment_max_attempts", maxAttempts).Error; err != nil {
		t.Fatalf("set max attempts: %v", err)
	}

	attempts := NewAttemptService(db)
	scoring := NewScoringService(db)

	attempt, err := attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := scoring.SubmitAttempt(ctx, attempt.AttemptID, studentID, &adto.SubmitAttemptRequest{
		Answers: []adto.AnswerSpec{
			{QuestionID: questions[0].QuestionID, SelectedOptionIDs: []uuid.UUID{questions[0].QuestionOptions[0].OptionID}},
		},
	}); err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}

	_, err = attempts.StartAttempt(ctx, assessment.AssessmentID, studentID)
	if _, ok := err.(*errs.LimitExceededError); !ok {
		t.Fatalf("melebihi kuota harus LimitExceededError, dapat %v", err)
	}
}
