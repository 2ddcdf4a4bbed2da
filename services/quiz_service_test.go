package services_test

import (
	"errors"
	"testing"

	"github.com/srinivasreddy0808/backend-quiz-management/models"
	"github.com/srinivasreddy0808/backend-quiz-management/services"
)

func TestCreateQuizPersistsQuestionsInOrder(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)

	quiz := createSampleQuiz(t, db, owner.ID)

	if quiz.UserID != owner.ID {
		t.Fatalf("quiz owned by %d, want %d", quiz.UserID, owner.ID)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].Text != "2+2?" || quiz.Questions[1].Text != "Favourite colour?" {
		t.Fatalf("questions out of order: %q, %q", quiz.Questions[0].Text, quiz.Questions[1].Text)
	}
	if got := quiz.Questions[1].ResponseCounts; len(got) != 3 {
		t.Fatalf("expected 3 zeroed response buckets, got %v", got)
	}
	if quiz.NoOfImpressions != 0 {
		t.Fatalf("fresh quiz has %d impressions, want 0", quiz.NoOfImpressions)
	}
}

func TestCreateQuizRejectsBadCreatedAt(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)

	req := sampleCreateRequest()
	req.CreatedAt = "not-a-date"
	if _, err := services.NewQuizService(db).CreateQuiz(owner.ID, req); err == nil {
		t.Fatal("expected an error for an unparsable createdAt")
	}
}

func TestGetQuizIncrementsImpressions(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	first, err := svc.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if first.NoOfImpressions != 1 {
		t.Fatalf("expected 1 impression, got %d", first.NoOfImpressions)
	}

	second, err := svc.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if second.NoOfImpressions != 2 {
		t.Fatalf("expected 2 impressions, got %d", second.NoOfImpressions)
	}
	if second.Title != first.Title || len(second.Questions) != len(first.Questions) {
		t.Fatal("quiz content changed between fetches")
	}
}

func TestGetQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := services.NewQuizService(db).GetQuiz(999); !errors.Is(err, services.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestGetQuestionCountsAttemptForSingleOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	single := quiz.Questions[0]
	poll := quiz.Questions[1]

	got, err := svc.GetQuestion(quiz.ID, single.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.Analytics.Attempts != 1 {
		t.Fatalf("expected 1 attempt after fetch, got %d", got.Analytics.Attempts)
	}

	gotPoll, err := svc.GetQuestion(quiz.ID, poll.ID)
	if err != nil {
		t.Fatalf("get poll question: %v", err)
	}
	if gotPoll.Analytics.Attempts != 0 {
		t.Fatalf("poll fetch must not count attempts, got %d", gotPoll.Analytics.Attempts)
	}

	var stored models.Question
	if err := db.First(&stored, single.ID).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	if stored.Analytics.Attempts != 1 {
		t.Fatalf("attempt increment not persisted, got %d", stored.Analytics.Attempts)
	}
}

func TestGetQuestionMustBelongToQuiz(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	svc := services.NewQuizService(db)

	quizA := createSampleQuiz(t, db, owner.ID)
	quizB, err := svc.CreateQuiz(owner.ID, sampleCreateRequest())
	if err != nil {
		t.Fatalf("create second quiz: %v", err)
	}

	if _, err := svc.GetQuestion(quizA.ID, quizB.Questions[0].ID); !errors.Is(err, services.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if _, err := svc.GetQuestion(999, quizA.Questions[0].ID); !errors.Is(err, services.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitAnswerSingle(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)
	questionID := quiz.Questions[0].ID // correct answer index is 1

	res, err := svc.SubmitAnswer(quiz.ID, questionID, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.IsCorrect == nil || !*res.IsCorrect {
		t.Fatalf("expected a correct submission, got %+v", res)
	}
	if res.Attempts != 1 || res.Correct != 1 {
		t.Fatalf("expected attempts=1 correct=1, got attempts=%d correct=%d", res.Attempts, res.Correct)
	}

	res, err = svc.SubmitAnswer(quiz.ID, questionID, 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.IsCorrect == nil || *res.IsCorrect {
		t.Fatalf("expected an incorrect submission, got %+v", res)
	}
	if res.Attempts != 2 || res.Correct != 1 {
		t.Fatalf("expected attempts=2 correct=1, got attempts=%d correct=%d", res.Attempts, res.Correct)
	}
}

func TestSubmitAnswerPollTalliesBucket(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)
	poll := quiz.Questions[1]

	res, err := svc.SubmitAnswer(quiz.ID, poll.ID, 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.IsCorrect != nil {
		t.Fatalf("poll submissions must not report correctness, got %v", *res.IsCorrect)
	}

	var stored models.Question
	if err := db.First(&stored, poll.ID).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	want := []int64{0, 0, 1}
	for i, n := range stored.ResponseCounts {
		if n != want[i] {
			t.Fatalf("response counts %v, want %v", stored.ResponseCounts, want)
		}
	}
	if stored.Analytics.Attempts != 0 {
		t.Fatalf("poll submission must not bump attempts, got %d", stored.Analytics.Attempts)
	}
}

func TestSubmitAnswerRejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	if _, err := svc.SubmitAnswer(quiz.ID, quiz.Questions[1].ID, 7); !errors.Is(err, services.ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange, got %v", err)
	}
}

func TestUpdateQuizCountMismatch(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	req := &services.UpdateQuizRequest{Questions: []services.UpdateQuestionRequest{{Text: "only one"}}}
	if _, err := svc.UpdateQuiz(quiz.ID, req); !errors.Is(err, services.ErrQuestionCountMismatch) {
		t.Fatalf("expected ErrQuestionCountMismatch, got %v", err)
	}
}

func TestUpdateQuizLocksTypeAndOptionCount(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	typeChange := &services.UpdateQuizRequest{Questions: []services.UpdateQuestionRequest{
		{Type: models.QuestionTypePoll},
		{},
	}}
	if _, err := svc.UpdateQuiz(quiz.ID, typeChange); !errors.Is(err, services.ErrQuestionLocked) {
		t.Fatalf("expected ErrQuestionLocked for type change, got %v", err)
	}

	optionCountChange := &services.UpdateQuizRequest{Questions: []services.UpdateQuestionRequest{
		{Options: []string{"3", "4", "5"}}, // stored question has 2 options
		{},
	}}
	if _, err := svc.UpdateQuiz(quiz.ID, optionCountChange); !errors.Is(err, services.ErrQuestionLocked) {
		t.Fatalf("expected ErrQuestionLocked for option count change, got %v", err)
	}
}

func TestUpdateQuizPatchesPositionally(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	timer := 60
	req := &services.UpdateQuizRequest{Questions: []services.UpdateQuestionRequest{
		{Text: "What is 2+2?", Options: []string{"three", "four"}},
		{Timer: &timer},
	}}

	updated, err := svc.UpdateQuiz(quiz.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	first := updated.Questions[0]
	if first.Text != "What is 2+2?" {
		t.Fatalf("text not updated: %q", first.Text)
	}
	if first.Options[0] != "three" || first.Options[1] != "four" {
		t.Fatalf("options not updated: %v", first.Options)
	}
	if first.Timer == nil || *first.Timer != 30 {
		t.Fatal("absent timer field must leave stored timer untouched")
	}

	second := updated.Questions[1]
	if second.Text != "Favourite colour?" {
		t.Fatalf("absent text field must leave stored text untouched, got %q", second.Text)
	}
	if second.Timer == nil || *second.Timer != 60 {
		t.Fatalf("timer not updated: %v", second.Timer)
	}
}

func TestUpdateQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	req := &services.UpdateQuizRequest{Questions: []services.UpdateQuestionRequest{{}}}
	if _, err := services.NewQuizService(db).UpdateQuiz(42, req); !errors.Is(err, services.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)

	if err := svc.DeleteQuiz(quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetQuiz(quiz.ID); !errors.Is(err, services.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound after delete, got %v", err)
	}

	var questionCount int64
	if err := db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questionCount != 0 {
		t.Fatalf("expected questions to be cascade-deleted, %d remain", questionCount)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Where("id = ?", owner.ID).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 1 {
		t.Fatal("owner must survive quiz deletion")
	}

	if err := svc.DeleteQuiz(quiz.ID); !errors.Is(err, services.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound on repeat delete, got %v", err)
	}
}

func TestGetQuizAnalyticsRollup(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db)
	quiz := createSampleQuiz(t, db, owner.ID)
	svc := services.NewQuizService(db)
	questionID := quiz.Questions[0].ID

	// Two attempts, one correct.
	if _, err := svc.SubmitAnswer(quiz.ID, questionID, 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SubmitAnswer(quiz.ID, questionID, 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	analytics, err := svc.GetQuizAnalytics(quiz.ID)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(analytics.Rollup) != 2 {
		t.Fatalf("expected a rollup entry per question, got %d", len(analytics.Rollup))
	}
	entry := analytics.Rollup[0]
	if entry.QuestionID != questionID || entry.Attempts != 2 || entry.Correct != 1 || entry.Incorrect != 1 {
		t.Fatalf("unexpected rollup entry: %+v", entry)
	}
	if analytics.Quiz == nil || len(analytics.Quiz.Questions) != 2 {
		t.Fatal("analytics must include the populated quiz")
	}
}
