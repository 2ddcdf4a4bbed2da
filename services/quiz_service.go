package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/srinivasreddy0808/backend-quiz-management/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title     string                  `json:"title" binding:"required"`
	CreatedAt string                  `json:"createdAt" binding:"required"`
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,max=5,dive"`
}

type CreateQuestionRequest struct {
	Text        string                   `json:"text" binding:"required"`
	Options     []string                 `json:"options" binding:"required,min=2,max=4,dive,required"`
	Type        models.QuestionType      `json:"type" binding:"required,oneof=single poll"`
	OptionsType models.OptionsType       `json:"optionsType" binding:"omitempty,oneof=text imageUrl textAndImageUrl"`
	Timer       *int                     `json:"timer" binding:"omitempty,min=0"`
	Analytics   QuestionAnalyticsRequest `json:"analytics"`
}

type QuestionAnalyticsRequest struct {
	Answer string `json:"answer"`
}

type UpdateQuizRequest struct {
	Questions []UpdateQuestionRequest `json:"questions" binding:"required,min=1,max=5,dive"`
}

// UpdateQuestionRequest carries a positional patch: absent fields leave the
// stored question untouched. Type is declared only so that attempts to change
// it can be rejected explicitly.
type UpdateQuestionRequest struct {
	Text    string              `json:"text"`
	Options []string            `json:"options" binding:"omitempty,min=2,max=4,dive,required"`
	Type    models.QuestionType `json:"type"`
	Timer   *int                `json:"timer" binding:"omitempty,min=0"`
}

type SubmitAnswerRequest struct {
	SelectedOption *int `json:"selectedOption" binding:"required,min=0"`
}

type SubmissionResult struct {
	QuestionID uint  `json:"questionId"`
	Attempts   int64 `json:"attempts"`
	Correct    int64 `json:"correct"`
	IsCorrect  *bool `json:"isCorrect,omitempty"`
}

type QuestionRollup struct {
	QuestionID uint  `json:"questionId"`
	Attempts   int64 `json:"attempts"`
	Correct    int64 `json:"correct"`
	Incorrect  int64 `json:"incorrect"`
}

type QuizAnalytics struct {
	Quiz   *models.Quiz     `json:"quiz"`
	Rollup []QuestionRollup `json:"rollup"`
}

// createdAtLayouts accepted for the caller-supplied creation timestamp.
var createdAtLayouts = []string{time.RFC3339, "2006-01-02"}

func parseCreatedAt(raw string) (time.Time, error) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidCreatedAt
}

// CreateQuiz persists the questions and the quiz referencing them in order,
// owned by userID, inside a single transaction.
func (s *QuizService) CreateQuiz(userID uint, req *CreateQuizRequest) (*models.Quiz, error) {
	createdAt, err := parseCreatedAt(req.CreatedAt)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz := models.Quiz{
		Title:     req.Title,
		CreatedAt: createdAt,
		UserID:    userID,
	}
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i, qReq := range req.Questions {
		question := models.Question{
			QuizID:      quiz.ID,
			Position:    i,
			Text:        qReq.Text,
			Options:     qReq.Options,
			Type:        qReq.Type,
			OptionsType: qReq.OptionsType,
			Timer:       qReq.Timer,
			// One zeroed bucket per option so poll tallies never index a
			// missing slot.
			ResponseCounts: make([]int64, len(qReq.Options)),
			Analytics:      models.Analytics{Answer: qReq.Analytics.Answer},
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadQuiz(quiz.ID)
}

// loadQuiz fetches a quiz with its questions in position order.
func (s *QuizService) loadQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position")
	}).First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetQuiz returns the quiz with its questions, counting the retrieval as one
// impression. The increment is a single SQL update so concurrent fetches
// cannot lose counts.
func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	res := s.db.Model(&models.Quiz{}).
		Where("id = ?", quizID).
		UpdateColumn("no_of_impressions", gorm.Expr("no_of_impressions + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrQuizNotFound
	}

	return s.loadQuiz(quizID)
}

func (s *QuizService) findQuestion(quizID, questionID uint) (*models.Question, error) {
	var count int64
	if err := s.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrQuizNotFound
	}

	var question models.Question
	err := s.db.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetQuestion returns a question belonging to the quiz. Fetching a
// single-type question counts as an attempt.
func (s *QuizService) GetQuestion(quizID, questionID uint) (*models.Question, error) {
	question, err := s.findQuestion(quizID, questionID)
	if err != nil {
		return nil, err
	}

	if question.Type == models.QuestionTypeSingle {
		if err := s.db.Model(&models.Question{}).
			Where("id = ?", question.ID).
			UpdateColumn("analytics_attempts", gorm.Expr("analytics_attempts + 1")).Error; err != nil {
			return nil, err
		}
		question.Analytics.Attempts++
	}

	return question, nil
}

// numericAnswerMatches compares the stored answer text against the submitted
// index. An unparsable stored answer never matches.
func numericAnswerMatches(stored string, selected int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(stored))
	return err == nil && n == selected
}

// SubmitAnswer records a submission. Single-type questions get an attempt
// (and, on a match, a correct-answer) increment and report correctness; poll
// questions tally the chosen option's response bucket and report no
// correctness.
func (s *QuizService) SubmitAnswer(quizID, questionID uint, selected int) (*SubmissionResult, error) {
	question, err := s.findQuestion(quizID, questionID)
	if err != nil {
		return nil, err
	}

	if selected < 0 || selected >= len(question.Options) {
		return nil, ErrOptionOutOfRange
	}

	result := &SubmissionResult{QuestionID: question.ID}

	if question.Type == models.QuestionTypeSingle {
		isCorrect := numericAnswerMatches(question.Analytics.Answer, selected)

		cols := map[string]interface{}{
			"analytics_attempts": gorm.Expr("analytics_attempts + 1"),
		}
		if isCorrect {
			cols["analytics_correct_answers"] = gorm.Expr("analytics_correct_answers + 1")
		}
		if err := s.db.Model(&models.Question{}).
			Where("id = ?", question.ID).
			UpdateColumns(cols).Error; err != nil {
			return nil, err
		}

		question.Analytics.Attempts++
		if isCorrect {
			question.Analytics.CorrectAnswers++
		}
		result.IsCorrect = &isCorrect
	} else {
		// Response counts live in a JSON column, so the bump is a
		// read-modify-write kept inside its own transaction.
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var q models.Question
			if err := tx.First(&q, question.ID).Error; err != nil {
				return err
			}
			for len(q.ResponseCounts) < len(q.Options) {
				q.ResponseCounts = append(q.ResponseCounts, 0)
			}
			q.ResponseCounts[selected]++
			question.ResponseCounts = q.ResponseCounts
			return tx.Model(&models.Question{}).
				Where("id = ?", q.ID).
				UpdateColumn("response_counts", q.ResponseCounts).Error
		})
		if err != nil {
			return nil, err
		}
	}

	result.Attempts = question.Analytics.Attempts
	result.Correct = question.Analytics.CorrectAnswers
	return result, nil
}

// UpdateQuiz applies a positional patch to the quiz's questions. The payload
// must carry exactly one entry per stored question, and neither the type of a
// question nor its number of options may change.
func (s *QuizService) UpdateQuiz(quizID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if len(req.Questions) != len(quiz.Questions) {
		return nil, ErrQuestionCountMismatch
	}

	for i, in := range req.Questions {
		if in.Type != "" {
			return nil, ErrQuestionLocked
		}
		if in.Options != nil && len(in.Options) != len(quiz.Questions[i].Options) {
			return nil, ErrQuestionLocked
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		in := req.Questions[i]

		if in.Text != "" {
			question.Text = in.Text
		}
		if in.Options != nil {
			question.Options = in.Options
		}
		if in.Timer != nil {
			question.Timer = in.Timer
		}

		if err := tx.Save(question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadQuiz(quizID)
}

// DeleteQuiz removes the quiz and cascades to its questions inside one
// transaction. Dropping the quiz row also drops the owner's reference to it.
func (s *QuizService) DeleteQuiz(quizID uint) error {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	var owner models.User
	if err := s.db.First(&owner, quiz.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Quiz{}, quiz.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetQuizAnalytics returns the populated quiz together with a per-question
// attempts/correct/incorrect rollup.
func (s *QuizService) GetQuizAnalytics(quizID uint) (*QuizAnalytics, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	rollup := make([]QuestionRollup, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		rollup = append(rollup, QuestionRollup{
			QuestionID: q.ID,
			Attempts:   q.Analytics.Attempts,
			Correct:    q.Analytics.CorrectAnswers,
			Incorrect:  q.Analytics.Attempts - q.Analytics.CorrectAnswers,
		})
	}

	return &QuizAnalytics{Quiz: quiz, Rollup: rollup}, nil
}
