package services

import (
	"errors"
	"time"

	"github.com/srinivasreddy0808/backend-quiz-management/models"

	"gorm.io/gorm"
)

// AnalyticsService computes per-user rollups at read time; nothing here is
// persisted.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type DashboardData struct {
	NoOfQuizzes      int          `json:"noOfQuizzes"`
	NoOfQuestions    int          `json:"noOfQuestions"`
	TotalImpressions int64        `json:"totalImpressions"`
	QuizDetails      []QuizDetail `json:"quizDetails"`
}

type QuizDetail struct {
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"createdAt"`
	NoOfImpressions int64     `json:"noOfImpressions"`
}

// trendingThreshold is the impression count a quiz must exceed to show up in
// the dashboard's quiz details.
const trendingThreshold = 10

// Dashboard aggregates the user's quizzes into counts, total impressions and
// the list of quizzes with more than trendingThreshold impressions.
func (s *AnalyticsService) Dashboard(userID uint) (*DashboardData, error) {
	quizzes, err := s.userQuizzes(userID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{QuizDetails: []QuizDetail{}}
	data.NoOfQuizzes = len(quizzes)
	for _, quiz := range quizzes {
		data.NoOfQuestions += len(quiz.Questions)
		data.TotalImpressions += quiz.NoOfImpressions
		if quiz.NoOfImpressions > trendingThreshold {
			data.QuizDetails = append(data.QuizDetails, QuizDetail{
				Title:           quiz.Title,
				CreatedAt:       quiz.CreatedAt,
				NoOfImpressions: quiz.NoOfImpressions,
			})
		}
	}

	return data, nil
}

// AnalyticsTable returns the user with quizzes and questions fully populated
// for client-side tabulation; no reduction happens server-side.
func (s *AnalyticsService) AnalyticsTable(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Quizzes", func(db *gorm.DB) *gorm.DB {
		return db.Order("quizzes.id")
	}).Preload("Quizzes.Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position")
	}).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AnalyticsService) userQuizzes(userID uint) ([]models.Quiz, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var quizzes []models.Quiz
	err := s.db.Where("user_id = ?", userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Order("quizzes.id").
		Find(&quizzes).Error
	return quizzes, err
}
