package services_test

import (
	"testing"
	"time"

	"github.com/srinivasreddy0808/backend-quiz-management/models"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Question{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *services.AuthService {
	t.Helper()
	return services.NewAuthService(db, "test-secret", time.Hour)
}

func createOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	auth := newAuthService(t, db)
	user, _, err := auth.Signup(&services.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return user
}

func sampleCreateRequest() *services.CreateQuizRequest {
	timer := 30
	return &services.CreateQuizRequest{
		Title:     "General Knowledge",
		CreatedAt: "2024-01-01",
		Questions: []services.CreateQuestionRequest{
			{
				Text:      "2+2?",
				Options:   []string{"3", "4"},
				Type:      models.QuestionTypeSingle,
				Timer:     &timer,
				Analytics: services.QuestionAnalyticsRequest{Answer: "1"},
			},
			{
				Text:    "Favourite colour?",
				Options: []string{"red", "green", "blue"},
				Type:    models.QuestionTypePoll,
			},
		},
	}
}

func createSampleQuiz(t *testing.T, db *gorm.DB, ownerID uint) *models.Quiz {
	t.Helper()
	quiz, err := services.NewQuizService(db).CreateQuiz(ownerID, sampleCreateRequest())
	if err != nil {
		t.Fatalf("create quiz failed: %v", err)
	}
	return quiz
}
