package models

import (
	"time"
)

type Quiz struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null"`
	// CreatedAt is supplied by the caller on creation, not by the store.
	CreatedAt       time.Time `json:"createdAt" gorm:"not null"`
	NoOfImpressions int64     `json:"noOfImpressions" gorm:"not null;default:0"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}
