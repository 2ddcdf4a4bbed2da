package models

type QuestionType string

const (
	QuestionTypeSingle QuestionType = "single"
	QuestionTypePoll   QuestionType = "poll"
)

type OptionsType string

const (
	OptionsTypeText            OptionsType = "text"
	OptionsTypeImageURL        OptionsType = "imageUrl"
	OptionsTypeTextAndImageURL OptionsType = "textAndImageUrl"
)

// Analytics holds the per-question counters. Answer stores the correct
// option index as text for single-type questions and is compared
// numerically against submissions.
type Analytics struct {
	Answer         string `json:"answer"`
	Attempts       int64  `json:"attempts" gorm:"not null;default:0"`
	CorrectAnswers int64  `json:"correctAnswers" gorm:"not null;default:0"`
}

type Question struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	QuizID         uint         `json:"quiz_id" gorm:"not null;index"`
	Position       int          `json:"-" gorm:"not null"`
	Text           string       `json:"text" gorm:"not null"`
	Options        []string     `json:"options" gorm:"serializer:json;not null"`
	Type           QuestionType `json:"type" gorm:"not null"`
	OptionsType    OptionsType  `json:"optionsType,omitempty"`
	Timer          *int         `json:"timer,omitempty"` // seconds
	ResponseCounts []int64      `json:"responseCounts" gorm:"serializer:json"`
	Analytics      Analytics    `json:"analytics" gorm:"embedded;embeddedPrefix:analytics_"`
}
