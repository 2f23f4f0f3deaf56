package model

import (
	"time"
)

// AttemptAnswer is one (attempt, question) response. SelectedAnswer nil means
// unanswered; AIAnswer is only filled when the question had no known key at
// scoring time.
type AttemptAnswer struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	AttemptID      string     `json:"attempt_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_answer_pair"`
	QuestionID     uint       `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_answer_pair"`
	Question       Question   `json:"-" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SelectedAnswer *string    `json:"selected_answer,omitempty" gorm:"type:varchar(1)"`
	IsFlagged      bool       `json:"is_flagged" gorm:"not null;default:false"`
	AIAnswer       *string    `json:"ai_answer,omitempty" gorm:"type:varchar(1)"`
	IsCorrect      bool       `json:"is_correct" gorm:"not null;default:false"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
