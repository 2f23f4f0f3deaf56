package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one user's timed run through an upload. CompletedAt doubles as
// the "final" flag: once set, the attempt is never scored again.
type Attempt struct {
	ID               string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UploadID         string          `json:"upload_id" gorm:"type:varchar(36);not null;index"`
	Upload           Upload          `json:"-" gorm:"foreignKey:UploadID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OwnerID          string          `json:"owner_id" gorm:"not null;index"`
	TotalQuestions   int             `json:"total_questions" gorm:"not null"`
	StartedAt        time.Time       `json:"started_at" gorm:"not null"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	CorrectCount     int             `json:"correct_count"`
	IncorrectCount   int             `json:"incorrect_count"`
	UnansweredCount  int             `json:"unanswered_count"`
	Answers          []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Attempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
