package model

import (
	"time"
)

// Question is one extracted multiple-choice item. Position is 1-based and
// unique within its upload.
type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UploadID      string    `json:"upload_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_question_upload_position"`
	Position      int       `json:"position" gorm:"not null;uniqueIndex:idx_question_upload_position"`
	ContentType   string    `json:"content_type" gorm:"type:varchar(16)"` // "code", "image", "text"
	Stem          string    `json:"stem" gorm:"type:text;not null"`
	Reference     *string   `json:"reference,omitempty" gorm:"type:text"`
	OptionA       *string   `json:"option_a,omitempty" gorm:"type:text"`
	OptionB       *string   `json:"option_b,omitempty" gorm:"type:text"`
	OptionC       *string   `json:"option_c,omitempty" gorm:"type:text"`
	OptionD       *string   `json:"option_d,omitempty" gorm:"type:text"`
	OptionE       *string   `json:"option_e,omitempty" gorm:"type:text"`
	CorrectAnswer *string   `json:"correct_answer,omitempty" gorm:"type:varchar(1)"`
	PageNumber    *int      `json:"page_number,omitempty"`
	Precondition  *string   `json:"precondition,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Options returns the five option slots in A-E order.
func (q *Question) Options() [5]*string {
	return [5]*string{q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.OptionE}
}

// SetOptions assigns the five option slots in A-E order.
func (q *Question) SetOptions(opts [5]*string) {
	q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.OptionE = opts[0], opts[1], opts[2], opts[3], opts[4]
}

// HasOptions reports whether at least one option slot is filled.
func (q *Question) HasOptions() bool {
	for _, o := range q.Options() {
		if o != nil {
			return true
		}
	}
	return false
}

// HasKnownAnswer reports whether the extracted answer key is usable.
func (q *Question) HasKnownAnswer() bool {
	return q.CorrectAnswer != nil && IsLetter(*q.CorrectAnswer)
}
