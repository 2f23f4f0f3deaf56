package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload is one submitted exam PDF and the questions extracted from it.
type Upload struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string     `json:"owner_id" gorm:"not null;index"`
	Filename    string     `json:"filename" gorm:"not null"`
	Subject     Subject    `json:"subject" gorm:"type:varchar(40);not null"`
	PDFPath     *string    `json:"pdf_path,omitempty"`                 // nil until the archive write lands
	RawResponse string     `json:"-" gorm:"type:text"`                 // truncated extraction output
	Published   bool       `json:"published" gorm:"not null;default:false;index"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:UploadID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
