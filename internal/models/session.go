package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one uploaded-resume interview context. Chunks in the vector
// store and conversation turns reference it by ID.
type Session struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         string    `gorm:"type:text;not null;index" json:"user_id"`
	FileName       string    `gorm:"type:text" json:"file_name"`
	PDFPath        string    `gorm:"type:text" json:"-"`
	JobDescription *string   `gorm:"type:text" json:"job_description,omitempty"`
	Difficulty     *string   `gorm:"type:text" json:"difficulty,omitempty"`
	ATSScore       *int      `gorm:"type:int" json:"ats_score,omitempty"`
	ATSAnalysis    *string   `gorm:"type:jsonb" json:"-"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
