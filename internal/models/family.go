package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Family is a registered household with an invited-guest quota.
// ConfirmedAttending is a derived display cache recomputed from the
// family's guests after each RSVP submission; it is never authoritative.
type Family struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	FamilyName         string    `json:"family_name"`
	InvitedCount       int       `json:"invited_count"`
	ConfirmedAttending int       `json:"confirmed_attending"`
	Notes              string    `json:"notes,omitempty"`
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
