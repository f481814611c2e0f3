package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rsvp is an append-only audit snapshot of a confirmation, written once
// per newly decided guest per submission and never mutated afterwards.
type Rsvp struct {
	ID                  string    `gorm:"primaryKey" json:"id"`
	GuestID             string    `gorm:"index" json:"guest_id"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email,omitempty"`
	Attending           bool      `json:"attending"`
	GuestCount          int       `json:"guest_count"`
	Allergies           []string  `gorm:"serializer:json" json:"allergies"`
	OtherAllergies      string    `json:"other_allergies,omitempty"`
	Message             string    `json:"message,omitempty"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	Song                string    `json:"song,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

func (r *Rsvp) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	return nil
}
