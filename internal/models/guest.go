package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is an individual invitee belonging to exactly one family.
//
// Confirmed and Attending are pointers because absence is meaningful:
// a guest with Confirmed unset (or false) is still pending, and Attending
// only carries meaning once Confirmed is true. An Attending value on an
// unconfirmed guest is a selection that has not been submitted yet.
type Guest struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	FamilyID     string    `gorm:"index" json:"family_id"`
	Confirmed    *bool     `json:"confirmed,omitempty"`
	Attending    *bool     `json:"attending,omitempty"`
	FavoriteSong string    `json:"favorite_song,omitempty"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// IsConfirmed reports whether the guest has made a definitive decision.
func (g Guest) IsConfirmed() bool {
	return g.Confirmed != nil && *g.Confirmed
}

// IsAttending reports whether the guest confirmed and decided to attend.
func (g Guest) IsAttending() bool {
	return g.IsConfirmed() && g.Attending != nil && *g.Attending
}
