package models

import (
	"gorm.io/gorm"
)

// Host is an organizer account allowed into the data-registration and
// audit surfaces. Hosts sign in with email/password or with Google OAuth
// when their address is on the configured allowlist.
type Host struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string `json:"-"`
	GoogleID     string
}
