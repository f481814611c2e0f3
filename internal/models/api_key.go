package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey authenticates an event-day check-in terminal. Terminals send the
// key in the X-API-KEY header instead of carrying a host session cookie.
type APIKey struct {
	gorm.Model
	HostID     uint       `json:"host_id"`
	Host       Host       `json:"host"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
