// Package store is the typed adapter over the wedding document
// collections (families, guests, rsvps). It exposes per-collection
// create/update/delete/get/query operations plus change subscriptions,
// and is the only package that touches guest and family rows directly.
package store

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrNotFound reports that an identifier resolved to no record. Callers
// rely on this to tell absence apart from a backend failure.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db  *gorm.DB
	hub *hub
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		hub: newHub(),
		log: log.With().Str("component", "store").Logger(),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
