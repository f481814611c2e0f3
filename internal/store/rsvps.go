package store

import (
	"context"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
)

// CreateRsvp appends an audit snapshot. Rsvp rows are never updated or
// deleted afterwards.
func (s *Store) CreateRsvp(ctx context.Context, rsvp *models.Rsvp) (string, error) {
	if err := s.db.WithContext(ctx).Create(rsvp).Error; err != nil {
		return "", err
	}
	s.hub.publish(Event{Collection: Rsvps, Op: OpCreate, ID: rsvp.ID})
	return rsvp.ID, nil
}

func (s *Store) ListRsvps(ctx context.Context) ([]models.Rsvp, error) {
	var rsvps []models.Rsvp
	if err := s.db.WithContext(ctx).Order("timestamp desc").Find(&rsvps).Error; err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (s *Store) ListRsvpsByGuest(ctx context.Context, guestID string) ([]models.Rsvp, error) {
	var rsvps []models.Rsvp
	if err := s.db.WithContext(ctx).Where("guest_id = ?", guestID).Order("timestamp desc").Find(&rsvps).Error; err != nil {
		return nil, err
	}
	return rsvps, nil
}
