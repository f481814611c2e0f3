package store

import (
	"context"
	"fmt"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
)

// CreateGuest adds an invitee. The owning family must already exist.
func (s *Store) CreateGuest(ctx context.Context, guest *models.Guest) (string, error) {
	if guest.Name == "" {
		return "", fmt.Errorf("guest name is required")
	}
	if guest.FamilyID == "" {
		return "", fmt.Errorf("guest family id is required")
	}
	if _, err := s.GetFamilyByID(ctx, guest.FamilyID); err != nil {
		return "", fmt.Errorf("resolving family %s: %w", guest.FamilyID, err)
	}

	if err := s.db.WithContext(ctx).Create(guest).Error; err != nil {
		return "", err
	}
	s.hub.publish(Event{Collection: Guests, Op: OpCreate, ID: guest.ID})
	return guest.ID, nil
}

func (s *Store) GetGuestByID(ctx context.Context, id string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.WithContext(ctx).First(&guest, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &guest, nil
}

func (s *Store) ListGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).Order("name").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// ListGuestsByFamily is the query-by-field lookup behind the family RSVP
// page.
func (s *Store) ListGuestsByFamily(ctx context.Context, familyID string) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Order("name").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// UpdateGuest applies a partial update keyed by column name.
func (s *Store) UpdateGuest(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.hub.publish(Event{Collection: Guests, Op: OpUpdate, ID: id})
	return nil
}

func (s *Store) DeleteGuest(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Guest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.hub.publish(Event{Collection: Guests, Op: OpDelete, ID: id})
	return nil
}
