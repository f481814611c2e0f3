package store

import (
	"context"
	"fmt"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"gorm.io/gorm"
)

// CreateFamily registers a family. The confirmed-attending cache always
// starts at zero regardless of what the caller sent.
func (s *Store) CreateFamily(ctx context.Context, family *models.Family) (string, error) {
	if family.FamilyName == "" {
		return "", fmt.Errorf("family name is required")
	}
	if family.InvitedCount < 1 {
		return "", fmt.Errorf("invited count must be at least 1")
	}
	family.ConfirmedAttending = 0

	if err := s.db.WithContext(ctx).Create(family).Error; err != nil {
		return "", err
	}
	s.hub.publish(Event{Collection: Families, Op: OpCreate, ID: family.ID})
	return family.ID, nil
}

func (s *Store) GetFamilyByID(ctx context.Context, id string) (*models.Family, error) {
	var family models.Family
	if err := s.db.WithContext(ctx).First(&family, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &family, nil
}

func (s *Store) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	if err := s.db.WithContext(ctx).Order("family_name").Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

// UpdateFamily applies a partial update keyed by column name.
func (s *Store) UpdateFamily(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Family{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.hub.publish(Event{Collection: Families, Op: OpUpdate, ID: id})
	return nil
}

// DeleteFamily removes the family and all its guests in one transaction.
// Orphaned guests would still validate at the door, so the cascade is
// deliberate.
func (s *Store) DeleteFamily(ctx context.Context, id string) error {
	var guestIDs []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var family models.Family
		if err := tx.First(&family, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&models.Guest{}).Where("family_id = ?", id).Pluck("id", &guestIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Family{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	for _, gid := range guestIDs {
		s.hub.publish(Event{Collection: Guests, Op: OpDelete, ID: gid})
	}
	s.hub.publish(Event{Collection: Families, Op: OpDelete, ID: id})
	s.log.Info().Str("family_id", id).Int("guests", len(guestIDs)).Msg("family deleted with guest cascade")
	return nil
}
