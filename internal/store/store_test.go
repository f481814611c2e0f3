package store

import (
	"context"
	"errors"
	"testing"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Family{}, &models.Guest{}, &models.Rsvp{})

	return New(db, zerolog.Nop())
}

func TestFamilyLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateFamily(ctx, &models.Family{
		FamilyName:         "Alarcon",
		InvitedCount:       4,
		ConfirmedAttending: 99, // must be ignored
	})
	if err != nil {
		t.Fatalf("CreateFamily returned error: %v", err)
	}

	family, err := s.GetFamilyByID(ctx, id)
	if err != nil {
		t.Fatalf("GetFamilyByID returned error: %v", err)
	}
	if family.ConfirmedAttending != 0 {
		t.Errorf("expected confirmed_attending forced to 0, got %d", family.ConfirmedAttending)
	}

	if err := s.UpdateFamily(ctx, id, map[string]any{"notes": "table 5"}); err != nil {
		t.Fatalf("UpdateFamily returned error: %v", err)
	}
	family, _ = s.GetFamilyByID(ctx, id)
	if family.Notes != "table 5" {
		t.Errorf("expected notes 'table 5', got %q", family.Notes)
	}
}

func TestCreateFamilyRejectsBadInvitedCount(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateFamily(context.Background(), &models.Family{FamilyName: "Solo", InvitedCount: 0})
	if err == nil {
		t.Fatal("expected error for invited count < 1, got nil")
	}
}

func TestGetFamilyNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetFamilyByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGuestRequiresExistingFamily(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateGuest(context.Background(), &models.Guest{Name: "Ana", FamilyID: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing family, got %v", err)
	}
}

func TestListGuestsByFamily(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famA, _ := s.CreateFamily(ctx, &models.Family{FamilyName: "A", InvitedCount: 2})
	famB, _ := s.CreateFamily(ctx, &models.Family{FamilyName: "B", InvitedCount: 2})

	s.CreateGuest(ctx, &models.Guest{Name: "Ana", FamilyID: famA})
	s.CreateGuest(ctx, &models.Guest{Name: "Luis", FamilyID: famA})
	s.CreateGuest(ctx, &models.Guest{Name: "Marta", FamilyID: famB})

	guests, err := s.ListGuestsByFamily(ctx, famA)
	if err != nil {
		t.Fatalf("ListGuestsByFamily returned error: %v", err)
	}
	if len(guests) != 2 {
		t.Fatalf("expected 2 guests for family A, got %d", len(guests))
	}
	for _, g := range guests {
		if g.FamilyID != famA {
			t.Errorf("guest %s has family %s, want %s", g.Name, g.FamilyID, famA)
		}
	}
}

func TestDeleteFamilyCascadesToGuests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, _ := s.CreateFamily(ctx, &models.Family{FamilyName: "Cascade", InvitedCount: 2})
	guestID, _ := s.CreateGuest(ctx, &models.Guest{Name: "Ana", FamilyID: famID})

	if err := s.DeleteFamily(ctx, famID); err != nil {
		t.Fatalf("DeleteFamily returned error: %v", err)
	}

	if _, err := s.GetFamilyByID(ctx, famID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected family gone, got %v", err)
	}
	if _, err := s.GetGuestByID(ctx, guestID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected guest cascade-deleted, got %v", err)
	}
}

func TestSubscribeReceivesMutations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	events, cancel := s.Subscribe(Guests)
	defer cancel()

	famID, _ := s.CreateFamily(ctx, &models.Family{FamilyName: "Sub", InvitedCount: 1})
	guestID, _ := s.CreateGuest(ctx, &models.Guest{Name: "Ana", FamilyID: famID})

	ev := <-events
	if ev.Op != OpCreate || ev.ID != guestID {
		t.Errorf("expected create event for %s, got %+v", guestID, ev)
	}

	s.UpdateGuest(ctx, guestID, map[string]any{"confirmed": true})
	ev = <-events
	if ev.Op != OpUpdate {
		t.Errorf("expected update event, got %+v", ev)
	}

	// Cancel twice; the second must be a no-op.
	cancel()
	cancel()
}

func TestRsvpAppendOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, _ := s.CreateFamily(ctx, &models.Family{FamilyName: "Audit", InvitedCount: 1})
	guestID, _ := s.CreateGuest(ctx, &models.Guest{Name: "Ana", FamilyID: famID})

	_, err := s.CreateRsvp(ctx, &models.Rsvp{
		GuestID:    guestID,
		FullName:   "Ana",
		Attending:  true,
		GuestCount: 1,
		Allergies:  []string{"nuts"},
	})
	if err != nil {
		t.Fatalf("CreateRsvp returned error: %v", err)
	}

	rsvps, err := s.ListRsvpsByGuest(ctx, guestID)
	if err != nil {
		t.Fatalf("ListRsvpsByGuest returned error: %v", err)
	}
	if len(rsvps) != 1 {
		t.Fatalf("expected 1 rsvp, got %d", len(rsvps))
	}
	if rsvps[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set on create")
	}
	if len(rsvps[0].Allergies) != 1 || rsvps[0].Allergies[0] != "nuts" {
		t.Errorf("allergies round-trip failed: %v", rsvps[0].Allergies)
	}
}
