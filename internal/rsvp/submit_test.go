package rsvp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingGuestNotifier struct {
	sent []string // guest IDs
	uris []string
	fail bool
}

func (n *recordingGuestNotifier) NotifyConfirmation(ctx context.Context, guest models.Guest, qrDataURI string) error {
	if n.fail {
		return errors.New("smtp down")
	}
	n.sent = append(n.sent, guest.ID)
	n.uris = append(n.uris, qrDataURI)
	return nil
}

type recordingHostNotifier struct {
	families []string
}

func (n *recordingHostNotifier) NotifySubmission(ctx context.Context, family models.Family, confirmed []models.Guest) error {
	n.families = append(n.families, family.FamilyName)
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Family{}, &models.Guest{}, &models.Rsvp{})
	return store.New(db, zerolog.Nop())
}

func seedFamily(t *testing.T, s *store.Store, guestNames ...string) (string, []string) {
	t.Helper()
	ctx := context.Background()

	famID, err := s.CreateFamily(ctx, &models.Family{FamilyName: "Alarcon", InvitedCount: len(guestNames)})
	if err != nil {
		t.Fatalf("seed family: %v", err)
	}
	var ids []string
	for _, name := range guestNames {
		id, err := s.CreateGuest(ctx, &models.Guest{Name: name, FamilyID: famID})
		if err != nil {
			t.Fatalf("seed guest %s: %v", name, err)
		}
		ids = append(ids, id)
	}
	return famID, ids
}

func TestSubmitConfirmsGuestsAndUpdatesAggregate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana", "Luis")
	guestNotifier := &recordingGuestNotifier{}
	hostNotifier := &recordingHostNotifier{}
	sub := NewSubmitter(s, guestNotifier, hostNotifier, "https://boda.example", zerolog.Nop())

	result, err := sub.Submit(ctx, famID, []Selection{
		{GuestID: ids[0], Attending: true, Email: "ana@example.com", FavoriteSong: "Vivir Mi Vida"},
		{GuestID: ids[1], Attending: false},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if result.Outcome != OutcomeSubmitted {
		t.Errorf("expected outcome submitted, got %s", result.Outcome)
	}
	if len(result.Confirmed) != 2 {
		t.Errorf("expected 2 confirmed guests, got %d", len(result.Confirmed))
	}
	if result.ConfirmedAttending != 1 {
		t.Errorf("expected aggregate 1, got %d", result.ConfirmedAttending)
	}

	ana, _ := s.GetGuestByID(ctx, ids[0])
	if !ana.IsAttending() {
		t.Error("expected Ana confirmed-attending")
	}
	if ana.FavoriteSong != "Vivir Mi Vida" {
		t.Errorf("expected favorite song persisted, got %q", ana.FavoriteSong)
	}

	luis, _ := s.GetGuestByID(ctx, ids[1])
	if !luis.IsConfirmed() || luis.IsAttending() {
		t.Error("expected Luis confirmed-declined")
	}

	family, _ := s.GetFamilyByID(ctx, famID)
	if family.ConfirmedAttending != 1 {
		t.Errorf("expected family aggregate 1, got %d", family.ConfirmedAttending)
	}

	// Only the attending guest with an email gets the check-in code.
	if len(guestNotifier.sent) != 1 || guestNotifier.sent[0] != ids[0] {
		t.Errorf("expected one notification for Ana, got %v", guestNotifier.sent)
	}
	if !strings.HasPrefix(guestNotifier.uris[0], "data:image/png;base64,") {
		t.Error("expected QR data URI in notification")
	}

	if len(hostNotifier.families) != 1 {
		t.Errorf("expected one host notification, got %d", len(hostNotifier.families))
	}

	// Audit rows: one per newly decided guest.
	rsvps, _ := s.ListRsvps(ctx)
	if len(rsvps) != 2 {
		t.Errorf("expected 2 audit rows, got %d", len(rsvps))
	}
}

func TestSubmitAlreadyCompleteIssuesNoWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana")
	sub := NewSubmitter(s, nil, nil, "https://boda.example", zerolog.Nop())

	if _, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[0], Attending: true, Email: "ana@example.com"}}); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}

	events, cancel := s.Subscribe(store.Guests)
	defer cancel()

	result, err := sub.Submit(ctx, famID, nil)
	if err != nil {
		t.Fatalf("second Submit returned error: %v", err)
	}
	if result.Outcome != OutcomeAlreadyComplete {
		t.Errorf("expected already-complete, got %s", result.Outcome)
	}

	select {
	case ev := <-events:
		t.Errorf("expected no guest writes, saw %+v", ev)
	default:
	}
}

func TestSubmitNoNewSelection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, _ := seedFamily(t, s, "Ana", "Luis")
	sub := NewSubmitter(s, nil, nil, "https://boda.example", zerolog.Nop())

	events, cancel := s.Subscribe(store.Guests)
	defer cancel()

	result, err := sub.Submit(ctx, famID, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Outcome != OutcomeNoNewSelection {
		t.Errorf("expected no-new-selection, got %s", result.Outcome)
	}

	select {
	case ev := <-events:
		t.Errorf("expected no guest writes, saw %+v", ev)
	default:
	}
}

func TestSubmitAttendingWithoutEmailFailsBeforeAnyWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana", "Luis")
	sub := NewSubmitter(s, nil, nil, "https://boda.example", zerolog.Nop())

	events, cancel := s.Subscribe(store.Guests)
	defer cancel()

	_, err := sub.Submit(ctx, famID, []Selection{
		{GuestID: ids[0], Attending: true}, // no email
		{GuestID: ids[1], Attending: false},
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.GuestName != "Ana" {
		t.Errorf("expected error to name Ana, got %q", vErr.GuestName)
	}

	select {
	case ev := <-events:
		t.Errorf("expected fail-fast before any write, saw %+v", ev)
	default:
	}

	// Declining without an email is fine.
	if _, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[1], Attending: false}}); err != nil {
		t.Fatalf("declining without email should succeed, got %v", err)
	}
}

func TestSubmitNotificationFailureDoesNotFailSubmission(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana")
	guestNotifier := &recordingGuestNotifier{fail: true}
	sub := NewSubmitter(s, guestNotifier, nil, "https://boda.example", zerolog.Nop())

	result, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[0], Attending: true, Email: "ana@example.com"}})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Outcome != OutcomeSubmitted {
		t.Errorf("expected submitted despite notifier failure, got %s", result.Outcome)
	}

	ana, _ := s.GetGuestByID(ctx, ids[0])
	if !ana.IsAttending() {
		t.Error("expected confirmation durable despite notifier failure")
	}
}

func TestSubmitIgnoresSelectionsForConfirmedGuests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana", "Luis")
	sub := NewSubmitter(s, nil, nil, "https://boda.example", zerolog.Nop())

	if _, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[0], Attending: true, Email: "ana@example.com"}}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// Ana already confirmed; flipping her selection must not re-decide her.
	result, err := sub.Submit(ctx, famID, []Selection{
		{GuestID: ids[0], Attending: false},
		{GuestID: ids[1], Attending: true, Email: "luis@example.com"},
	})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if len(result.Confirmed) != 1 || result.Confirmed[0].ID != ids[1] {
		t.Fatalf("expected only Luis newly confirmed, got %+v", result.Confirmed)
	}

	ana, _ := s.GetGuestByID(ctx, ids[0])
	if !ana.IsAttending() {
		t.Error("expected Ana still confirmed-attending")
	}

	family, _ := s.GetFamilyByID(ctx, famID)
	if family.ConfirmedAttending != 2 {
		t.Errorf("expected aggregate 2 after both submissions, got %d", family.ConfirmedAttending)
	}
}

func TestConcurrentAggregateRecomputeLastWriterWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	famID, ids := seedFamily(t, s, "Ana", "Luis")
	sub := NewSubmitter(s, nil, nil, "https://boda.example", zerolog.Nop())

	// Two sequential submissions standing in for two devices; whichever
	// aggregate write lands last reflects the reloaded guest list at that
	// point. After both, the cache matches the true attending count.
	if _, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[0], Attending: true, Email: "ana@example.com"}}); err != nil {
		t.Fatalf("device A submit: %v", err)
	}
	if _, err := sub.Submit(ctx, famID, []Selection{{GuestID: ids[1], Attending: true, Email: "luis@example.com"}}); err != nil {
		t.Fatalf("device B submit: %v", err)
	}

	family, _ := s.GetFamilyByID(ctx, famID)
	if family.ConfirmedAttending != 2 {
		t.Errorf("expected final aggregate 2, got %d", family.ConfirmedAttending)
	}
}
