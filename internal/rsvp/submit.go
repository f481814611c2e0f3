// Package rsvp implements the family submission flow: it persists the
// newly decided guests, fires the confirmation side effects, and
// refreshes the family's confirmed-attending cache.
package rsvp

import (
	"context"
	"fmt"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/qr"
	"github.com/nuestraboda/wedding-rsvp-api/internal/status"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Outcome string

const (
	// OutcomeSubmitted: at least one guest was newly confirmed.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeAlreadyComplete: every guest had already decided; nothing to do.
	OutcomeAlreadyComplete Outcome = "already-complete"
	// OutcomeNoNewSelection: guests are still pending but none carried a
	// selection; the store is not contacted.
	OutcomeNoNewSelection Outcome = "no-new-selection"
)

// Selection is one guest's in-memory attendance choice from the RSVP page.
type Selection struct {
	GuestID        string
	Attending      bool
	Email          string
	Phone          string
	FavoriteSong   string
	GuestCount     int
	Allergies      []string
	OtherAllergies string
	Message        string
}

// Result reports what a submission did.
type Result struct {
	Outcome            Outcome
	Confirmed          []models.Guest
	ConfirmedAttending int
}

// ValidationError names the guest that violated a business rule so the
// page can point at the right row.
type ValidationError struct {
	GuestName string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.GuestName, e.Message)
}

// GuestNotifier delivers the check-in code to a confirmed guest.
type GuestNotifier interface {
	NotifyConfirmation(ctx context.Context, guest models.Guest, qrDataURI string) error
}

// HostNotifier tells the hosts a family answered.
type HostNotifier interface {
	NotifySubmission(ctx context.Context, family models.Family, confirmed []models.Guest) error
}

type Submitter struct {
	store         *store.Store
	guestNotifier GuestNotifier
	hostNotifier  HostNotifier
	publicURL     string
	log           zerolog.Logger
}

// NewSubmitter wires the flow. Either notifier may be nil; notification
// is always best-effort.
func NewSubmitter(st *store.Store, guestNotifier GuestNotifier, hostNotifier HostNotifier, publicURL string, log zerolog.Logger) *Submitter {
	return &Submitter{
		store:         st,
		guestNotifier: guestNotifier,
		hostNotifier:  hostNotifier,
		publicURL:     publicURL,
		log:           log.With().Str("component", "rsvp").Logger(),
	}
}

// Submit runs the submission flow for one family.
//
// Guest updates are issued concurrently and joined; any update failure
// fails the batch (already-landed writes are not rolled back). The
// notification side effects and the aggregate recompute are best-effort:
// once a guest's confirmation is durable, nothing later may undo success.
func (s *Submitter) Submit(ctx context.Context, familyID string, selections []Selection) (*Result, error) {
	family, err := s.store.GetFamilyByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("resolving family: %w", err)
	}

	guests, err := s.store.ListGuestsByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("loading guests: %w", err)
	}

	byGuest := make(map[string]Selection, len(selections))
	for _, sel := range selections {
		byGuest[sel.GuestID] = sel
	}

	applied := applySelections(guests, byGuest)
	newly := status.NewlyDecidedGuests(applied)

	if len(newly) == 0 {
		if len(status.PendingGuests(applied)) == 0 {
			return &Result{Outcome: OutcomeAlreadyComplete, ConfirmedAttending: family.ConfirmedAttending}, nil
		}
		return &Result{Outcome: OutcomeNoNewSelection, ConfirmedAttending: family.ConfirmedAttending}, nil
	}

	// Fail fast before any write: an attending guest needs an address for
	// the check-in code.
	for _, g := range newly {
		if *g.Attending && g.Email == "" {
			return nil, &ValidationError{GuestName: g.Name, Message: "an email address is required to confirm attendance"}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, guest := range newly {
		g.Go(func() error {
			fields := map[string]any{
				"confirmed":     true,
				"attending":     *guest.Attending,
				"favorite_song": guest.FavoriteSong,
				"email":         guest.Email,
				"phone":         guest.Phone,
			}
			if err := s.store.UpdateGuest(gctx, guest.ID, fields); err != nil {
				return fmt.Errorf("persisting guest %s: %w", guest.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, guest := range newly {
		s.recordAndNotify(ctx, guest, byGuest[guest.ID])
	}

	// Authoritative reload, then refresh the display cache. Two devices
	// submitting for the same family race here and the later write wins;
	// the cache is never used for admission decisions.
	reloaded, err := s.store.ListGuestsByFamily(ctx, familyID)
	aggregate := family.ConfirmedAttending
	if err != nil {
		s.log.Error().Err(err).Str("family_id", familyID).Msg("failed to reload guests for aggregate")
	} else {
		aggregate = status.AttendingCount(reloaded)
		if err := s.store.UpdateFamily(ctx, familyID, map[string]any{"confirmed_attending": aggregate}); err != nil {
			s.log.Error().Err(err).Str("family_id", familyID).Msg("failed to update family aggregate")
		}
	}

	confirmed := make([]models.Guest, len(newly))
	copy(confirmed, newly)
	for i := range confirmed {
		yes := true
		confirmed[i].Confirmed = &yes
	}

	family.ConfirmedAttending = aggregate
	if s.hostNotifier != nil {
		if err := s.hostNotifier.NotifySubmission(ctx, *family, confirmed); err != nil {
			s.log.Warn().Err(err).Str("family", family.FamilyName).Msg("host notification failed")
		}
	}

	return &Result{Outcome: OutcomeSubmitted, Confirmed: confirmed, ConfirmedAttending: aggregate}, nil
}

// applySelections overlays in-memory choices onto the loaded guests
// without touching already-confirmed records. The input slice is copied;
// status functions never see shared state.
func applySelections(guests []models.Guest, selections map[string]Selection) []models.Guest {
	applied := make([]models.Guest, len(guests))
	copy(applied, guests)
	for i, g := range applied {
		sel, ok := selections[g.ID]
		if !ok || g.IsConfirmed() {
			continue
		}
		attending := sel.Attending
		applied[i].Attending = &attending
		if sel.Email != "" {
			applied[i].Email = sel.Email
		}
		if sel.Phone != "" {
			applied[i].Phone = sel.Phone
		}
		if sel.FavoriteSong != "" {
			applied[i].FavoriteSong = sel.FavoriteSong
		}
	}
	return applied
}

// recordAndNotify appends the audit row and emails the check-in code.
// The guest's confirmation is already durable, so every failure here is
// logged and swallowed.
func (s *Submitter) recordAndNotify(ctx context.Context, guest models.Guest, sel Selection) {
	guestCount := sel.GuestCount
	if guestCount < 1 {
		guestCount = 1
	}
	_, err := s.store.CreateRsvp(ctx, &models.Rsvp{
		GuestID:        guest.ID,
		FullName:       guest.Name,
		Email:          guest.Email,
		Attending:      *guest.Attending,
		GuestCount:     guestCount,
		Allergies:      sel.Allergies,
		OtherAllergies: sel.OtherAllergies,
		Message:        sel.Message,
		Song:           guest.FavoriteSong,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("guest", guest.Name).Msg("failed to append rsvp audit record")
	}

	if !*guest.Attending || guest.Email == "" || s.guestNotifier == nil {
		return
	}

	code, err := qr.Encode(fmt.Sprintf("%s/validate/%s", s.publicURL, guest.ID), qr.DefaultOptions())
	if err != nil {
		s.log.Warn().Err(err).Str("guest", guest.Name).Msg("failed to encode check-in code")
		return
	}
	if err := s.guestNotifier.NotifyConfirmation(ctx, guest, code); err != nil {
		s.log.Warn().Err(err).Str("guest", guest.Name).Msg("failed to send confirmation email")
	}
}
