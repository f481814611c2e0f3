// Package validation implements the event-day check-in workflow: resolve
// a scanned or typed identifier to a guest and authorize or deny entry.
package validation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/nuestraboda/wedding-rsvp-api/internal/store"
	"github.com/rs/zerolog"
)

type State string

const (
	StateManual   State = "manual"
	StateScanning State = "scanning"
	StateLoading  State = "loading"
	StateValid    State = "valid"
	StateInvalid  State = "invalid"
)

type Reason string

const (
	ReasonDeclined   Reason = "declined"
	ReasonPending    Reason = "pending"
	ReasonNotFound   Reason = "not-found"
	ReasonConnection Reason = "connection-error"
	ReasonCamera     Reason = "camera-error"
)

// Lookup resolves guests and their owning families. The store satisfies
// it; tests substitute fakes.
type Lookup interface {
	GetGuestByID(ctx context.Context, id string) (*models.Guest, error)
	GetFamilyByID(ctx context.Context, id string) (*models.Family, error)
}

// Status is a point-in-time snapshot of the machine for display.
type Status struct {
	State      State         `json:"state"`
	Reason     Reason        `json:"reason,omitempty"`
	Guest      *models.Guest `json:"guest,omitempty"`
	FamilyName string        `json:"family_name,omitempty"`
}

// Machine drives one check-in terminal. Admission always re-derives from
// the guest's own confirmed/attending fields, never from the family
// aggregate. Lookups are guarded by a request sequence so a superseded
// response can never overwrite the state of a later call.
type Machine struct {
	mu         sync.Mutex
	state      State
	reason     Reason
	guest      *models.Guest
	familyName string
	seq        uint64

	lookup  Lookup
	scanner Scanner
	log     zerolog.Logger
}

func NewMachine(lookup Lookup, scanner Scanner, log zerolog.Logger) *Machine {
	return &Machine{
		state:   StateManual,
		lookup:  lookup,
		scanner: scanner,
		log:     log.With().Str("component", "validation").Logger(),
	}
}

// ExtractIdentifier normalizes a scanned payload into a guest identifier.
// Check-in codes encode the full validation URL, so a payload containing
// /validate/ yields its trailing path segment; anything else is taken as
// a bare identifier. Whitespace is trimmed either way.
func ExtractIdentifier(payload string) string {
	id := strings.TrimSpace(payload)
	if idx := strings.LastIndex(id, "/validate/"); idx >= 0 {
		id = id[idx+len("/validate/"):]
	}
	return strings.TrimSpace(id)
}

// Snapshot returns the current displayed state.
func (m *Machine) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Reason: m.reason, Guest: m.guest, FamilyName: m.familyName}
}

// Validate resolves an identifier and returns the outcome of this call.
// The machine's displayed state only advances if no newer Validate call
// was issued while the lookup was in flight (last write wins).
func (m *Machine) Validate(ctx context.Context, identifier string) Status {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = StateLoading
	m.reason = ""
	m.guest = nil
	m.familyName = ""
	m.mu.Unlock()

	m.stopScanner()

	result := m.resolve(ctx, identifier)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seq != seq {
		// A later call superseded this one; its result owns the display.
		m.log.Debug().Str("identifier", identifier).Msg("discarding stale validation result")
		return result
	}
	m.state = result.State
	m.reason = result.Reason
	m.guest = result.Guest
	m.familyName = result.FamilyName
	return result
}

func (m *Machine) resolve(ctx context.Context, identifier string) Status {
	guest, err := m.lookup.GetGuestByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Status{State: StateInvalid, Reason: ReasonNotFound}
		}
		m.log.Error().Err(err).Str("identifier", identifier).Msg("guest lookup failed")
		return Status{State: StateInvalid, Reason: ReasonConnection}
	}

	// The family name is display-only; its absence or a failed lookup
	// never changes the outcome.
	familyName := ""
	if family, err := m.lookup.GetFamilyByID(ctx, guest.FamilyID); err == nil {
		familyName = family.FamilyName
	}

	switch {
	case guest.IsAttending():
		return Status{State: StateValid, Guest: guest, FamilyName: familyName}
	case guest.IsConfirmed():
		return Status{State: StateInvalid, Reason: ReasonDeclined, Guest: guest, FamilyName: familyName}
	default:
		return Status{State: StateInvalid, Reason: ReasonPending, Guest: guest, FamilyName: familyName}
	}
}

// StartScanning acquires the scanner and enters scanning mode. If the
// device cannot start, the machine falls back to manual entry with the
// camera-error reason.
func (m *Machine) StartScanning(ctx context.Context) Status {
	m.stopScanner()

	m.mu.Lock()
	m.state = StateScanning
	m.reason = ""
	m.guest = nil
	m.familyName = ""
	m.mu.Unlock()

	err := m.scanner.Start(ctx,
		func(payload string) {
			m.Validate(ctx, ExtractIdentifier(payload))
		},
		func(err error) {
			// Per-frame decode noise; keep scanning.
			m.log.Debug().Err(err).Msg("scan frame error")
		},
	)
	if err != nil {
		m.log.Warn().Err(err).Msg("scanner start failed, falling back to manual entry")
		m.mu.Lock()
		m.state = StateManual
		m.reason = ReasonCamera
		m.mu.Unlock()
	}
	return m.Snapshot()
}

// Reset releases the scanner and returns to manual entry, clearing any
// resolved guest. Safe to call from any state.
func (m *Machine) Reset() Status {
	m.stopScanner()

	m.mu.Lock()
	m.seq++ // invalidate any in-flight lookup
	m.state = StateManual
	m.reason = ""
	m.guest = nil
	m.familyName = ""
	m.mu.Unlock()
	return m.Snapshot()
}

func (m *Machine) stopScanner() {
	if err := m.scanner.Stop(); err != nil {
		m.log.Warn().Err(err).Msg("failed to stop scanner")
	}
}
