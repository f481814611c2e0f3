// Package status derives attendance state from guest records. Every
// function here is a pure read over its input; callers own persistence.
package status

import (
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
)

// State is the three-way logical confirmation state of a guest.
type State string

const (
	Pending            State = "pending"
	ConfirmedAttending State = "confirmed-attending"
	ConfirmedDeclined  State = "confirmed-declined"
)

// Derive maps a guest's confirmed/attending fields to its logical state.
// Attending only carries meaning once the guest is confirmed.
func Derive(g models.Guest) State {
	if !g.IsConfirmed() {
		return Pending
	}
	if g.Attending != nil && *g.Attending {
		return ConfirmedAttending
	}
	return ConfirmedDeclined
}

// AttendingCount counts guests that confirmed and are attending.
func AttendingCount(guests []models.Guest) int {
	n := 0
	for _, g := range guests {
		if g.IsAttending() {
			n++
		}
	}
	return n
}

// ConfirmedCount counts guests that made a definitive decision either way.
func ConfirmedCount(guests []models.Guest) int {
	n := 0
	for _, g := range guests {
		if g.IsConfirmed() {
			n++
		}
	}
	return n
}

// IsFamilyFullyConfirmed reports whether every guest has decided.
// An empty list is not fully confirmed.
func IsFamilyFullyConfirmed(guests []models.Guest) bool {
	if len(guests) == 0 {
		return false
	}
	for _, g := range guests {
		if !g.IsConfirmed() {
			return false
		}
	}
	return true
}

// PendingGuests returns the guests still awaiting a decision.
func PendingGuests(guests []models.Guest) []models.Guest {
	var pending []models.Guest
	for _, g := range guests {
		if !g.IsConfirmed() {
			pending = append(pending, g)
		}
	}
	return pending
}

// NewlyDecidedGuests returns guests carrying an attendance selection that
// has not been committed yet: Attending is set but Confirmed is still
// falsy. This is exactly the set a submission must persist.
func NewlyDecidedGuests(guests []models.Guest) []models.Guest {
	var decided []models.Guest
	for _, g := range guests {
		if g.Attending != nil && !g.IsConfirmed() {
			decided = append(decided, g)
		}
	}
	return decided
}
