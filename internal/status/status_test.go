package status

import (
	"testing"

	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func guest(confirmed, attending *bool) models.Guest {
	return models.Guest{Confirmed: confirmed, Attending: attending}
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Pending, Derive(guest(nil, nil)))
	assert.Equal(t, Pending, Derive(guest(boolPtr(false), nil)))
	// Selection made but not yet submitted is still pending.
	assert.Equal(t, Pending, Derive(guest(nil, boolPtr(true))))
	assert.Equal(t, ConfirmedAttending, Derive(guest(boolPtr(true), boolPtr(true))))
	assert.Equal(t, ConfirmedDeclined, Derive(guest(boolPtr(true), boolPtr(false))))
	assert.Equal(t, ConfirmedDeclined, Derive(guest(boolPtr(true), nil)))
}

func TestCounts(t *testing.T) {
	guests := []models.Guest{
		guest(boolPtr(true), boolPtr(true)),
		guest(boolPtr(true), boolPtr(false)),
		guest(boolPtr(false), nil),
		guest(nil, nil),
	}

	attending := AttendingCount(guests)
	confirmed := ConfirmedCount(guests)

	assert.Equal(t, 1, attending)
	assert.Equal(t, 2, confirmed)
	// attending <= confirmed <= total always holds.
	assert.LessOrEqual(t, attending, confirmed)
	assert.LessOrEqual(t, confirmed, len(guests))
}

func TestIsFamilyFullyConfirmed(t *testing.T) {
	assert.False(t, IsFamilyFullyConfirmed(nil))
	assert.False(t, IsFamilyFullyConfirmed([]models.Guest{}))

	all := []models.Guest{
		guest(boolPtr(true), boolPtr(true)),
		guest(boolPtr(true), boolPtr(false)),
	}
	assert.True(t, IsFamilyFullyConfirmed(all))

	mixed := append(all, guest(nil, boolPtr(true)))
	assert.False(t, IsFamilyFullyConfirmed(mixed))
}

func TestPendingAndNewlyDecided(t *testing.T) {
	confirmed := guest(boolPtr(true), boolPtr(true))
	undecided := guest(nil, nil)
	selected := guest(nil, boolPtr(true))
	declinedSelection := guest(boolPtr(false), boolPtr(false))

	guests := []models.Guest{confirmed, undecided, selected, declinedSelection}

	pending := PendingGuests(guests)
	assert.Len(t, pending, 3)

	decided := NewlyDecidedGuests(guests)
	assert.Len(t, decided, 2)
	for _, g := range decided {
		assert.NotNil(t, g.Attending)
		assert.False(t, g.IsConfirmed())
	}
}

func TestFunctionsDoNotMutateInput(t *testing.T) {
	guests := []models.Guest{
		guest(nil, boolPtr(true)),
		guest(boolPtr(true), boolPtr(true)),
	}

	AttendingCount(guests)
	ConfirmedCount(guests)
	IsFamilyFullyConfirmed(guests)
	PendingGuests(guests)
	NewlyDecidedGuests(guests)

	assert.Nil(t, guests[0].Confirmed)
	assert.True(t, *guests[0].Attending)
	assert.True(t, *guests[1].Confirmed)
}
