package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func workday() []Range {
	return []Range{{Start: 600, End: 960}} // 10:00-16:00
}

func TestMaxFreeOutsideRanges(t *testing.T) {
	assert.Equal(t, 0, MaxFree(workday(), nil, 540, nil)) // 09:00
	assert.Equal(t, 0, MaxFree(workday(), nil, 960, nil)) // 16:00, half-open end
	assert.Equal(t, 0, MaxFree(nil, nil, 600, nil))
}

func TestMaxFreeUntilRangeEnd(t *testing.T) {
	assert.Equal(t, 360, MaxFree(workday(), nil, 600, nil))
	assert.Equal(t, 60, MaxFree(workday(), nil, 900, nil))
}

func TestMaxFreeUntilNextAppointment(t *testing.T) {
	booked := []Booking{
		{ID: "a1", Start: 645, Duration: 30}, // 10:45-11:15
	}

	// 45 free minutes between 10:00 and the 10:45 appointment.
	assert.Equal(t, 45, MaxFree(workday(), booked, 600, nil))
}

func TestMaxFreeIgnoresExcluded(t *testing.T) {
	booked := []Booking{
		{ID: "editing", Start: 645, Duration: 30},
		{ID: "other", Start: 720, Duration: 30},
	}

	assert.Equal(t, 120, MaxFree(workday(), booked, 600, NewIDSet("editing")))
}

func TestMaxFreeUnsortedBookings(t *testing.T) {
	booked := []Booking{
		{ID: "late", Start: 780, Duration: 30},
		{ID: "early", Start: 660, Duration: 30},
	}

	// The nearest following appointment bounds the window, regardless of
	// input order.
	assert.Equal(t, 60, MaxFree(workday(), booked, 600, nil))
}

func TestMaxFreeOverlappingRanges(t *testing.T) {
	// Overlapping stored ranges must behave like their union: the window
	// at 11:00 runs to 16:00, not to the end of the first range.
	ranges := []Range{
		{Start: 600, End: 700},
		{Start: 650, End: 960},
	}

	assert.Equal(t, 300, MaxFree(ranges, nil, 660, nil))
	assert.Equal(t, 360, MaxFree(ranges, nil, 600, nil))
}

func TestCanPlaceFits(t *testing.T) {
	booked := []Booking{
		{ID: "a1", Start: 720, Duration: 60}, // 12:00-13:00
	}

	assert.True(t, CanPlace(workday(), booked, 600, 120, 15, nil))
	assert.False(t, CanPlace(workday(), booked, 600, 121, 15, nil))
}

func TestCanPlaceBookingStartingAtProbe(t *testing.T) {
	// MaxFree looks strictly after the start, so a booking that begins
	// exactly at the probed minute is only caught by the coverage scan.
	booked := []Booking{
		{ID: "a1", Start: 600, Duration: 30},
	}

	assert.False(t, CanPlace(workday(), booked, 600, 30, 15, nil))
	assert.True(t, CanPlace(workday(), booked, 630, 30, 15, nil))
}

func TestCanPlaceOutsideRanges(t *testing.T) {
	assert.False(t, CanPlace(workday(), nil, 540, 30, 15, nil))
}

func TestCanPlaceZeroDurationDefaults(t *testing.T) {
	// Zero duration counts as one granularity unit.
	assert.True(t, CanPlace(workday(), nil, 600, 0, 0, nil))

	booked := []Booking{{ID: "a1", Start: 600, Duration: 15}}
	assert.False(t, CanPlace(workday(), booked, 600, 0, 0, nil))
}

func TestFindConflict(t *testing.T) {
	booked := []Booking{
		{ID: "b2", Start: 720, Duration: 60},
		{ID: "b1", Start: 630, Duration: 30},
	}

	id, found := FindConflict(booked, 600, 45, nil)
	assert.True(t, found)
	assert.Equal(t, "b1", id)

	// Touching is not conflicting.
	id, found = FindConflict(booked, 600, 30, nil)
	assert.False(t, found)
	assert.Empty(t, id)

	id, found = FindConflict(booked, 700, 30, nil)
	assert.True(t, found)
	assert.Equal(t, "b2", id)
}

func TestFindConflictExclusion(t *testing.T) {
	booked := []Booking{
		{ID: "self", Start: 600, Duration: 60},
	}

	_, found := FindConflict(booked, 600, 60, NewIDSet("self"))
	assert.False(t, found)
}

func TestFindConflictReturnsEarliest(t *testing.T) {
	booked := []Booking{
		{ID: "later", Start: 660, Duration: 30},
		{ID: "earlier", Start: 615, Duration: 30},
	}

	id, found := FindConflict(booked, 600, 120, nil)
	assert.True(t, found)
	assert.Equal(t, "earlier", id)
}
