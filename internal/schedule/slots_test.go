package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlotsEmptyDay(t *testing.T) {
	slots := AvailableSlots(SlotQuery{
		Ranges:   []Range{{Start: 600, End: 690}}, // 10:00-11:30
		Duration: 30,
	})
	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00"}, slots)
}

func TestAvailableSlotsLastSlotTouchesRangeEnd(t *testing.T) {
	slots := AvailableSlots(SlotQuery{
		Ranges:   []Range{{Start: 600, End: 660}}, // 10:00-11:00
		Duration: 60,
	})
	// A 60-minute service fits exactly once.
	assert.Equal(t, []string{"10:00"}, slots)

	slots = AvailableSlots(SlotQuery{
		Ranges:   []Range{{Start: 600, End: 660}},
		Duration: 61,
	})
	assert.Empty(t, slots)
}

func TestAvailableSlotsSplitShift(t *testing.T) {
	// Tuesday split shift 10:00-16:00 and 19:00-21:00 with a booking at
	// 12:00-13:00.
	slots := AvailableSlots(SlotQuery{
		Ranges: []Range{
			{Start: 600, End: 960},
			{Start: 1140, End: 1260},
		},
		Duration:    60,
		Granularity: 60,
		Booked: []Booking{
			{ID: "a1", Start: 720, Duration: 60},
		},
	})
	assert.Equal(t, []string{"10:00", "11:00", "13:00", "14:00", "15:00", "19:00", "20:00"}, slots)
}

func TestAvailableSlotsSkipsBooked(t *testing.T) {
	booked := []Booking{
		{ID: "a1", Start: 615, Duration: 30}, // 10:15-10:45
	}

	slots := AvailableSlots(SlotQuery{
		Ranges:   []Range{{Start: 600, End: 720}},
		Duration: 30,
		Booked:   booked,
	})
	// 10:00 would run into 10:15; 10:15 and 10:30 are covered.
	assert.Equal(t, []string{"10:45", "11:00", "11:15", "11:30"}, slots)
}

func TestAvailableSlotsExcludedBookingFreesItsSlot(t *testing.T) {
	booked := []Booking{
		{ID: "editing", Start: 600, Duration: 60},
		{ID: "other", Start: 660, Duration: 60},
	}

	slots := AvailableSlots(SlotQuery{
		Ranges:   []Range{{Start: 600, End: 720}},
		Duration: 60,
		Booked:   booked,
		Exclude:  NewIDSet("editing"),
	})
	assert.Equal(t, []string{"10:00"}, slots)
}

func TestAvailableSlotsDefaults(t *testing.T) {
	// Zero duration and granularity fall back to the 15-minute unit.
	slots := AvailableSlots(SlotQuery{
		Ranges: []Range{{Start: 600, End: 645}},
	})
	assert.Equal(t, []string{"10:00", "10:15", "10:30"}, slots)
}

func TestAvailableSlotsOverlappingRangesDeduped(t *testing.T) {
	slots := AvailableSlots(SlotQuery{
		Ranges: []Range{
			{Start: 600, End: 660},
			{Start: 630, End: 690},
		},
		Duration: 30,
	})
	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00"}, slots)
}

func TestAvailableSlotsNoRanges(t *testing.T) {
	assert.Empty(t, AvailableSlots(SlotQuery{Duration: 30}))
}
