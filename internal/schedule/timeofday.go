package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Minute is a time of day expressed as minutes since midnight.
// All interval arithmetic in this package runs on Minute; "HH:MM"
// strings exist only at the boundary.
type Minute int

const minutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" time of day. All four digit positions
// must be digits; anything else is rejected.
func ParseClock(s string) (Minute, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return Minute(h*60 + m), nil
}

// Clock formats the minute as zero-padded "HH:MM".
func (m Minute) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Range is a half-open [Start, End) working interval within one day.
type Range struct {
	Start Minute
	End   Minute
}

func (r Range) Contains(m Minute) bool {
	return r.Start <= m && m < r.End
}

func (r Range) Minutes() int {
	return int(r.End - r.Start)
}

// Week maps weekdays to the ordered, disjoint working ranges of that day.
type Week map[time.Weekday][]Range

// ParseRangePair converts a ["HH:MM","HH:MM"] pair into a Range.
func ParseRangePair(start, end string) (Range, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Range{}, err
	}
	if e <= s {
		return Range{}, fmt.Errorf("range end %q not after start %q", end, start)
	}
	return Range{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Minute) bool {
	return aStart < bEnd && bStart < aEnd
}

// Booking is the scheduling engine's view of a stored appointment.
type Booking struct {
	ID       string
	Start    Minute
	Duration int
}

func (b Booking) End() Minute {
	d := b.Duration
	if d < 0 {
		d = 0
	}
	return b.Start + Minute(d)
}

// IDSet is a set of appointment ids excluded from conflict checks,
// typically the appointment being edited or moved.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}

// NormalizeRanges sorts ranges ascending by start and merges any that
// overlap, restoring the pairwise-disjoint ordering the rest of the
// package assumes. Touching ranges stay separate.
func NormalizeRanges(ranges []Range) []Range {
	if len(ranges) < 2 {
		return ranges
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start < last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func sortBookings(booked []Booking) []Booking {
	out := make([]Booking, len(booked))
	copy(out, booked)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
