package schedule

import "sort"

// DefaultGranularity is the minimum bookable unit in minutes and the
// default step between candidate start times.
const DefaultGranularity = 15

// SlotQuery asks for the bookable start times across a day's working
// ranges for a requested duration.
type SlotQuery struct {
	Ranges      []Range
	Duration    int
	Granularity int
	Booked      []Booking
	Exclude     IDSet
}

func (q SlotQuery) normalized() SlotQuery {
	if q.Granularity <= 0 {
		q.Granularity = DefaultGranularity
	}
	// Zero or unset duration means "any slot": fall back to the
	// minimum bookable unit instead of rejecting the query.
	if q.Duration <= 0 {
		q.Duration = q.Granularity
	}
	q.Ranges = NormalizeRanges(q.Ranges)
	return q
}

// AvailableSlots returns the candidate "HH:MM" start times, ascending
// and deduplicated. A start qualifies when the whole [start,
// start+duration) window fits inside one working range and overlaps no
// booked appointment outside the exclusion set.
func AvailableSlots(q SlotQuery) []string {
	q = q.normalized()

	seen := make(map[Minute]struct{})
	var starts []Minute

	for _, r := range q.Ranges {
		last := r.End - Minute(q.Duration)
		for cur := r.Start; cur <= last; cur += Minute(q.Granularity) {
			if hasConflict(q.Booked, cur, cur+Minute(q.Duration), q.Exclude) {
				continue
			}
			if _, dup := seen[cur]; dup {
				continue
			}
			seen[cur] = struct{}{}
			starts = append(starts, cur)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	out := make([]string, len(starts))
	for i, m := range starts {
		out[i] = m.Clock()
	}
	return out
}

func hasConflict(booked []Booking, start, end Minute, exclude IDSet) bool {
	for _, b := range booked {
		if exclude.Has(b.ID) {
			continue
		}
		if Overlaps(start, end, b.Start, b.End()) {
			return true
		}
	}
	return false
}
