package schedule

// MaxFree returns the longest duration, in minutes, startable at start
// without colliding with the next appointment or the end of the
// containing working range. Outside every working range it is 0.
func MaxFree(ranges []Range, booked []Booking, start Minute, exclude IDSet) int {
	ranges = NormalizeRanges(ranges)

	var within *Range
	for i := range ranges {
		if ranges[i].Contains(start) {
			within = &ranges[i]
			break
		}
	}
	if within == nil {
		return 0
	}

	limit := within.End
	for _, b := range sortBookings(booked) {
		if exclude.Has(b.ID) {
			continue
		}
		if b.Start > start && b.Start < limit {
			limit = b.Start
			break
		}
	}

	free := int(limit - start)
	if free < 0 {
		return 0
	}
	return free
}

// CanPlace reports whether an appointment of the given duration fits at
// start. Beyond the free-minutes arithmetic it re-scans every
// granularity step of the window for coverage by another appointment;
// the scan also catches bookings starting exactly at the probe, which
// the strictly-after walk in MaxFree looks past.
func CanPlace(ranges []Range, booked []Booking, start Minute, duration, granularity int, exclude IDSet) bool {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	if duration <= 0 {
		duration = granularity
	}

	if MaxFree(ranges, booked, start, exclude) < duration {
		return false
	}

	end := start + Minute(duration)
	for cur := start; cur < end; cur += Minute(granularity) {
		for _, b := range booked {
			if exclude.Has(b.ID) {
				continue
			}
			if b.Start <= cur && cur < b.End() {
				return false
			}
		}
	}
	return true
}

// FindConflict runs the authoritative pairwise overlap check between a
// candidate window and the given appointments, returning the id of the
// first conflicting one. Used for save-time validation against freshly
// fetched data.
func FindConflict(booked []Booking, start Minute, duration int, exclude IDSet) (string, bool) {
	if duration <= 0 {
		duration = DefaultGranularity
	}
	end := start + Minute(duration)
	for _, b := range sortBookings(booked) {
		if exclude.Has(b.ID) {
			continue
		}
		if Overlaps(start, end, b.Start, b.End()) {
			return b.ID, true
		}
	}
	return "", false
}
