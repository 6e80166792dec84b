package schedule

import "time"

// Shop opening hours per weekday. Sunday and Monday the salon is closed.
var businessWeek = map[time.Weekday]Range{
	time.Tuesday:   {Start: 10 * 60, End: 21 * 60},
	time.Wednesday: {Start: 10 * 60, End: 21 * 60},
	time.Thursday:  {Start: 10 * 60, End: 21 * 60},
	time.Friday:    {Start: 9 * 60, End: 21 * 60},
	time.Saturday:  {Start: 9 * 60, End: 15 * 60},
}

const dateLayout = "2006-01-02"

// OpenHours returns the shop-open interval for a weekday.
func OpenHours(day time.Weekday) (Range, bool) {
	r, ok := businessWeek[day]
	return r, ok
}

// OpenHoursOn returns the shop-open interval for a "YYYY-MM-DD" date.
// Malformed dates count as closed.
func OpenHoursOn(date string) (Range, bool) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Range{}, false
	}
	return OpenHours(day.Weekday())
}

// IsOpen reports whether the shop opens at all on the given date.
func IsOpen(date string) bool {
	_, ok := OpenHoursOn(date)
	return ok
}
