package timezone

import "time"

// The salon runs on a single local clock.
const DefaultTimezone = "Europe/Athens"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Today returns the salon-local calendar date as "YYYY-MM-DD".
func Today() string {
	return Now().Format("2006-01-02")
}
