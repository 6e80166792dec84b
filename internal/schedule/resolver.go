package schedule

import "time"

// RegimeChange is an effective-dated schedule entry. It supersedes the
// employee's default week for every date on or after Effective, until a
// later entry supersedes it in turn. A weekday absent from Ranges (or
// mapped to nil) means the employee does not work that weekday under
// this regime.
type RegimeChange struct {
	Effective string
	Ranges    Week
}

// DayOverride is a one-off schedule for an exact date. Off marks the
// employee as not working that date regardless of Ranges.
type DayOverride struct {
	Off    bool
	Ranges Week
}

// Source supplies the three schedule layers for an employee. Lookups
// that fail (unknown employee, storage error) report not-found; the
// resolver then treats the layer as absent.
type Source interface {
	DefaultWeek(employeeID string) (Week, bool)
	History(employeeID string) []RegimeChange
	Override(date string, employeeID string) (*DayOverride, bool)
}

// provider is one layer of the precedence chain. ok=true means the
// layer applies and its ranges are final, even when they are empty.
type provider interface {
	resolve(src Source, employeeID string, date string, day time.Weekday) ([]Range, bool)
}

// Resolver computes the working ranges of an employee on a date,
// trying override, then dated history, then the default week.
type Resolver struct {
	src   Source
	chain []provider
}

func NewResolver(src Source) *Resolver {
	return &Resolver{
		src:   src,
		chain: []provider{overrideProvider{}, historyProvider{}, defaultProvider{}},
	}
}

// WorkingRanges returns the ordered working intervals of the employee on
// the given "YYYY-MM-DD" date. Malformed dates resolve to no ranges.
func (r *Resolver) WorkingRanges(employeeID string, date string) []Range {
	day, err := time.Parse(dateLayout, date)
	if err != nil || employeeID == "" {
		return nil
	}
	for _, p := range r.chain {
		if ranges, ok := p.resolve(r.src, employeeID, date, day.Weekday()); ok {
			return ranges
		}
	}
	return nil
}

// Works reports whether the employee has at least one working interval
// on the date.
func (r *Resolver) Works(employeeID string, date string) bool {
	return len(r.WorkingRanges(employeeID, date)) > 0
}

type overrideProvider struct{}

func (overrideProvider) resolve(src Source, employeeID, date string, day time.Weekday) ([]Range, bool) {
	ov, ok := src.Override(date, employeeID)
	if !ok || ov == nil {
		return nil, false
	}
	// An override short-circuits history and defaults even when it
	// carries no ranges for this weekday.
	if ov.Off {
		return nil, true
	}
	return ov.Ranges[day], true
}

type historyProvider struct{}

func (historyProvider) resolve(src Source, employeeID, date string, day time.Weekday) ([]Range, bool) {
	entries := src.History(employeeID)
	best := -1
	for i, e := range entries {
		eff, err := time.Parse(dateLayout, e.Effective)
		if err != nil || eff.Format(dateLayout) > date {
			continue
		}
		// Later effective date wins; on equal dates the later entry wins.
		if best < 0 || e.Effective >= entries[best].Effective {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}
	return entries[best].Ranges[day], true
}

type defaultProvider struct{}

func (defaultProvider) resolve(src Source, employeeID, date string, day time.Weekday) ([]Range, bool) {
	week, ok := src.DefaultWeek(employeeID)
	if !ok {
		return nil, false
	}
	return week[day], true
}
