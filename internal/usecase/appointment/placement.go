package appointment

import (
	"context"

	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// placementCheck bundles what create, edit and move all need to decide
// whether an appointment may occupy (employee, date, time, duration).
type placementCheck struct {
	repo     dayFetcher
	resolver *schedule.Resolver
	snap     cache.DaySnapshot
	retry    RetryPolicy
}

// validate runs the full gate:
//  1. the window must sit inside one working interval (OUTSIDE_HOURS),
//  2. CanPlace against the current view (SLOT_CONFLICT),
//  3. the authoritative pairwise recheck against freshly re-fetched
//     data (SLOT_CONFLICT with stale=true when it fires here).
//
// A nil return means the placement is legal.
func (pc placementCheck) validate(
	ctx context.Context,
	employeeID string,
	date string,
	start schedule.Minute,
	duration int,
	exclude schedule.IDSet,
) *schedule.Rejection {

	ranges := pc.resolver.WorkingRanges(employeeID, date)

	var within *schedule.Range
	for i := range ranges {
		if ranges[i].Contains(start) {
			within = &ranges[i]
			break
		}
	}
	if within == nil {
		return schedule.RejectOutsideHours()
	}
	if duration <= 0 {
		duration = schedule.DefaultGranularity
	}
	if start+schedule.Minute(duration) > within.End {
		return schedule.RejectOutsideHours()
	}

	current, err := pc.repo.ListForDay(ctx, employeeID, date)
	if err != nil {
		// The save-time re-fetch below retries and falls back; a failed
		// first read only skips the cheap pre-check.
		current = nil
	}
	booked := models.Bookings(current)
	if !schedule.CanPlace(ranges, booked, start, duration, schedule.DefaultGranularity, exclude) {
		id, _ := schedule.FindConflict(booked, start, duration, exclude)
		return schedule.RejectConflict(id, false)
	}

	freshView, fresh := fetchDayForValidation(ctx, pc.repo, pc.snap, pc.retry, employeeID, date)
	if id, found := schedule.FindConflict(models.Bookings(freshView), start, duration, exclude); found {
		return schedule.RejectConflict(id, fresh)
	}

	return nil
}
