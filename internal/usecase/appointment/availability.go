package appointment

import (
	"context"

	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

type GetAvailability struct {
	repo     domain.Repository
	resolver *schedule.Resolver
	snap     cache.DaySnapshot
}

func NewGetAvailability(
	repo domain.Repository,
	resolver *schedule.Resolver,
	snap cache.DaySnapshot,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: resolver,
		snap:     snap,
	}
}

// Execute returns the bookable "HH:MM" start times for the employee,
// date and duration. Closed days and non-working days yield an empty
// list, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	metrics.IncSlotQuery()

	if !schedule.IsOpen(in.Date) {
		return []string{}, nil
	}

	ranges := uc.resolver.WorkingRanges(in.EmployeeID, in.Date)
	if len(ranges) == 0 {
		return []string{}, nil
	}

	appointments, err := uc.repo.ListForDay(ctx, in.EmployeeID, in.Date)
	if err != nil {
		return nil, err
	}
	if uc.snap != nil {
		uc.snap.Put(ctx, in.EmployeeID, in.Date, appointments)
	}

	slots := schedule.AvailableSlots(schedule.SlotQuery{
		Ranges:      ranges,
		Duration:    in.Duration,
		Granularity: in.Granularity,
		Booked:      models.Bookings(appointments),
		Exclude:     schedule.NewIDSet(in.ExcludeID),
	})
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

// ======================================================
// FREE WINDOW
// ======================================================

type GetFreeWindow struct {
	repo     domain.Repository
	resolver *schedule.Resolver
}

func NewGetFreeWindow(
	repo domain.Repository,
	resolver *schedule.Resolver,
) *GetFreeWindow {
	return &GetFreeWindow{
		repo:     repo,
		resolver: resolver,
	}
}

// Execute returns how many minutes are startable at the given time
// before the next appointment or the end of the working interval;
// 0 when the time falls outside every working interval.
func (uc *GetFreeWindow) Execute(
	ctx context.Context,
	in domain.FreeWindowInput,
) (int, error) {

	start, err := schedule.ParseClock(in.Time)
	if err != nil {
		return 0, err
	}

	ranges := uc.resolver.WorkingRanges(in.EmployeeID, in.Date)
	if len(ranges) == 0 {
		return 0, nil
	}

	appointments, err := uc.repo.ListForDay(ctx, in.EmployeeID, in.Date)
	if err != nil {
		return 0, err
	}

	return schedule.MaxFree(
		ranges,
		models.Bookings(appointments),
		start,
		schedule.NewIDSet(in.ExcludeID),
	), nil
}
