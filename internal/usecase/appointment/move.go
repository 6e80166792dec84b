package appointment

import (
	"context"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// ======================================================
// USE CASE
// ======================================================

// MoveAppointment relocates an existing appointment to another
// employee column and/or start time, as driven by drag-and-drop.
// Rejection leaves the original placement untouched.
type MoveAppointment struct {
	repo     domain.Repository
	resolver *schedule.Resolver
	snap     cache.DaySnapshot
	retry    RetryPolicy
	audit    *audit.Dispatcher
}

func NewMoveAppointment(
	repo domain.Repository,
	resolver *schedule.Resolver,
	snap cache.DaySnapshot,
	retry RetryPolicy,
	auditor *audit.Dispatcher,
) *MoveAppointment {
	return &MoveAppointment{
		repo:     repo,
		resolver: resolver,
		snap:     snap,
		retry:    retry,
		audit:    auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *MoveAppointment) Execute(
	ctx context.Context,
	userID uint,
	in domain.MoveInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.NewEmployeeID == "" {
		return nil, schedule.RejectMissingField("employee")
	}
	if in.NewTime == "" {
		return nil, schedule.RejectMissingField("time")
	}

	// Dropping the card back where it was is a no-op: accepted without
	// invoking conflict validation.
	if domain.SamePlacement(ap, in.NewEmployeeID, in.NewTime) {
		return ap, nil
	}

	start, err := schedule.ParseClock(in.NewTime)
	if err != nil {
		return nil, schedule.RejectMissingField("time")
	}
	if _, err := uc.repo.GetEmployee(ctx, in.NewEmployeeID); err != nil {
		return nil, schedule.RejectMissingField("employee")
	}

	// The appointment must not conflict with itself at the target, so
	// its own id is excluded. Ids are stable across a move, but the set
	// also carries a changed id when a save cycle reissues one.
	exclude := schedule.NewIDSet(ap.ID, in.AppointmentID)

	check := placementCheck{repo: uc.repo, resolver: uc.resolver, snap: uc.snap, retry: uc.retry}
	if rej := check.validate(ctx, in.NewEmployeeID, ap.Date, start, ap.Duration, exclude); rej != nil {
		metrics.IncConflictRejected(rej.Stale)
		return nil, rej
	}

	fromEmployee, fromTime := ap.EmployeeID, ap.Time
	ap.EmployeeID = in.NewEmployeeID
	ap.Time = in.NewTime

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		// No partial state: the caller still holds the original row.
		ap.EmployeeID = fromEmployee
		ap.Time = fromTime
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_moved",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"from_employee": fromEmployee,
			"from_time":     fromTime,
			"to_employee":   ap.EmployeeID,
			"to_time":       ap.Time,
		},
	})
	metrics.IncAppointmentSaved("move")

	return ap, nil
}
