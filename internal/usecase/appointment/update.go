package appointment

import (
	"context"
	"strings"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput edits an appointment in place. Nil pointers
// leave the field untouched; placement fields (employee, time,
// duration) trigger conflict validation only when they actually change.
type UpdateAppointmentInput struct {
	EmployeeID *string
	Time       *string
	Duration   *int

	DisplayEmployee *string

	Client      *string
	Phone       *string
	Description *string
	ClientInfo  *string

	Price       *float64
	PaymentType *string
	Starred     *bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo     domain.Repository
	resolver *schedule.Resolver
	snap     cache.DaySnapshot
	retry    RetryPolicy
	audit    *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	resolver *schedule.Resolver,
	snap cache.DaySnapshot,
	retry RetryPolicy,
	auditor *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
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

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	employeeID := ap.EmployeeID
	if in.EmployeeID != nil {
		employeeID = *in.EmployeeID
	}
	timeOfDay := ap.Time
	if in.Time != nil {
		timeOfDay = *in.Time
	}
	duration := ap.Duration
	if in.Duration != nil {
		duration = *in.Duration
	}

	if strings.TrimSpace(employeeID) == "" {
		return nil, schedule.RejectMissingField("employee")
	}
	if duration <= 0 {
		return nil, schedule.RejectMissingField("duration")
	}
	if in.Client != nil && strings.TrimSpace(*in.Client) == "" {
		return nil, schedule.RejectMissingField("client")
	}

	placementChanged := employeeID != ap.EmployeeID ||
		timeOfDay != ap.Time ||
		duration != ap.Duration

	// A pure-metadata edit (price only, notes only, ...) keeps its
	// validated placement and skips conflict checking entirely.
	if placementChanged {
		start, err := schedule.ParseClock(timeOfDay)
		if err != nil {
			return nil, schedule.RejectMissingField("time")
		}
		if _, err := uc.repo.GetEmployee(ctx, employeeID); err != nil {
			return nil, schedule.RejectMissingField("employee")
		}

		exclude := schedule.NewIDSet(ap.ID)
		check := placementCheck{repo: uc.repo, resolver: uc.resolver, snap: uc.snap, retry: uc.retry}
		if rej := check.validate(ctx, employeeID, ap.Date, start, duration, exclude); rej != nil {
			metrics.IncConflictRejected(rej.Stale)
			return nil, rej
		}
	}

	ap.EmployeeID = employeeID
	ap.Time = timeOfDay
	ap.Duration = duration
	applyMetadata(ap, in)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	metrics.IncAppointmentSaved("update")

	return ap, nil
}

func applyMetadata(ap *models.Appointment, in UpdateAppointmentInput) {
	if in.DisplayEmployee != nil {
		ap.DisplayEmployee = *in.DisplayEmployee
	}
	if in.Client != nil {
		ap.Client = strings.TrimSpace(*in.Client)
	}
	if in.Phone != nil {
		ap.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Description != nil {
		ap.Description = strings.TrimSpace(*in.Description)
	}
	if in.ClientInfo != nil {
		ap.ClientInfo = strings.TrimSpace(*in.ClientInfo)
	}
	if in.Price != nil {
		ap.Price = *in.Price
	}
	if in.PaymentType != nil {
		ap.PaymentType = *in.PaymentType
	}
	if in.Starred != nil {
		ap.Starred = *in.Starred
	}
}
