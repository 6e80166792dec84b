package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
	"github.com/opal-salon/salon-scheduler/internal/timezone"
	"github.com/opal-salon/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Date       string
	EmployeeID string
	Time       string
	Duration   int

	DisplayEmployee string

	Client      string
	Phone       string
	Description string
	ClientInfo  string

	Price       float64
	PaymentType string
	Starred     bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	resolver *schedule.Resolver
	snap     cache.DaySnapshot
	retry    RetryPolicy
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	resolver *schedule.Resolver,
	snap cache.DaySnapshot,
	retry RetryPolicy,
	auditor *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
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

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	userID uint,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if rej := requiredFields(in); rej != nil {
		return nil, rej
	}

	if _, err := uc.repo.GetEmployee(ctx, in.EmployeeID); err != nil {
		return nil, schedule.RejectMissingField("employee")
	}

	start, err := schedule.ParseClock(in.Time)
	if err != nil {
		return nil, schedule.RejectMissingField("time")
	}

	if !schedule.IsOpen(in.Date) {
		return nil, schedule.RejectOutsideHours()
	}

	check := placementCheck{repo: uc.repo, resolver: uc.resolver, snap: uc.snap, retry: uc.retry}
	if rej := check.validate(ctx, in.EmployeeID, in.Date, start, in.Duration, nil); rej != nil {
		metrics.IncConflictRejected(rej.Stale)
		return nil, rej
	}

	ap := &models.Appointment{
		ID:         uuid.NewString(),
		Date:       in.Date,
		EmployeeID: in.EmployeeID,

		DisplayEmployee: in.DisplayEmployee,

		Time:     in.Time,
		Duration: in.Duration,

		Client:      strings.TrimSpace(in.Client),
		Phone:       strings.TrimSpace(in.Phone),
		Description: strings.TrimSpace(in.Description),
		ClientInfo:  strings.TrimSpace(in.ClientInfo),

		Price:       in.Price,
		PaymentType: in.PaymentType,
		Status:      string(domain.InitialStatus()),
		Starred:     in.Starred,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.upsertCustomer(ctx, ap)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	metrics.IncAppointmentSaved("create")

	return ap, nil
}

// upsertCustomer refreshes the phone-keyed directory record after a
// successful save. Failures never surface to the booking flow.
func (uc *CreateAppointment) upsertCustomer(ctx context.Context, ap *models.Appointment) {
	key := validators.PhoneKey(ap.Phone)
	if key == "" {
		return
	}
	now := timezone.Now()
	err := uc.repo.UpsertCustomer(ctx, &models.Customer{
		PhoneKey:          key,
		Phone:             ap.Phone,
		Name:              ap.Client,
		Notes:             ap.Description,
		ClientInfo:        ap.ClientInfo,
		LastAppointmentAt: &now,
	})
	if err != nil {
		log.Warn().Err(err).Str("phone_key", key).Msg("customer upsert failed")
	}
}

func requiredFields(in CreateAppointmentInput) *schedule.Rejection {
	switch {
	case strings.TrimSpace(in.Client) == "":
		return schedule.RejectMissingField("client")
	case strings.TrimSpace(in.Phone) == "":
		return schedule.RejectMissingField("phone")
	case in.Duration <= 0:
		return schedule.RejectMissingField("duration")
	case in.EmployeeID == "":
		return schedule.RejectMissingField("employee")
	case in.Time == "":
		return schedule.RejectMissingField("time")
	case in.Date == "":
		return schedule.RejectMissingField("date")
	}
	return nil
}
