package appointment

import (
	"context"

	"github.com/opal-salon/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ListForDay returns the conflict-relevant appointments of one
	// employee on a date (cancelled ones excluded), ordered by start
	// time.
	ListForDay(
		ctx context.Context,
		employeeID string,
		date string,
	) ([]models.Appointment, error)

	// ListByDate returns every appointment of the date across all
	// employees, for the day-calendar view.
	ListByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	PurgeBefore(
		ctx context.Context,
		date string,
	) (int64, error)

	// -------- Employee --------
	GetEmployee(
		ctx context.Context,
		id string,
	) (*models.Employee, error)

	ListEmployees(
		ctx context.Context,
	) ([]models.Employee, error)

	// -------- Customer --------
	UpsertCustomer(
		ctx context.Context,
		customer *models.Customer,
	) error

	// -------- Waitlist --------
	GetWaitlistEntry(
		ctx context.Context,
		id string,
	) (*models.WaitlistEntry, error)

	// ListWaitlist returns the entries of one date, or of every date
	// when date is empty, ordered by date then creation time.
	ListWaitlist(
		ctx context.Context,
		date string,
	) ([]models.WaitlistEntry, error)

	CreateWaitlistEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	UpdateWaitlistEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	DeleteWaitlistEntry(
		ctx context.Context,
		id string,
	) error
}
