package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListForDay(
	ctx context.Context,
	employeeID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND date = ? AND status <> ?",
			employeeID, date, "cancelled",
		).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("employee_id ASC, time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{}).Error
}

func (r *AppointmentGormRepository) PurgeBefore(
	ctx context.Context,
	date string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date < ?", date).
		Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	id string,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *AppointmentGormRepository) ListEmployees(
	ctx context.Context,
) ([]models.Employee, error) {

	var emps []models.Employee
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) UpsertCustomer(
	ctx context.Context,
	customer *models.Customer,
) error {

	var existing models.Customer
	err := r.db.WithContext(ctx).
		Where("phone_key = ?", customer.PhoneKey).
		First(&existing).Error

	if err == nil {
		if customer.Name != "" {
			existing.Name = customer.Name
		}
		existing.Phone = customer.Phone
		if customer.Notes != "" {
			existing.Notes = customer.Notes
		}
		if customer.ClientInfo != "" {
			existing.ClientInfo = customer.ClientInfo
		}
		if customer.LastAppointmentAt != nil {
			existing.LastAppointmentAt = customer.LastAppointmentAt
		}
		return r.db.WithContext(ctx).Save(&existing).Error
	}

	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		// Two saves for the same phone can race past the read above; the
		// loser of the insert updates the winner's row instead.
		if isUniqueViolation(err) {
			return r.db.WithContext(ctx).
				Model(&models.Customer{}).
				Where("phone_key = ?", customer.PhoneKey).
				Updates(map[string]any{
					"phone":               customer.Phone,
					"name":                customer.Name,
					"last_appointment_at": customer.LastAppointmentAt,
				}).Error
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWaitlistEntry(
	ctx context.Context,
	id string,
) (*models.WaitlistEntry, error) {

	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *AppointmentGormRepository) ListWaitlist(
	ctx context.Context,
	date string,
) ([]models.WaitlistEntry, error) {

	q := r.db.WithContext(ctx)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var entries []models.WaitlistEntry
	if err := q.
		Order("date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *AppointmentGormRepository) CreateWaitlistEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AppointmentGormRepository) UpdateWaitlistEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *AppointmentGormRepository) DeleteWaitlistEntry(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.WaitlistEntry{}).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
