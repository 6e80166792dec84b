package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

func newMoveUC(repo *fakeRepo) *MoveAppointment {
	return NewMoveAppointment(
		repo,
		testResolver(),
		cache.NewMemorySnapshot(),
		fastRetry(),
		audit.NewDispatcher(audit.New(nil)),
	)
}

func seedAppointment(repo *fakeRepo, id, employee, timeOfDay string, duration int) {
	repo.add(models.Appointment{
		ID:         id,
		Date:       openTuesday,
		EmployeeID: employee,
		Time:       timeOfDay,
		Duration:   duration,
		Client:     "Eleni",
		Phone:      "6971234567",
		Status:     "scheduled",
	})
}

func TestMoveAppointment(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	uc := newMoveUC(repo)

	ap, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "maria",
		NewTime:       "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", ap.EmployeeID)
	assert.Equal(t, "11:00", ap.Time)

	stored, err := repo.GetAppointment(context.Background(), "ap1")
	require.NoError(t, err)
	assert.Equal(t, "maria", stored.EmployeeID)
	assert.Equal(t, "11:00", stored.Time)
}

func TestMoveAppointmentNoOp(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	uc := newMoveUC(repo)

	ap, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "anna",
		NewTime:       "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna", ap.EmployeeID)

	// Dropping the card back where it was skips validation entirely.
	assert.Zero(t, repo.listCalls)
}

func TestMoveAppointmentConflictLeavesOriginalPlacement(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	seedAppointment(repo, "ap2", "maria", "11:00", 60)
	uc := newMoveUC(repo)

	_, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "maria",
		NewTime:       "11:30",
	})
	rej := rejection(t, err)
	assert.Equal(t, schedule.ReasonSlotConflict, rej.Reason)
	assert.Equal(t, "ap2", rej.ConflictingAppointmentID)

	// The original placement survives the refusal.
	stored, err := repo.GetAppointment(context.Background(), "ap1")
	require.NoError(t, err)
	assert.Equal(t, "anna", stored.EmployeeID)
	assert.Equal(t, "10:00", stored.Time)
}

func TestMoveAppointmentDoesNotConflictWithItself(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	uc := newMoveUC(repo)

	// Shifting 30 minutes overlaps the original window of the same
	// appointment, which must not count as a conflict.
	ap, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "anna",
		NewTime:       "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", ap.Time)
}

func TestMoveAppointmentOutsideHours(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	uc := newMoveUC(repo)

	_, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "anna",
		NewTime:       "15:30",
	})
	rej := rejection(t, err)
	assert.Equal(t, schedule.ReasonOutsideHours, rej.Reason)
}

func TestMoveAppointmentMissingTarget(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	uc := newMoveUC(repo)

	_, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "",
		NewTime:       "11:00",
	})
	rej := rejection(t, err)
	assert.Equal(t, "employee", rej.Field)

	_, err = uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "maria",
		NewTime:       "",
	})
	rej = rejection(t, err)
	assert.Equal(t, "time", rej.Field)
}

func TestMoveAppointmentPersistFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "ap1", "anna", "10:00", 60)
	repo.failUpdate = true
	uc := newMoveUC(repo)

	_, err := uc.Execute(context.Background(), 1, domain.MoveInput{
		AppointmentID: "ap1",
		NewEmployeeID: "maria",
		NewTime:       "11:00",
	})
	require.Error(t, err)

	stored, gerr := repo.GetAppointment(context.Background(), "ap1")
	require.NoError(t, gerr)
	assert.Equal(t, "anna", stored.EmployeeID)
	assert.Equal(t, "10:00", stored.Time)
}
