package appointment

import (
	"github.com/opal-salon/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	return nil
}

// SamePlacement reports whether moving to (employeeID, timeOfDay) would
// leave the appointment where it already is, which makes the move a
// pure-metadata edit that skips conflict validation.
func SamePlacement(ap *models.Appointment, employeeID, timeOfDay string) bool {
	return ap.EmployeeID == employeeID && ap.Time == timeOfDay
}
