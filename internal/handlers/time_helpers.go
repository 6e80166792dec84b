package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
)

func validDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func domainMoveInput(id string, req MoveAppointmentRequest) domain.MoveInput {
	return domain.MoveInput{
		AppointmentID: id,
		NewEmployeeID: req.EmployeeID,
		NewTime:       req.Time,
	}
}

func availabilityInput(date, employeeID string, duration, granularity int, excludeID string) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		Date:        date,
		EmployeeID:  employeeID,
		Duration:    duration,
		Granularity: granularity,
		ExcludeID:   excludeID,
	}
}

func freeWindowInput(date, employeeID, timeOfDay, excludeID string) domain.FreeWindowInput {
	return domain.FreeWindowInput{
		Date:       date,
		EmployeeID: employeeID,
		Time:       timeOfDay,
		ExcludeID:  excludeID,
	}
}
