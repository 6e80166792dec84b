package dto

import "github.com/opal-salon/salon-scheduler/internal/models"

// DayCalendarDTO is the staff day view: the shop's open window and one
// column per employee with their working ranges and appointments.
type DayCalendarDTO struct {
	Date    string              `json:"date"`
	Open    bool                `json:"open"`
	OpensAt string              `json:"opens_at,omitempty"`
	EndsAt  string              `json:"ends_at,omitempty"`
	Columns []EmployeeColumnDTO `json:"columns"`
}

type EmployeeColumnDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`

	Working bool        `json:"working"`
	Ranges  [][2]string `json:"ranges"`

	Appointments []models.Appointment `json:"appointments"`
}
