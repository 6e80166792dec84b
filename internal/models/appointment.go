package models

import (
	"time"

	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Date       string `gorm:"size:10;index:idx_appointments_day" json:"date"`
	EmployeeID string `gorm:"size:50;index:idx_appointments_day" json:"employee"`

	// Client-preferred stylist shown on the card. Cosmetic only; the
	// column owner for conflict purposes is EmployeeID.
	DisplayEmployee string `gorm:"size:50" json:"display_employee,omitempty"`

	Time     string `gorm:"size:5;not null" json:"time"`
	Duration int    `gorm:"not null" json:"duration"`

	Client      string `gorm:"size:100;not null" json:"client"`
	Phone       string `gorm:"size:20" json:"phone"`
	Description string `gorm:"size:500" json:"description"`
	ClientInfo  string `gorm:"type:text" json:"client_info"`

	Price       float64 `json:"price"`
	PaymentType string  `gorm:"size:20" json:"payment_type"`
	Status      string  `gorm:"size:20;default:'scheduled'" json:"status"`
	Starred     bool    `json:"starred"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Booking projects the appointment into the scheduling engine's view.
func (a *Appointment) Booking() (schedule.Booking, error) {
	start, err := schedule.ParseClock(a.Time)
	if err != nil {
		return schedule.Booking{}, err
	}
	return schedule.Booking{ID: a.ID, Start: start, Duration: a.Duration}, nil
}

// Bookings converts a day's appointments, skipping rows whose stored
// time no longer parses.
func Bookings(appointments []Appointment) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(appointments))
	for i := range appointments {
		b, err := appointments[i].Booking()
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}
