package models

import "time"

// Customer is the phone-keyed directory record. PhoneKey is the digits
// of the phone number so different spacings of the same number map to
// one record.
type Customer struct {
	PhoneKey string `gorm:"primaryKey;size:20" json:"phone_key"`

	Phone string `gorm:"size:20" json:"phone"`
	Name  string `gorm:"size:100" json:"name"`

	Notes      string `gorm:"size:500" json:"notes"`
	ClientInfo string `gorm:"type:text" json:"client_info"`

	LastAppointmentAt *time.Time `json:"last_appointment_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
