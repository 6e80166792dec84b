package models

import "time"

// WaitlistEntry is a client waiting for an opening on a specific date.
type WaitlistEntry struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Date  string `gorm:"size:10;index" json:"date"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Prefs string `gorm:"size:500" json:"prefs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
