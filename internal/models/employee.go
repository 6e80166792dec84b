package models

import (
	"time"

	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// WeekRanges is the stored shape of a weekly schedule: weekday number
// (0=Sunday..6=Saturday) to ordered ["HH:MM","HH:MM"] pairs. A weekday
// mapped to null (or absent) means not working that weekday.
type WeekRanges map[int][][2]string

// Ranges converts the stored shape into engine ranges, dropping pairs
// that fail to parse. The result is normalized per weekday: sorted
// ascending with overlapping pairs merged, so stored data can never
// break the disjoint-ordering the engine assumes.
func (w WeekRanges) Ranges() schedule.Week {
	if w == nil {
		return nil
	}
	week := make(schedule.Week, len(w))
	for day, pairs := range w {
		if day < 0 || day > 6 || pairs == nil {
			continue
		}
		var ranges []schedule.Range
		for _, p := range pairs {
			r, err := schedule.ParseRangePair(p[0], p[1])
			if err != nil {
				continue
			}
			ranges = append(ranges, r)
		}
		if ranges != nil {
			week[time.Weekday(day)] = schedule.NormalizeRanges(ranges)
		}
	}
	return week
}

// Employee is a bookable member of staff. ID is a stable slug such as
// "aggelikh"; Schedule is the default week, superseded by
// ScheduleException history and per-date ScheduleOverride rows.
type Employee struct {
	ID   string `gorm:"primaryKey;size:50" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Schedule WeekRanges `gorm:"serializer:json;type:text" json:"schedule"`

	Color        string `gorm:"size:20" json:"color"`
	DisplayOrder int    `json:"display_order"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleException is an effective-dated regime change: it replaces
// the employee's default week for all dates on/after Effective until a
// later entry supersedes it.
type ScheduleException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID string `gorm:"size:50;index" json:"employee_id"`
	Effective  string `gorm:"size:10;not null" json:"effective"`

	Ranges WeekRanges `gorm:"serializer:json;type:text" json:"ranges"`

	CreatedAt time.Time `json:"created_at"`
}

// ScheduleOverride pins an exact date for one employee: either a full
// day off or a one-off week-shaped schedule for that date only.
// Highest precedence of the three layers.
type ScheduleOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date       string `gorm:"size:10;uniqueIndex:idx_override_date_employee" json:"date"`
	EmployeeID string `gorm:"size:50;uniqueIndex:idx_override_date_employee" json:"employee_id"`

	Off    bool       `json:"off"`
	Ranges WeekRanges `gorm:"serializer:json;type:text" json:"ranges"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
