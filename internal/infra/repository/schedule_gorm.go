package repository

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// ScheduleGormSource backs the schedule resolver with the employee,
// exception and override tables. Lookup failures are reported as
// not-found: an unreadable layer resolves like an absent one, and the
// employee ends up "not working" rather than the request erroring out.
type ScheduleGormSource struct {
	db *gorm.DB
}

func NewScheduleGormSource(db *gorm.DB) *ScheduleGormSource {
	return &ScheduleGormSource{db: db}
}

func (s *ScheduleGormSource) DefaultWeek(employeeID string) (schedule.Week, bool) {
	var emp models.Employee
	if err := s.db.
		Where("id = ?", employeeID).
		First(&emp).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Warn().Err(err).Str("employee", employeeID).Msg("default week lookup failed")
		}
		return nil, false
	}
	return emp.Schedule.Ranges(), true
}

func (s *ScheduleGormSource) History(employeeID string) []schedule.RegimeChange {
	var rows []models.ScheduleException
	if err := s.db.
		Where("employee_id = ?", employeeID).
		Order("effective ASC, id ASC").
		Find(&rows).Error; err != nil {
		log.Warn().Err(err).Str("employee", employeeID).Msg("schedule history lookup failed")
		return nil
	}

	out := make([]schedule.RegimeChange, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.RegimeChange{
			Effective: row.Effective,
			Ranges:    row.Ranges.Ranges(),
		})
	}
	return out
}

func (s *ScheduleGormSource) Override(date string, employeeID string) (*schedule.DayOverride, bool) {
	var row models.ScheduleOverride
	if err := s.db.
		Where("date = ? AND employee_id = ?", date, employeeID).
		First(&row).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Warn().Err(err).Str("employee", employeeID).Str("date", date).Msg("override lookup failed")
		}
		return nil, false
	}
	return &schedule.DayOverride{
		Off:    row.Off,
		Ranges: row.Ranges.Ranges(),
	}, true
}

// Compile-time check
var _ schedule.Source = (*ScheduleGormSource)(nil)
