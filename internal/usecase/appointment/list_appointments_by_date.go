package appointment

import (
	"context"

	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/dto"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

type ListAppointmentsByDate struct {
	repo     domain.Repository
	resolver *schedule.Resolver
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	resolver *schedule.Resolver,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:     repo,
		resolver: resolver,
	}
}

// Execute assembles the day calendar: shop-open window plus one column
// per active employee with resolved working ranges and appointments.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) (*dto.DayCalendarDTO, error) {

	out := &dto.DayCalendarDTO{
		Date:    date,
		Columns: []dto.EmployeeColumnDTO{},
	}

	open, isOpen := schedule.OpenHoursOn(date)
	if !isOpen {
		return out, nil
	}
	out.Open = true
	out.OpensAt = open.Start.Clock()
	out.EndsAt = open.End.Clock()

	employees, err := uc.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string]int)
	for i := range employees {
		byEmployee[employees[i].ID] = i
	}

	for _, emp := range employees {
		ranges := uc.resolver.WorkingRanges(emp.ID, date)

		col := dto.EmployeeColumnDTO{
			EmployeeID:   emp.ID,
			Name:         emp.Name,
			Color:        emp.Color,
			Working:      len(ranges) > 0,
			Ranges:       make([][2]string, 0, len(ranges)),
			Appointments: []models.Appointment{},
		}
		for _, r := range ranges {
			col.Ranges = append(col.Ranges, [2]string{r.Start.Clock(), r.End.Clock()})
		}
		out.Columns = append(out.Columns, col)
	}

	for _, ap := range appointments {
		idx, known := byEmployee[ap.EmployeeID]
		if !known {
			continue
		}
		out.Columns[idx].Appointments = append(out.Columns[idx].Appointments, ap)
	}

	return out, nil
}
