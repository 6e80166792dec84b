package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// fakeRepo is an in-memory Repository for usecase tests.
type fakeRepo struct {
	mu sync.Mutex

	appointments map[string]*models.Appointment
	employees    map[string]*models.Employee
	customers    map[string]*models.Customer
	waitlist     map[string]*models.WaitlistEntry

	// listHook, when set, intercepts ListForDay. call counts from 1.
	listHook  func(call int) ([]models.Appointment, error)
	listCalls int

	failCreate bool
	failUpdate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments: make(map[string]*models.Appointment),
		employees: map[string]*models.Employee{
			"anna":  {ID: "anna", Name: "Anna", Active: true},
			"maria": {ID: "maria", Name: "Maria", Active: true},
		},
		customers: make(map[string]*models.Customer),
		waitlist:  make(map[string]*models.WaitlistEntry),
	}
}

func (f *fakeRepo) add(ap models.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := ap
	f.appointments[ap.ID] = &cp
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) ListForDay(ctx context.Context, employeeID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.listHook
	f.mu.Unlock()

	if hook != nil {
		return hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.EmployeeID == employeeID && ap.Date == date && ap.Status != "cancelled" {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.failCreate {
		return errors.New("create failed")
	}
	f.add(*ap)
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	f.add(*ap)
	return nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) PurgeBefore(ctx context.Context, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purged int64
	for id, ap := range f.appointments {
		if ap.Date < date {
			delete(f.appointments, id)
			purged++
		}
	}
	return purged, nil
}

func (f *fakeRepo) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return emp, nil
}

func (f *fakeRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Employee
	for _, emp := range f.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (f *fakeRepo) UpsertCustomer(ctx context.Context, customer *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *customer
	f.customers[customer.PhoneKey] = &cp
	return nil
}

func (f *fakeRepo) GetWaitlistEntry(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.waitlist[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeRepo) ListWaitlist(ctx context.Context, date string) ([]models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WaitlistEntry
	for _, entry := range f.waitlist {
		if date == "" || entry.Date == date {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeRepo) CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	if f.failCreate {
		return errors.New("create failed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	f.waitlist[entry.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	f.waitlist[entry.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteWaitlistEntry(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.waitlist, id)
	return nil
}

// fakeScheduleSource gives every employee the same default week.
type fakeScheduleSource struct {
	week schedule.Week
}

func (f *fakeScheduleSource) DefaultWeek(employeeID string) (schedule.Week, bool) {
	return f.week, true
}

func (f *fakeScheduleSource) History(employeeID string) []schedule.RegimeChange {
	return nil
}

func (f *fakeScheduleSource) Override(date, employeeID string) (*schedule.DayOverride, bool) {
	return nil, false
}

// testResolver works 10:00-16:00 on Tuesdays for everyone.
func testResolver() *schedule.Resolver {
	return schedule.NewResolver(&fakeScheduleSource{
		week: schedule.Week{
			time.Tuesday: {{Start: 600, End: 960}},
		},
	})
}

func fastRetry() RetryPolicy {
	return RetryPolicy{Attempts: 2, Backoff: time.Millisecond}
}

// openTuesday is an open-day date the test resolver covers.
const openTuesday = "2026-03-03"
