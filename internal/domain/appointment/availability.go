package appointment

// AvailabilityInput asks for the bookable start times of one employee
// on one date for a requested duration. ExcludeID carries the id of an
// appointment being edited in place so it does not block its own slots.
type AvailabilityInput struct {
	Date        string
	EmployeeID  string
	Duration    int
	Granularity int
	ExcludeID   string
}

// FreeWindowInput asks how many minutes are startable at Time before
// the next appointment or the end of the working interval.
type FreeWindowInput struct {
	Date       string
	EmployeeID string
	Time       string
	ExcludeID  string
}

// MoveInput relocates an existing appointment to another employee
// and/or start time.
type MoveInput struct {
	AppointmentID string
	NewEmployeeID string
	NewTime       string
}
