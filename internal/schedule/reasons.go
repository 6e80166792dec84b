package schedule

import "fmt"

// Reason classifies why a create, edit or move was refused.
type Reason string

const (
	ReasonSlotConflict Reason = "SLOT_CONFLICT"
	ReasonOutsideHours Reason = "OUTSIDE_HOURS"
	ReasonMissingField Reason = "MISSING_FIELD"
)

// Rejection is the structured refusal handed back to the caller. Every
// rejection is recoverable at the level of a single user action.
type Rejection struct {
	Reason Reason `json:"reason"`

	// Id of the appointment the candidate collides with, so the UI can
	// navigate to it for disambiguation.
	ConflictingAppointmentID string `json:"conflicting_appointment_id,omitempty"`

	// Field that was missing, for MISSING_FIELD.
	Field string `json:"field,omitempty"`

	// Stale marks conflicts found only by the pre-save recheck against
	// freshly fetched data.
	Stale bool `json:"stale,omitempty"`
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case ReasonSlotConflict:
		if r.ConflictingAppointmentID != "" {
			return fmt.Sprintf("slot conflict with appointment %s", r.ConflictingAppointmentID)
		}
		return "slot conflict"
	case ReasonOutsideHours:
		return "outside working hours"
	case ReasonMissingField:
		return fmt.Sprintf("missing required field %s", r.Field)
	}
	return string(r.Reason)
}

func RejectConflict(conflictingID string, stale bool) *Rejection {
	return &Rejection{
		Reason:                   ReasonSlotConflict,
		ConflictingAppointmentID: conflictingID,
		Stale:                    stale,
	}
}

func RejectOutsideHours() *Rejection {
	return &Rejection{Reason: ReasonOutsideHours}
}

func RejectMissingField(field string) *Rejection {
	return &Rejection{Reason: ReasonMissingField, Field: field}
}
