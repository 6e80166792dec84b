package appointment

import (
	"context"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
)

// PurgeOldAppointments deletes every appointment dated strictly before
// the cutoff, a housekeeping action run from the admin screen.
type PurgeOldAppointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPurgeOldAppointments(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *PurgeOldAppointments {
	return &PurgeOldAppointments{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *PurgeOldAppointments) Execute(
	ctx context.Context,
	userID uint,
	before string,
) (int64, error) {

	purged, err := uc.repo.PurgeBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "appointments_purged",
		Entity: "appointment",
		Metadata: map[string]any{
			"before": before,
			"purged": purged,
		},
	})

	return purged, nil
}
