package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/models"
)

// RetryPolicy bounds the pre-save re-fetch of the day's appointments.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: 200 * time.Millisecond}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.Backoff <= 0 {
		p.Backoff = 200 * time.Millisecond
	}
	return p
}

// dayFetcher is the slice of the repository the revalidation needs.
type dayFetcher interface {
	ListForDay(ctx context.Context, employeeID string, date string) ([]models.Appointment, error)
}

// fetchDayForValidation pulls the freshest appointment list for the
// employee/date immediately before a commit. It retries with
// exponential backoff and, when every attempt fails, falls back to the
// last cached snapshot rather than blocking the save: availability over
// consistency, with a logged warning.
func fetchDayForValidation(
	ctx context.Context,
	repo dayFetcher,
	snap cache.DaySnapshot,
	policy RetryPolicy,
	employeeID string,
	date string,
) (appointments []models.Appointment, fresh bool) {

	policy = policy.normalized()

	var lastErr error
	backoff := policy.Backoff
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		aps, err := repo.ListForDay(ctx, employeeID, date)
		if err == nil {
			if snap != nil {
				snap.Put(ctx, employeeID, date, aps)
			}
			return aps, true
		}
		lastErr = err

		if attempt < policy.Attempts {
			select {
			case <-ctx.Done():
				attempt = policy.Attempts
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	metrics.IncSnapshotFallback()

	if snap != nil {
		if aps, ok := snap.Get(ctx, employeeID, date); ok {
			log.Warn().
				Err(lastErr).
				Str("employee", employeeID).
				Str("date", date).
				Msg("re-fetch before save failed, validating against cached snapshot")
			return aps, false
		}
	}

	log.Warn().
		Err(lastErr).
		Str("employee", employeeID).
		Str("date", date).
		Msg("re-fetch before save failed and no snapshot cached, validating against empty view")
	return nil, false
}
