package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	slotQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "slot_queries_total",
			Help:      "Count of availability computations.",
		},
	)

	appointmentSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "appointment_saved_total",
			Help:      "Count of appointment saves by kind (create, update, move).",
		},
		[]string{"kind"},
	)

	conflictsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "conflicts_rejected_total",
			Help:      "Count of saves rejected by the conflict validator; stale marks conflicts found only by the pre-save recheck.",
		},
		[]string{"stale"},
	)

	snapshotFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "snapshot_fallbacks_total",
			Help:      "Count of pre-save re-fetches that exhausted retries and fell back to cached data.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(slotQueries, appointmentSaved, conflictsRejected, snapshotFallbacks)
	})
}

func IncSlotQuery() {
	slotQueries.Inc()
}

func IncAppointmentSaved(kind string) {
	appointmentSaved.WithLabelValues(kind).Inc()
}

func IncConflictRejected(stale bool) {
	label := "false"
	if stale {
		label = "true"
	}
	conflictsRejected.WithLabelValues(label).Inc()
}

func IncSnapshotFallback() {
	snapshotFallbacks.Inc()
}
