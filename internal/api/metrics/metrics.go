// Package metrics defines and registers all custom Prometheus metrics for the
// workout API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto, and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workouts"

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsProcessedTotal counts audit events that were persisted successfully.
// Label:
//   - type: the workout event type (e.g. "created", "completed")
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of workout events successfully processed.",
	},
	[]string{"type"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - type: the workout event type
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of workout events that failed processing.",
	},
	[]string{"type"},
)

// EventsDroppedTotal counts events discarded because their worker queue was full.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of workout events dropped because the dispatcher queue was full.",
	},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single event takes to process end-to-end.
// Label:
//   - type: the workout event type
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

// ── Workout metrics ───────────────────────────────────────────────────────────

// WorkoutsCreatedTotal counts newly created workouts.
// Label:
//   - workout_type: e.g. "running", "gym"
var WorkoutsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workouts_created_total",
		Help:      "Total number of workouts created, by workout type.",
	},
	[]string{"workout_type"},
)

// WorkoutTransitionsTotal counts lifecycle actions.
// Labels:
//   - action: "start", "complete" or "skip"
//   - result: "ok" or "rejected"
var WorkoutTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workout_transitions_total",
		Help:      "Total number of workout lifecycle actions, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
