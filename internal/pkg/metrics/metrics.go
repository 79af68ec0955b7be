// Package metrics defines and registers all custom Prometheus metrics for the
// hospital API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts token requests by outcome.
// Label:
//   - outcome: "success", "invalid_request", "unknown_identifier",
//     "account_disabled", "bad_credentials" or "error"
//
// The outcome is internal diagnostics only; callers always see the same
// failure for the three rejection outcomes.
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of token requests, by outcome.",
	},
	[]string{"outcome"},
)

// IdentifierResolutionsTotal counts which lookup path resolved a login identifier.
// Label:
//   - path: "username", "email", "contact_number" or "none"
var IdentifierResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identifier_resolutions_total",
		Help:      "Total number of login identifier resolutions, by matching path.",
	},
	[]string{"path"},
)

// AuthDuration measures CreateToken end-to-end.
var AuthDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of token requests from resolution to issuance.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Account and booking metrics ───────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered.",
	},
)

// PatientsBookedTotal counts booked appointments.
var PatientsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "patients_booked_total",
		Help:      "Total number of patient appointments booked.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notification delivery results.
// Labels:
//   - kind: "welcome" or "appointment"
//   - result: "sent", "failed" or "duplicate"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification deliveries, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
