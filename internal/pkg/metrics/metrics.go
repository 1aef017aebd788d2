// Package metrics defines and registers the custom Prometheus metrics of the
// portal. It is the single source of truth for metric names, labels and help
// strings.
//
// All metrics register with the default registry through promauto, which is
// what the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Labels:
//   - role: requested role (e.g. "doctor")
//   - result: "success", "email_taken", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - to: the new state ("authenticated", "unauthenticated")
//   - cause: the operation that caused it (e.g. "login", "logout", "revalidate")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target state and cause.",
	},
	[]string{"to", "cause"},
)

// SessionAuthenticated is 1 while a user is logged in, 0 otherwise.
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "Whether the application session currently holds a user.",
	},
)

// ── Access guard metrics ──────────────────────────────────────────────────────

// GuardDecisionsTotal counts access guard outcomes.
// Label:
//   - decision: "render", "wait", "redirect_login" or "redirect_landing"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageConflictsTotal counts optimistic write conflicts on a durable key.
// Label:
//   - key: the storage key that was contended (e.g. "users")
var StorageConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_conflicts_total",
		Help:      "Total number of compare-and-set conflicts, by storage key.",
	},
	[]string{"key"},
)

// StorageChangesTotal counts broadcast storage-change notifications.
// Label:
//   - key: the storage key that changed
var StorageChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_changes_total",
		Help:      "Total number of storage-change notifications published, by key.",
	},
	[]string{"key"},
)
