// Package metrics defines and registers all custom Prometheus metrics for the
// hospital portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts account registrations.
// Label:
//   - role: "patient", "doctor", "admin", or "error" on failure
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by resulting role or error.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// SourceFetchFailuresTotal counts hospital-source fetches that failed and were
// reported as degraded rows in a speciality search.
// Label:
//   - source: the configured source name (e.g. "hospital_a")
var SourceFetchFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_fetch_failures_total",
		Help:      "Total number of failed hospital source fetches, by source.",
	},
	[]string{"source"},
)
