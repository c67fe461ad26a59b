// Package metrics defines all custom Prometheus metrics for the auth
// service. It is the single source of truth for metric names, labels, and
// help strings; metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// ── Credential lifecycle ──────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the role assigned to the new user ("admin", "client", "teller")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users successfully registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "user_not_found", or "invalid_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// UsersDeletedTotal counts users removed through the rollback deletion path.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted (compensating rollback path).",
	},
)

// TokensIssuedTotal counts signed bearer tokens handed out by register and login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of JWT bearer tokens issued.",
	},
)

// PasswordHashDuration measures bcrypt hashing time. Hashing is deliberately
// CPU-expensive; this histogram makes the cost of a work-factor change visible.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing during registration.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// ── Cache ─────────────────────────────────────────────────────────────────────

// UserCacheTotal counts public-view cache lookups.
// Label:
//   - result: "hit" or "miss"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user view cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
