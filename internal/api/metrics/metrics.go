// Package metrics defines and registers all custom Prometheus metrics for the
// lingua backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lingua"

// ── Token lifecycle metrics ───────────────────────────────────────────────────

// TokensIssuedTotal counts successfully issued session tokens.
// Label:
//   - kind: "user" or "contributor"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
	[]string{"kind"},
)

// TokenVerificationsTotal counts token verification attempts.
// Label:
//   - result: "success" or "failure"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts logout revocations.
// Label:
//   - found: "true" when a store row was actually deleted, "false" otherwise
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of revocation requests, labelled by whether a row existed.",
	},
	[]string{"found"},
)

// TokensSweptTotal counts expired token rows removed by sweeps.
var TokensSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_swept_total",
		Help:      "Total number of expired token rows removed by sweeps.",
	},
)

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential authentication attempts.
// Labels:
//   - kind: "user" or "contributor"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)
