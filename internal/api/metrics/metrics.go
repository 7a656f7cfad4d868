// Package metrics defines and registers the custom Prometheus metrics of the
// postboard API. HTTP request metrics come from the echoprometheus middleware;
// this package covers authentication and content outcomes.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/postboard/api/internal/core/domain"
)

const namespace = "postboard"

// Result labels shared by the counters below.
const (
	ResultSuccess      = "success"
	ResultInvalid      = "invalid"
	ResultUnauthorized = "unauthorized"
	ResultForbidden    = "forbidden"
	ResultError        = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - operation: "register" or "login"
//   - result: see Result
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// IdentityResolutionsTotal counts per-request identity resolution.
// Label:
//   - result: "authenticated" or "anonymous"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of requests by resolved caller identity.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostMutationsTotal counts create, update and delete calls.
// Labels:
//   - operation: "create", "update" or "delete"
//   - result: see Result
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of post mutations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// Result maps an operation error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, domain.ErrBadInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		return ResultUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return ResultForbidden
	default:
		return ResultError
	}
}
