// Package metrics defines the custom Prometheus metrics of the Twittoo API.
// They are registered with the default registry on package init via promauto
// and exposed on /metrics next to the HTTP metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "twittoo"

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts.",
	},
	[]string{"action", "result"},
)

// RateLimitedTotal counts requests rejected by the per-IP limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// ── Tweets ────────────────────────────────────────────────────────────────────

// TweetsCreatedTotal counts published tweets.
// Label:
//   - media: "text" or "images"
var TweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tweets_created_total",
		Help:      "Total number of tweets created.",
	},
	[]string{"media"},
)

// IdempotentReplaysTotal counts tweet creations answered from an earlier
// request with the same Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of tweet creations replayed from an idempotency key.",
	},
)

// TogglesTotal counts like, retweet and follow toggles.
// Labels:
//   - kind: "like", "retweet" or "follow"
//   - state: "on" or "off"
var TogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggles_total",
		Help:      "Total number of engagement toggles, by kind and resulting state.",
	},
	[]string{"kind", "state"},
)

// ToggleState maps a toggle result to its label value.
func ToggleState(active bool) string {
	if active {
		return "on"
	}
	return "off"
}
