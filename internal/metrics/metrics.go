// Package metrics provides Prometheus instrumentation for twitchy.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TrialsTotal counts finished trials by difficulty and outcome.
	TrialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twitchy",
			Name:      "trials_total",
			Help:      "Total finished trials by difficulty and outcome (success, too_soon).",
		},
		[]string{"difficulty", "outcome"},
	)

	// ReactionMilliseconds observes successful reaction times.
	ReactionMilliseconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "twitchy",
			Name:      "reaction_milliseconds",
			Help:      "Reaction time of successful trials in milliseconds.",
			Buckets:   []float64{100, 150, 200, 250, 300, 350, 400, 500, 750, 1000},
		},
		[]string{"difficulty"},
	)

	// FallbackWaitsTotal counts trials armed with the fallback wait range.
	FallbackWaitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "twitchy",
		Name:      "fallback_waits_total",
		Help:      "Trials armed with the fallback wait range after a bad profile or draw.",
	})

	// LedgerWritesTotal counts ledger persistence attempts by result.
	LedgerWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twitchy",
			Name:      "ledger_writes_total",
			Help:      "Total ledger document writes by result (ok, error).",
		},
		[]string{"result"},
	)

	// AchievementsUnlockedTotal counts achievement unlocks by id.
	AchievementsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twitchy",
			Name:      "achievements_unlocked_total",
			Help:      "Total achievement unlocks by achievement id.",
		},
		[]string{"achievement"},
	)

	// ActiveSessions tracks players currently connected over SSH.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "twitchy",
		Name:      "active_sessions",
		Help:      "Number of currently connected SSH play sessions.",
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twitchy",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		TrialsTotal,
		ReactionMilliseconds,
		FallbackWaitsTotal,
		LedgerWritesTotal,
		AchievementsUnlockedTotal,
		ActiveSessions,
		HTTPRequestsTotal,
	)
}

// Middleware returns a gin middleware that counts requests.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // route pattern keeps cardinality bounded
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
