package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by budget state and outcome",
		},
		[]string{"state", "outcome"},
	)

	recommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent serving a recommendation request, including collaborator reads",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	recommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of beverages surviving the mood and price filter",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	purchasesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_recorded_total",
			Help: "Purchases recorded through the API",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRecommendation records a finished recommendation request.
// outcome is one of ok, empty or error.
func ObserveRecommendation(state, outcome string, candidates int, elapsed time.Duration) {
	if state == "" {
		state = "unknown"
	}
	recommendationsTotal.WithLabelValues(state, outcome).Inc()
	recommendationDuration.Observe(elapsed.Seconds())
	if candidates >= 0 {
		recommendationCandidates.Observe(float64(candidates))
	}
}

// IncPurchasesRecorded increments the recorded purchases counter.
func IncPurchasesRecorded() {
	purchasesRecordedTotal.Inc()
}

// ObserveHTTPRequest counts a completed HTTP request.
func ObserveHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
