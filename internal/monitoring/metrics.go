package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the portal
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	TokensMinted     prometheus.Counter
	SessionsStarted  prometheus.Counter
	RedemptionsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nss_http_requests_total",
			Help: "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nss_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		TokensMinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "nss_attendance_tokens_minted_total",
			Help: "Attendance tokens minted by the issuer",
		}),

		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "nss_attendance_sessions_started_total",
			Help: "Token issuing sessions started",
		}),

		RedemptionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nss_attendance_redemptions_total",
			Help: "Redemption attempts by outcome",
		}, []string{"outcome"}),
	}
}

// Outcome labels for RedemptionsTotal
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeMalformed = "malformed"
	OutcomeStale     = "stale"
	OutcomeError     = "error"
)

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
