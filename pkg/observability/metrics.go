package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway request outcomes
const (
	OutcomeApproved       = "approved"
	OutcomeDeclined       = "declined"
	OutcomeGatewayError   = "gateway_error"
	OutcomeParseError     = "parse_error"
	OutcomeTransportError = "transport_error"
	OutcomeInvalid        = "invalid"
)

var (
	// SecurePay request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securepay_requests_total",
			Help: "Total number of SecurePay Periodic requests by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "securepay_request_duration_seconds",
			Help: "Round trip time of SecurePay Periodic requests in seconds",
			// the gateway allows itself 60s
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"action"},
	)

	gatewayRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "securepay_requests_in_flight",
			Help: "Number of SecurePay requests currently awaiting a response",
		},
	)
)

// GatewayRequestStarted marks a request in flight and returns a func that
// records its outcome and duration when called.
func GatewayRequestStarted(action string) func(outcome string) {
	start := time.Now()
	gatewayRequestsInFlight.Inc()

	return func(outcome string) {
		gatewayRequestsInFlight.Dec()
		gatewayRequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
		gatewayRequestsTotal.WithLabelValues(action, outcome).Inc()
	}
}

// RecordRejectedRequest counts a request refused before it was sent
func RecordRejectedRequest(action string) {
	gatewayRequestsTotal.WithLabelValues(action, OutcomeInvalid).Inc()
}
