package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides observability for the OTP mediator.
type Metrics struct {
	// OTP requests by entry point (direct, aid) and outcome
	Requests *prometheus.CounterVec

	// Latency of the OTP generation call as seen by the mediator
	GenerateLatency prometheus.Histogram

	// Transaction records written after a successful OTP
	TransactionsWritten prometheus.Counter
}

// New creates the OTP metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resident_otp_requests_total",
			Help: "OTP requests by entry point and outcome",
		}, []string{"entry", "outcome"}), // outcome: "sent", "rejected", or an error code

		GenerateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resident_otp_generate_duration_seconds",
			Help:    "Duration of OTP generation including the transaction write",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		TransactionsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resident_otp_transactions_written_total",
			Help: "Resident transaction records written for generated OTPs",
		}),
	}
	reg.MustRegister(m.Requests, m.GenerateLatency, m.TransactionsWritten)
	return m
}

// IncrementRequest records an OTP request outcome.
func (m *Metrics) IncrementRequest(entry, outcome string) {
	if m != nil {
		m.Requests.WithLabelValues(entry, outcome).Inc()
	}
}

// ObserveGenerateLatency records the duration of one GenerateOTP call.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementTransactionsWritten() {
	if m != nil {
		m.TransactionsWritten.Inc()
	}
}
