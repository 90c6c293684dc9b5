package apiclient

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"resident/pkg/platform/sentinel"
)

// Metrics records outbound call latency and outcomes per API.
type Metrics struct {
	Latency *prometheus.HistogramVec
	Calls   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resident_upstream_request_duration_seconds",
			Help:    "Latency of outbound platform API calls",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"api"}),
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resident_upstream_requests_total",
			Help: "Outbound platform API calls by API and outcome",
		}, []string{"api", "outcome"}),
	}
	reg.MustRegister(m.Latency, m.Calls)
	return m
}

func (m *Metrics) observe(api APIName, status int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Latency.WithLabelValues(string(api)).Observe(elapsed.Seconds())
	m.Calls.WithLabelValues(string(api), outcome(status, err)).Inc()
}

func outcome(status int, err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sentinel.ErrUnavailable):
		return "circuit_open"
	case status == 0:
		return "transport_error"
	default:
		return strconv.Itoa(status)
	}
}
