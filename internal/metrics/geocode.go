package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Geocoder Prometheus metrics.
var (
	GeocodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "savora",
			Name:      "geocode_requests_total",
			Help:      "Total number of geocode requests",
		},
		[]string{"status"},
	)

	GeocodeRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "savora",
			Name:      "geocode_request_duration_seconds",
			Help:      "Geocode request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

// RegisterGeocodeMetrics registers geocoder metrics explicitly (no init()),
// so tests that never touch geocoding do not pay for registration.
func RegisterGeocodeMetrics() {
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeRequestDuration)
}

// ObserveGeocode records one geocode call.
func ObserveGeocode(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	GeocodeRequestsTotal.WithLabelValues(status).Inc()
	GeocodeRequestDuration.Observe(d.Seconds())
}
