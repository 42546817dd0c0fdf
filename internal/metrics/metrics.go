package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeRemoved  = "removed"
	OutcomeAbsent   = "absent"
)

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	bookingsTotal  *prometheus.CounterVec
	deletionsTotal *prometheus.CounterVec
	storageErrors  *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tattoo",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Appointment submissions by outcome",
		}, []string{"outcome"}),
		deletionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tattoo",
			Subsystem: "booking",
			Name:      "deletions_total",
			Help:      "Admin deletions by outcome",
		}, []string{"outcome"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tattoo",
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Durable storage failures by operation",
		}, []string{"op"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tattoo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.deletionsTotal, m.storageErrors, m.httpLatency)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveDeletion(removed bool) {
	if m == nil {
		return
	}
	outcome := OutcomeAbsent
	if removed {
		outcome = OutcomeRemoved
	}
	m.deletionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveStorageError(op string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(op).Inc()
}

func (m *BookingMetrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpLatency.WithLabelValues(method, route, status).Observe(seconds)
}
