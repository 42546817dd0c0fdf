package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking(OutcomeCreated)
	m.ObserveBooking(OutcomeCreated)
	m.ObserveBooking(OutcomeConflict)
	m.ObserveDeletion(true)
	m.ObserveDeletion(false)
	m.ObserveDeletion(false)
	m.ObserveStorageError("persist")
	m.ObserveHTTP("GET", "/health", "200", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deletionsTotal.WithLabelValues(OutcomeRemoved)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.deletionsTotal.WithLabelValues(OutcomeAbsent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageErrors.WithLabelValues("persist")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpLatency))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveBooking(OutcomeInvalid)
		m.ObserveDeletion(true)
		m.ObserveStorageError("restore")
		m.ObserveHTTP("POST", "/", "500", 1)
	})
}
