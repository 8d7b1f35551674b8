package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Reservation(OutcomeCreated)
	m.Reservation(OutcomeCreated)
	m.Reservation(OutcomeConflict)
	m.Reminder(true)
	m.Reminder(false)
	m.ObserveHTTP("GET", "/api/menus", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservations.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservations.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminders.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/menus", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Reservation(OutcomeCreated)
		m.Reminder(true)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
