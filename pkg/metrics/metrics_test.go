package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAdmission(t *testing.T) {
	m := NewWithRegisterer("heritage", prometheus.NewRegistry())

	m.ObserveAdmission(OutcomeAdmitted)
	m.ObserveAdmission(OutcomeAdmitted)
	m.ObserveAdmission(OutcomeCapacityExceeded)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues("heritage", OutcomeAdmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues("heritage", OutcomeCapacityExceeded)))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("heritage", prometheus.NewRegistry())

	m.ObserveHTTPRequest(http.MethodPost, "/api/bookings", http.StatusCreated, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("heritage", "POST", "/api/bookings", "201")))
}

func TestObserveDBQuery_CountsErrors(t *testing.T) {
	m := NewWithRegisterer("heritage", prometheus.NewRegistry())

	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.ObserveDBQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("heritage", "query")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission(OutcomeAdmitted)
		m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("exec", time.Millisecond, nil)
		m.SetPoolStats(1, 1, 0, 0)
	})
}
