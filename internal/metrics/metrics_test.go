package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGatewayCall("update", "ok", time.Millisecond)
		m.CartRollback()
		m.Submission("submitted")
		m.WaitStarted()
		m.WaitFinished("accepted")
	})
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.ObserveGatewayCall("update", "ok", 10*time.Millisecond)
	m.ObserveGatewayCall("update", "ok", 20*time.Millisecond)
	m.WaitStarted()
	m.WaitFinished("expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("update", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeWaits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.waitOutcomes.WithLabelValues("expired")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking_gateway_calls_total")
}
