package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booking"

// Metrics groups the service instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	gatewayCalls   *prometheus.CounterVec
	gatewayLatency *prometheus.HistogramVec
	cartRollbacks  prometheus.Counter
	submissions    *prometheus.CounterVec
	waitOutcomes   *prometheus.CounterVec
	activeWaits    prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Remote order service calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Remote order service call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		cartRollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_quantity_rollbacks_total",
			Help:      "Optimistic quantity changes restored after a failed update.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_submissions_total",
			Help:      "Checkout submissions by outcome.",
		}, []string{"outcome"}),
		waitOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_wait_outcomes_total",
			Help:      "Vendor waits by terminal state.",
		}, []string{"state"}),
		activeWaits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vendor_waits_active",
			Help:      "Vendor waits currently polling.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gatewayCalls, m.gatewayLatency, m.cartRollbacks,
		m.submissions, m.waitOutcomes, m.activeWaits,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveGatewayCall(op, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(op, outcome).Inc()
	m.gatewayLatency.WithLabelValues(op).Observe(took.Seconds())
}

func (m *Metrics) CartRollback() {
	if m == nil {
		return
	}
	m.cartRollbacks.Inc()
}

func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) WaitStarted() {
	if m == nil {
		return
	}
	m.activeWaits.Inc()
}

func (m *Metrics) WaitFinished(state string) {
	if m == nil {
		return
	}
	m.activeWaits.Dec()
	m.waitOutcomes.WithLabelValues(state).Inc()
}
