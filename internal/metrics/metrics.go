package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests   *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	Reconciled *prometheus.CounterVec
	Gateway    *prometheus.HistogramVec
	Alerts     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Pass a fresh registry in tests.
func New(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelapp",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travelapp",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	reconciled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelapp",
		Subsystem: "payments",
		Name:      "notifications_total",
		Help:      "Payment notifications by reconcile state.",
	}, []string{"state"})
	gateway := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travelapp",
		Subsystem: "payments",
		Name:      "gateway_duration_ms",
		Help:      "Snap transaction call latency in milliseconds.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000},
	}, []string{"outcome"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelapp",
		Subsystem: "ops",
		Name:      "alerts_total",
		Help:      "Operator alerts raised by kind.",
	}, []string{"kind"})

	reg.MustRegister(requests, latency, reconciled, gateway, alerts)
	return &Metrics{
		Requests:   requests,
		LatencyMS:  latency,
		Reconciled: reconciled,
		Gateway:    gateway,
		Alerts:     alerts,
		gatherer:   reg,
	}
}

// The observe helpers are nil-safe so callers can run without metrics.

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, statusClass(status)).Inc()
	m.LatencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveReconcile(state string) {
	if m == nil {
		return
	}
	m.Reconciled.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveGateway(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Gateway.WithLabelValues(outcome).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveAlert(kind string) {
	if m == nil {
		return
	}
	m.Alerts.WithLabelValues(kind).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
