package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

const namespace = "ecocoleta"

// Metrics owns the service registry and its collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	transitions   *prometheus.CounterVec
	overdueOrders prometheus.Gauge
}

// New creates the registry with process and Go runtime collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order transition attempts by source, target, role and outcome",
		}, []string{"from", "to", "role", "outcome"}),
		overdueOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_pickups",
			Help:      "Scheduled orders whose date has already passed",
		}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.transitions, m.overdueOrders)
	return m
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records a finished HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveTransition counts one transition attempt.
func (m *Metrics) ObserveTransition(from, to model.StatusID, role model.Role, outcome string) {
	m.transitions.WithLabelValues(statusLabel(from), statusLabel(to), string(role), outcome).Inc()
}

// SetOverduePickups publishes the latest overdue count.
func (m *Metrics) SetOverduePickups(n int) {
	m.overdueOrders.Set(float64(n))
}

func statusLabel(id model.StatusID) string {
	if code := id.Code(); code != "" {
		return code
	}
	return "unknown"
}
