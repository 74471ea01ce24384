// Package metrics holds the client-side Prometheus counters for gateway and
// controller activity. Metrics live on a private registry so several
// instances can coexist in one process (tests, embedded use).
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics is safe to use as a nil pointer: every recorder is a no-op then.
type Metrics struct {
	registry *prometheus.Registry

	gatewayRequestsTotal      *prometheus.CounterVec
	gatewayRequestDuration    *prometheus.HistogramVec
	gatewayUnauthorizedTotal  prometheus.Counter
	controllerStaleTotal      *prometheus.CounterVec
	controllerSaveFailedTotal *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		gatewayRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_gateway_requests_total",
			Help: "Requests sent to the remote API",
		}, []string{"resource", "method", "code"}),

		gatewayRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_gateway_request_duration_seconds",
			Help:    "Remote API round trip duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),

		gatewayUnauthorizedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_gateway_unauthorized_total",
			Help: "Responses with status 401 that invalidated the session",
		}),

		controllerStaleTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_controller_stale_responses_total",
			Help: "List responses dropped because a newer request was issued",
		}, []string{"resource"}),

		controllerSaveFailedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_controller_save_failures_total",
			Help: "Create or update calls that failed",
		}, []string{"resource"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts one finished round trip. code is the HTTP status as
// text, or "error" when no response arrived.
func (m *Metrics) RecordRequest(resource, method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.gatewayRequestsTotal.WithLabelValues(resource, method, code).Inc()
	m.gatewayRequestDuration.WithLabelValues(resource).Observe(seconds)
}

func (m *Metrics) RecordUnauthorized() {
	if m == nil {
		return
	}
	m.gatewayUnauthorizedTotal.Inc()
}

func (m *Metrics) RecordStaleResponse(resource string) {
	if m == nil {
		return
	}
	m.controllerStaleTotal.WithLabelValues(resource).Inc()
}

func (m *Metrics) RecordSaveFailure(resource string) {
	if m == nil {
		return
	}
	m.controllerSaveFailedTotal.WithLabelValues(resource).Inc()
}

// Sample is one counter series flattened for display.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Counters gathers every counter series, sorted by name then labels.
// Histograms are reported by their sample count.
func (m *Metrics) Counters() ([]Sample, error) {
	if m == nil {
		return nil, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: formatLabels(metric.GetLabel())}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = metric.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Name += "_count"
				s.Value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
