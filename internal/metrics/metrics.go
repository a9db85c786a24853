// Package metrics exposes Prometheus counters for invoice derivation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup names used for degraded-lookup counts
const (
	LookupLocation      = "location"
	LookupInvoiceDetail = "invoice_detail"
)

// Metrics holds the service's collectors
type Metrics struct {
	registry        *prometheus.Registry
	derivations     *prometheus.CounterVec
	degradedLookups *prometheus.CounterVec
	renders         *prometheus.CounterVec
	priceMismatches *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_derivations_total",
			Help: "Invoices derived, by reservation kind and pricing path.",
		}, []string{"kind", "path"}),
		degradedLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_degraded_lookups_total",
			Help: "Upstream lookups that failed and were replaced by a placeholder.",
		}, []string{"lookup"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_renders_total",
			Help: "Rendered invoice artifacts, by format and result.",
		}, []string{"format", "result"}),
		priceMismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_price_mismatches_total",
			Help: "Backend-supplied invoice figures that disagree with local pricing.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.derivations, m.degradedLookups, m.renders, m.priceMismatches)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Derivation(kind, path string) {
	m.derivations.WithLabelValues(kind, path).Inc()
}

func (m *Metrics) DegradedLookup(lookup string) {
	m.degradedLookups.WithLabelValues(lookup).Inc()
}

func (m *Metrics) Render(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(format, result).Inc()
}

func (m *Metrics) PriceMismatch(field string) {
	m.priceMismatches.WithLabelValues(field).Inc()
}
