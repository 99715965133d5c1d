package metrics

import (
	"net/http"
	"sync"

	"github.com/haguru/folio/internal/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics keeps the service's Prometheus collectors by name, all in one
// registry under the service namespace. Updates to a name that was never
// registered are dropped.
type Metrics struct {
	Registry  *prometheus.Registry
	namespace string

	mu            sync.RWMutex
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	histogramVecs map[string]*prometheus.HistogramVec
	gauges        map[string]prometheus.Gauge
}

// NewMetrics creates a registry that also exports the Go runtime and
// process collectors.
func NewMetrics(serviceName string) interfaces.Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: serviceName}),
	)
	return &Metrics{
		Registry:      registry,
		namespace:     serviceName,
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
		gauges:        make(map[string]prometheus.Gauge),
	}
}

func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.Registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// register adds c under name unless the name is already taken, in which
// case the existing collector is kept.
func register[C prometheus.Collector](m *Metrics, set map[string]C, name string, c C) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := set[name]; ok {
		return
	}
	m.Registry.MustRegister(c)
	set[name] = c
}

func lookup[C any](m *Metrics, set map[string]C, name string) (C, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := set[name]
	return c, ok
}

func (m *Metrics) RegisterCounter(name, help string) {
	register(m, m.counters, name, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}))
}

func (m *Metrics) RegisterCounterVec(name, help string, labels []string) {
	register(m, m.counterVecs, name, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels))
}

func (m *Metrics) RegisterHistogramVec(name, help string, buckets []float64, labels []string) {
	register(m, m.histogramVecs, name, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels))
}

func (m *Metrics) RegisterGauge(name, help string) {
	register(m, m.gauges, name, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}))
}

func (m *Metrics) IncCounter(name string) {
	m.AddCounter(name, 1)
}

func (m *Metrics) AddCounter(name string, value float64) {
	if counter, ok := lookup(m, m.counters, name); ok {
		counter.Add(value)
	}
}

// IncCounterVec increments the series of labels. A label count that does
// not match the registration is dropped instead of panicking.
func (m *Metrics) IncCounterVec(name string, labels ...string) {
	if vec, ok := lookup(m, m.counterVecs, name); ok {
		if counter, err := vec.GetMetricWithLabelValues(labels...); err == nil {
			counter.Inc()
		}
	}
}

func (m *Metrics) ObserveHistogramVec(name string, value float64, labels ...string) {
	if vec, ok := lookup(m, m.histogramVecs, name); ok {
		if observer, err := vec.GetMetricWithLabelValues(labels...); err == nil {
			observer.Observe(value)
		}
	}
}

// SetCurrentTimeGauge sets the gauge to the current unix time.
func (m *Metrics) SetCurrentTimeGauge(name string) {
	if gauge, ok := lookup(m, m.gauges, name); ok {
		gauge.SetToCurrentTime()
	}
}
