package interfaces

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records the service's counters, histograms and gauges by name.
type Metrics interface {
	GetRegistry() *prometheus.Registry
	Handler() http.Handler

	RegisterCounter(name, help string)
	RegisterCounterVec(name, help string, labels []string)
	RegisterHistogramVec(name, help string, buckets []float64, labels []string)
	RegisterGauge(name, help string)

	IncCounter(name string)
	AddCounter(name string, value float64)
	IncCounterVec(name string, labels ...string)
	ObserveHistogramVec(name string, value float64, labels ...string)
	SetCurrentTimeGauge(name string)
}
