package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

type Metrics struct {
	operations *prometheus.CounterVec
	collection prometheus.Gauge
}

// NewMetrics registers the admin collectors with reg. A nil reg gives
// working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_admin_operations_total",
			Help: "Remote catalog operations by outcome.",
		}, []string{"operation", "outcome"}),
		collection: factory.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_admin_products",
			Help: "Number of products in the local collection.",
		}),
	}
}

func (m *Metrics) observe(operation string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) setCollectionSize(n int) {
	m.collection.Set(float64(n))
}
