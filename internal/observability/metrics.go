package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	TaskOperations  *prometheus.CounterVec
	StorageFaults   *prometheus.CounterVec
	TasksPersisted  prometheus.Gauge
	OperationTiming prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TaskOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_operations_total",
			Help:      "Task API operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		StorageFaults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_faults_total",
			Help:      "Swallowed storage faults by operation and kind.",
		}, []string{"op", "kind"}),
		TasksPersisted: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_persisted",
			Help:      "Number of tasks in the last persisted collection.",
		}),
		OperationTiming: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_operation_duration_ms",
			Help:      "Task API operation duration in milliseconds, including simulated latency.",
			Buckets:   []float64{1, 5, 25, 50, 100, 200, 400, 800},
		}),
	}
}

func (m *Metrics) ObserveOperation(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.TaskOperations.WithLabelValues(op, outcome).Inc()
	m.OperationTiming.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveStorageFault(op, kind string) {
	if m == nil {
		return
	}
	m.StorageFaults.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) SetTasksPersisted(n int) {
	if m == nil {
		return
	}
	m.TasksPersisted.Set(float64(n))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
