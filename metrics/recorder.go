// Package metrics records store operations as Prometheus metrics and writes
// them to a node-exporter textfile.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/cookbook/storage"
)

const namespace = "cookbook"

// Recorder implements storage.Observer with Prometheus collectors held in
// its own registry.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ storage.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by collection, operation and result.",
		}, []string{"collection", "operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"collection", "operation"}),
	}
	r.registry.MustRegister(r.operations, r.duration)
	return r
}

// ObserveOperation records one store operation.
func (r *Recorder) ObserveOperation(collection, operation string, elapsed time.Duration, err error) {
	r.operations.WithLabelValues(collection, operation, result(err)).Inc()
	r.duration.WithLabelValues(collection, operation).Observe(elapsed.Seconds())
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, storage.ErrMalformedDocument):
		return "malformed"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
