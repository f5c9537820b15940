package meshing

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects worker pool statistics.
//
//   - voxelmesh_builds_total{result}  result is "ok", "cached" or "error"
//   - voxelmesh_build_quads           quads per completed build
//   - voxelmesh_build_duration_seconds
//   - voxelmesh_queue_length
type Metrics struct {
	builds   *prometheus.CounterVec
	quads    prometheus.Histogram
	duration prometheus.Histogram
	queue    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelmesh",
			Name:      "builds_total",
			Help:      "Chunk mesh builds by result.",
		}, []string{"result"}),
		quads: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxelmesh",
			Name:      "build_quads",
			Help:      "Quads emitted per chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxelmesh",
			Name:      "build_duration_seconds",
			Help:      "Wall time per chunk mesh job.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelmesh",
			Name:      "queue_length",
			Help:      "Mesh jobs waiting for a worker.",
		}),
	}
	reg.MustRegister(m.builds, m.quads, m.duration, m.queue)
	return m
}

func (m *Metrics) observe(res MeshResult) {
	if m == nil {
		return
	}
	switch {
	case res.Error != nil:
		m.builds.WithLabelValues("error").Inc()
		return
	case res.Cached:
		m.builds.WithLabelValues("cached").Inc()
	default:
		m.builds.WithLabelValues("ok").Inc()
	}
	m.duration.Observe(res.Elapsed.Seconds())
	if res.Mesh != nil {
		m.quads.Observe(float64(res.Mesh.QuadCount()))
	}
}

func (m *Metrics) setQueue(n int) {
	if m == nil {
		return
	}
	m.queue.Set(float64(n))
}
