package mesh

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus-метрики построителя сеток
type Metrics struct {
	meshes       prometheus.Counter
	faces        *prometheus.CounterVec
	buildSeconds prometheus.Histogram
}

// NewMetrics создаёт и регистрирует метрики в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		meshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "meshes_total",
			Help:      "Число построенных сеток чанков.",
		}),
		faces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "faces_total",
			Help:      "Грани, построенные и отсечённые при построении сеток.",
		}, []string{"result"}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "build_seconds",
			Help:      "Время построения сетки одного чанка.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	reg.MustRegister(m.meshes, m.faces, m.buildSeconds)
	return m
}

func (m *Metrics) observe(s Stats, d time.Duration) {
	m.meshes.Inc()
	m.faces.WithLabelValues("emitted").Add(float64(s.Emitted))
	m.faces.WithLabelValues("culled").Add(float64(s.Culled))
	m.buildSeconds.Observe(d.Seconds())
}
