package scheduler

import "github.com/prometheus/client_golang/prometheus"

// Metrics Prometheus-метрики планировщика
type Metrics struct {
	dispatches    *prometheus.CounterVec
	systemSeconds *prometheus.HistogramVec
	generations   prometheus.Gauge
}

// NewMetrics создаёт и регистрирует метрики в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "scheduler",
			Name:      "dispatches_total",
			Help:      "Число диспетчеризаций событий.",
		}, []string{"event"}),
		systemSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voxel",
			Subsystem: "scheduler",
			Name:      "system_seconds",
			Help:      "Длительность одного запуска системы.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
		}, []string{"system"}),
		generations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Subsystem: "scheduler",
			Name:      "generations",
			Help:      "Поколения событий в последнем вызове Drive.",
		}),
	}
	reg.MustRegister(m.dispatches, m.systemSeconds, m.generations)
	return m
}
