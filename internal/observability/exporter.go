package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/systems"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsProvider источник снимков движка
type StatsProvider interface {
	Stats() systems.Snapshot
}

// MetricsExporter управляет HTTP-эндпоинтом Prometheus и периодически
// переносит снимок движка в Gauge/Counter.
type MetricsExporter struct {
	source   StatsProvider
	gatherer prometheus.Gatherer
	interval time.Duration
	server   *http.Server
	quit     chan struct{}
	done     chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	stopErr   error

	frames    prometheus.Counter
	uploads   prometheus.Counter
	chunks    prometheus.Gauge
	generated prometheus.Gauge
	dirty     prometheus.Gauge
	meshes    prometheus.Gauge
	faces     prometheus.Gauge
	entities  prometheus.Gauge
	resident  prometheus.Gauge
	gpuBytes  prometheus.Gauge

	prev systems.Snapshot
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "voxel", Subsystem: "engine", Name: name, Help: help})
}

// NewMetricsExporter создаёт экспортер, но не запускает HTTP-сервер.
// Метрики регистрируются в reg, /metrics отдаёт gatherer.
func NewMetricsExporter(source StatsProvider, reg prometheus.Registerer, gatherer prometheus.Gatherer) *MetricsExporter {
	me := &MetricsExporter{
		source:   source,
		gatherer: gatherer,
		interval: time.Second,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "engine",
			Name:      "frames_total",
			Help:      "Общее число отработанных кадров.",
		}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "engine",
			Name:      "mesh_uploads_total",
			Help:      "Сеток, загруженных в бэкенд.",
		}),
		chunks:    newGauge("chunks", "Загруженные чанки."),
		generated: newGauge("chunks_generated", "Сгенерированные чанки."),
		dirty:     newGauge("chunks_dirty", "Чанки, ожидающие перестроения сетки."),
		meshes:    newGauge("meshes", "Сетки в кэше."),
		faces:     newGauge("faces", "Граней во всех сетках."),
		entities:  newGauge("entities", "Живые сущности ECS."),
		resident:  newGauge("resident_meshes", "Сетки, загруженные в бэкенд."),
		gpuBytes:  newGauge("resident_bytes", "Объём загруженных буферов."),
	}

	reg.MustRegister(me.frames, me.uploads, me.chunks, me.generated, me.dirty,
		me.meshes, me.faces, me.entities, me.resident, me.gpuBytes)
	return me
}

// SetInterval меняет период обновления (до Start)
func (m *MetricsExporter) SetInterval(d time.Duration) {
	if d > 0 {
		m.interval = d
	}
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер и обновление стартуют в отдельных горутинах.
func (m *MetricsExporter) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	m.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	m.Start()
}

// Start запускает только цикл обновления. Повторный вызов ничего не делает.
func (m *MetricsExporter) Start() {
	m.startOnce.Do(func() {
		m.started.Store(true)
		go m.loop()
	})
}

// Stop останавливает обновление метрик и HTTP-сервер. Без Start
// ожидать нечего, повторный Stop возвращает результат первого.
func (m *MetricsExporter) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.quit)
		if m.started.Load() {
			<-m.done
		}
		if m.server != nil {
			m.stopErr = m.server.Shutdown(ctx)
		}
	})
	return m.stopErr
}

func (m *MetricsExporter) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.quit:
			return
		}
	}
}

// Refresh переносит текущий снимок в метрики. Для Counter хранится
// прошлое значение и прибавляется дельта.
func (m *MetricsExporter) Refresh() {
	snap := m.source.Stats()

	if snap.Frame > m.prev.Frame {
		m.frames.Add(float64(snap.Frame - m.prev.Frame))
	}
	if snap.Render.Uploads > m.prev.Render.Uploads {
		m.uploads.Add(float64(snap.Render.Uploads - m.prev.Render.Uploads))
	}

	m.chunks.Set(float64(snap.Chunks))
	m.generated.Set(float64(snap.Generated))
	m.dirty.Set(float64(snap.Dirty))
	m.meshes.Set(float64(snap.Meshes))
	m.faces.Set(float64(snap.Faces))
	m.entities.Set(float64(snap.Entities))
	m.resident.Set(float64(snap.Render.Resident))
	m.gpuBytes.Set(float64(snap.Render.Bytes))

	m.prev = snap
}
