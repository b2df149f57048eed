package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/middleware"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/systems"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// EngineView часть движка, доступная отладочному API
type EngineView interface {
	ID() string
	Stats() systems.Snapshot
	Systems() []scheduler.SystemInfo
	Palette() *block.Palette
	GetBlock(w vec.Vec3) (world.UnpackedBlock, bool)
	SetBlock(w vec.Vec3, p block.Packed) bool
}

// RestServer отладочный REST API движка
type RestServer struct {
	router  *gin.Engine
	engine  EngineView
	port    string
	metrics *ServerMetrics
	server  *http.Server
	logger  *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string                // порт для запуска сервера
	Engine   EngineView            // наблюдаемый движок
	Gatherer prometheus.Gatherer   // источник /metrics
	Registry prometheus.Registerer // куда регистрировать HTTP-метрики
	ReadOnly bool                  // запретить POST /api/blocks
}

// GenericResponse общий конверт ответов
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("voxel_debug_api"))

	promMw := middleware.NewPrometheusMiddleware("voxel_debug_api", config.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, config.Gatherer)

	rs := &RestServer{
		router:  router,
		engine:  config.Engine,
		port:    config.Port,
		metrics: NewServerMetrics(),
		logger:  logging.GetAPILogger(),
	}
	rs.setupRoutes(config.ReadOnly)
	return rs
}

// Handler возвращает http.Handler (используется в тестах)
func (rs *RestServer) Handler() http.Handler { return rs.router }

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes(readOnly bool) {
	rs.router.Use(corsMiddleware())

	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/stats", rs.handleStats)
		api.GET("/chunks", rs.handleChunks)
		api.GET("/systems", rs.handleSystems)
		api.GET("/palette", rs.handlePalette)
		api.GET("/blocks", rs.handleGetBlock)
		if !readOnly {
			api.POST("/blocks", rs.handleSetBlock)
		}
	}
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"engine": rs.engine.ID(),
		"time":   time.Now().Unix(),
	})
}

func (rs *RestServer) handleStats(c *gin.Context) {
	snap := rs.engine.Stats()

	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()
	rssMB, _ := rs.metrics.GetRSS()

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data: gin.H{
			"engine": snap,
			"server": gin.H{
				"uptime":      rs.metrics.GetUptime(),
				"memory_mb":   fmt.Sprintf("%.2f", memoryMB),
				"rss_mb":      fmt.Sprintf("%.2f", rssMB),
				"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
				"server_time": time.Now().Unix(),
			},
			"memory_details": rs.metrics.GetDetailedMemoryStats(),
		},
	})
}

func (rs *RestServer) handleChunks(c *gin.Context) {
	chunks := rs.engine.Stats().ChunkList
	if chunks == nil {
		chunks = []systems.ChunkInfo{}
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: fmt.Sprintf("Загружено чанков: %d", len(chunks)),
		Data:    chunks,
	})
}

type systemView struct {
	Name     string   `json:"name"`
	Event    string   `json:"event"`
	Priority int      `json:"priority"`
	Flush    bool     `json:"flush"`
	Reads    []string `json:"reads,omitempty"`
	Writes   []string `json:"writes,omitempty"`
	Prepared bool     `json:"prepared"`
}

func (rs *RestServer) handleSystems(c *gin.Context) {
	infos := rs.engine.Systems()
	out := make([]systemView, 0, len(infos))
	for _, si := range infos {
		out = append(out, systemView{
			Name:     si.Name,
			Event:    string(si.Event),
			Priority: si.Priority,
			Flush:    si.Flush,
			Reads:    si.Access.Reads,
			Writes:   si.Access.Writes,
			Prepared: si.Prepared,
		})
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Системы", Data: out})
}

func (rs *RestServer) handlePalette(c *gin.Context) {
	p := rs.engine.Palette()
	entries := p.Entries()
	out := make([]gin.H, 0, len(entries))
	for id, e := range entries {
		out = append(out, gin.H{
			"id":      id,
			"text_id": e.TextID,
			"name":    e.Name,
			"shape":   e.Shape.String(),
			"color":   e.Color,
		})
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Палитра " + p.Digest(),
		Data:    out,
	})
}

func (rs *RestServer) handleGetBlock(c *gin.Context) {
	pos, err := parsePos(c.Query("x"), c.Query("y"), c.Query("z"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: err.Error()})
		return
	}
	b, ok := rs.engine.GetBlock(pos)
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{Success: false, Message: "Чанк не загружен"})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок",
		Data: gin.H{
			"pos":     b.Pos(),
			"chunk":   b.ChunkPos(),
			"packed":  uint16(b.Packed()),
			"format":  b.Format().String(),
			"shape":   b.Shape().String(),
			"text_id": b.TextID(),
		},
	})
}

// SetBlockRequest тело POST /api/blocks
type SetBlockRequest struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Z       int    `json:"z"`
	Block   string `json:"block" binding:"required"`
	Variant uint8  `json:"variant"`
}

func (rs *RestServer) handleSetBlock(c *gin.Context) {
	var req SetBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверный формат запроса: " + err.Error()})
		return
	}
	id, ok := rs.engine.Palette().ByTextID(req.Block)
	if !ok {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неизвестный блок " + req.Block})
		return
	}
	if req.Variant > uint8(block.MaxVariant) {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Вариант вне диапазона"})
		return
	}

	pos := vec.Vec3{X: req.X, Y: req.Y, Z: req.Z}
	if !rs.engine.SetBlock(pos, block.Pack(id, block.Variant(req.Variant))) {
		c.JSON(http.StatusNotFound, GenericResponse{Success: false, Message: "Чанк не загружен"})
		return
	}
	rs.logger.Info("Блок %s записан в %+v", req.Block, pos)
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Блок записан"})
}

func parsePos(xs, ys, zs string) (vec.Vec3, error) {
	var out [3]int
	for i, s := range []string{xs, ys, zs} {
		v, err := strconv.Atoi(s)
		if err != nil {
			return vec.Vec3{}, fmt.Errorf("координата %q: %w", s, err)
		}
		out[i] = v
	}
	return vec.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// Start запускает HTTP-сервер и блокируется до его остановки
func (rs *RestServer) Start() error {
	rs.server = &http.Server{Addr: rs.port, Handler: rs.router}
	rs.logger.Info("🌐 Отладочный API слушает %s", rs.port)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop завершает сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.server == nil {
		return nil
	}
	return rs.server.Shutdown(ctx)
}
