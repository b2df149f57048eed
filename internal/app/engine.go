package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/render"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/systems"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrStopped возвращается при работе с остановленным движком
var ErrStopped = errors.New("engine stopped")

// Engine связывает мир ECS, кеш чанков, планировщик и системы.
// Frame, SetBlock и Stop сериализуются мьютексом; Stats безопасен из любых горутин.
type Engine struct {
	id       string
	cfg      *config.Config
	world    *ecs.World
	sched    *scheduler.Scheduler
	backend  render.Backend
	palette  *block.Palette
	registry *prometheus.Registry
	logger   *logging.Logger

	mu      sync.Mutex
	started bool
	stopped bool
}

// Option настраивает движок при создании
type Option func(*options)

type options struct {
	palette  *block.Palette
	registry *prometheus.Registry
}

// WithPalette задаёт палитру вместо файла из конфигурации
func WithPalette(p *block.Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithRegistry задаёт реестр метрик (по умолчанию создаётся собственный)
func WithRegistry(r *prometheus.Registry) Option {
	return func(o *options) { o.registry = r }
}

// New создаёт движок. backend == nil означает безголовый режим.
func New(cfg *config.Config, backend render.Backend, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	if backend == nil {
		backend = render.NewHeadless()
	}

	palette := o.palette
	if palette == nil {
		if cfg.World.PalettePath != "" {
			p, err := block.LoadPalette(cfg.World.PalettePath)
			if err != nil {
				return nil, fmt.Errorf("load palette: %w", err)
			}
			palette = p
		} else {
			palette = block.DefaultPalette()
		}
	}

	genCfg := world.DefaultGeneratorConfig()
	genCfg.Seed = cfg.Generator.Seed
	genCfg.SeaLevel = cfg.Generator.SeaLevel
	genCfg.Delta = cfg.Generator.Delta
	genCfg.Scale = cfg.Generator.Scale
	genCfg.Workers = cfg.Generator.Workers
	genCfg.SurfaceBlock = terrainBlock(palette, "grass", block.SurfaceBlockID)
	genCfg.InteriorBlock = terrainBlock(palette, "stone", block.InteriorBlockID)

	w := ecs.NewWorld()
	ecs.SetResource(w, systems.NewTerrain(palette, world.NewGenerator(genCfg)))
	ecs.SetResource(w, &systems.Meshes{
		Cache:  mesh.NewCache(),
		Mesher: mesh.NewMesher(palette).WithMetrics(mesh.NewMetrics(o.registry)),
	})
	ecs.SetResource(w, &systems.Renderer{Backend: backend})
	ecs.SetResource(w, &systems.LoadCenter{Radius: cfg.World.LoadRadius, Vertical: cfg.World.VerticalRadius})
	ecs.SetResource(w, &systems.Clock{})
	ecs.SetResource(w, &systems.InputQueue{})
	ecs.SetResource(w, &systems.InputState{})
	ecs.SetResource(w, &systems.WindowState{Open: true})
	ecs.SetResource(w, &systems.StatsBoard{})

	sched := scheduler.New(w).WithMetrics(scheduler.NewMetrics(o.registry))
	gen := systems.NewGeneratorSystem(0, o.registry)
	systems.RegisterAll(sched, systems.Defaults(gen, systems.StatsSystem{WithChunks: true}))

	e := &Engine{
		id:       uuid.NewString(),
		cfg:      cfg,
		world:    w,
		sched:    sched,
		backend:  backend,
		palette:  palette,
		registry: o.registry,
		logger:   logging.GetEngineLogger(),
	}
	e.logger.Info("Движок %s создан: seed=%d, радиус=%d, палитра=%d типов (%s)",
		e.id, cfg.Generator.Seed, cfg.World.LoadRadius, palette.Len(), palette.Digest()[:12])
	return e, nil
}

// terrainBlock ищет тип по текстовому id, иначе берёт встроенный индекс
func terrainBlock(p *block.Palette, textID string, fallback block.TypeID) block.TypeID {
	if id, ok := p.ByTextID(textID); ok {
		return id
	}
	if int(fallback) < p.Len() {
		return fallback
	}
	return block.AirBlockID
}

// ID идентификатор экземпляра движка
func (e *Engine) ID() string { return e.id }

// Registry реестр метрик движка
func (e *Engine) Registry() *prometheus.Registry { return e.registry }

// Palette палитра мира
func (e *Engine) Palette() *block.Palette { return e.palette }

// Scheduler планировщик движка
func (e *Engine) Scheduler() *scheduler.Scheduler { return e.sched }

// Start проводит события запуска START, CREATED и READY
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return nil
	}
	e.sched.Push(scheduler.EventStart)
	e.sched.Push(scheduler.EventCreated)
	e.sched.Push(scheduler.EventReady)
	e.sched.Drive(ctx)
	e.started = true
	e.logger.Info("Движок %s запущен", e.id)
	return nil
}

// Frame проводит один кадр: POLL, UPDATE, RENDER и всё, что они породили.
// Возвращает число диспетчеризованных событий.
func (e *Engine) Frame(ctx context.Context, dt time.Duration) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrStopped
	}
	if !e.started {
		return 0, errors.New("engine not started")
	}

	ecs.MustResource[systems.Clock](e.world).Next = dt
	e.sched.Push(scheduler.EventPoll)
	e.sched.Push(scheduler.EventUpdate)
	e.sched.Push(scheduler.EventRender)
	return e.sched.Drive(ctx), nil
}

// SetBlock записывает ячейку по мировой позиции. Чанк и его сосед
// для граничной ячейки помечаются dirty, сетки обновятся в следующем кадре.
// Возвращает false, если чанк не загружен.
func (e *Engine) SetBlock(w vec.Vec3, p block.Packed) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	terrain := ecs.MustResource[systems.Terrain](e.world)
	_, loaded := terrain.Cache.SetBlock(w, p)
	return loaded
}

// GetBlock читает ячейку по мировой позиции
func (e *Engine) GetBlock(w vec.Vec3) (world.UnpackedBlock, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	terrain := ecs.MustResource[systems.Terrain](e.world)
	c, ok := terrain.Cache.At(w)
	if !ok {
		return world.UnpackedBlock{}, false
	}
	return c.GetUnpacked(world.RelativePos(w), terrain.Palette), true
}

// MoveTo переносит центр загрузки; применяется на следующем POLL
func (e *Engine) MoveTo(pos vec.Vec3) {
	ecs.MustResource[systems.InputQueue](e.world).Submit(systems.InputEvent{Kind: systems.InputMove, Pos: pos})
}

// Resize запоминает новый размер окна и ставит событие RESIZED
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ws := ecs.MustResource[systems.WindowState](e.world)
	ws.PendingWidth, ws.PendingHeight = width, height
	e.sched.Push(scheduler.EventResized)
}

// Stats последний опубликованный снимок
func (e *Engine) Stats() systems.Snapshot {
	return ecs.MustResource[systems.StatsBoard](e.world).Latest()
}

// Systems описание систем по событиям
func (e *Engine) Systems() []scheduler.SystemInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []scheduler.SystemInfo
	for _, ev := range e.sched.Events() {
		out = append(out, e.sched.Systems(ev)...)
	}
	return out
}

// Run крутит кадры с периодом TickRate, пока не отменён ctx, не закрыто окно
// или не исчерпан MaxFrames.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Start(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(e.cfg.Engine.TickRate)
	defer ticker.Stop()

	last := time.Now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := e.Frame(ctx, now.Sub(last)); err != nil {
				return err
			}
			last = now
			frames++
			if e.cfg.Engine.MaxFrames > 0 && frames >= e.cfg.Engine.MaxFrames {
				return nil
			}
			if !e.Stats().WindowOpen {
				return nil
			}
		}
	}
}

// Stop проводит QUIT и освобождает все загруженные буферы
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil
	}
	e.sched.Push(scheduler.EventQuit)
	e.sched.Drive(ctx)

	meshes := ecs.MustResource[systems.Meshes](e.world)
	for _, corner := range meshes.Cache.Corners() {
		e.backend.Release(corner)
		meshes.Cache.Delete(corner)
	}
	e.stopped = true
	e.logger.Info("Движок %s остановлен", e.id)
	return nil
}
