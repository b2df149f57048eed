package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxGenerations предел поколений одного Drive. Превышение означает,
// что системы бесконечно порождают события друг для друга.
const DefaultMaxGenerations = 10000

type entry struct {
	system   System
	opts     Options
	seq      int
	prepared bool
}

// Scheduler вызывает системы по событиям в порядке приоритета.
// Исполнение однопоточное: системы работают до завершения по очереди.
type Scheduler struct {
	world  *ecs.World
	queue  *Queue
	groups map[Event][]*entry
	seq    int

	maxGenerations int
	metrics        *Metrics
	tracer         trace.Tracer
	logger         *logging.Logger
}

// New создаёт планировщик для мира w
func New(w *ecs.World) *Scheduler {
	return &Scheduler{
		world:          w,
		queue:          NewQueue(),
		groups:         make(map[Event][]*entry),
		maxGenerations: DefaultMaxGenerations,
		tracer:         otel.Tracer("voxelcore/scheduler"),
		logger:         logging.GetSchedulerLogger(),
	}
}

// WithMetrics подключает метрики Prometheus
func (s *Scheduler) WithMetrics(m *Metrics) *Scheduler {
	s.metrics = m
	return s
}

// WithTracer заменяет трассировщик
func (s *Scheduler) WithTracer(t trace.Tracer) *Scheduler {
	s.tracer = t
	return s
}

// SetMaxGenerations меняет предел поколений (<=0: без ограничения)
func (s *Scheduler) SetMaxGenerations(n int) { s.maxGenerations = n }

// World возвращает мир ECS
func (s *Scheduler) World() *ecs.World { return s.world }

// Queue возвращает очередь событий
func (s *Scheduler) Queue() *Queue { return s.queue }

// Register привязывает систему к событию. Системы с равным приоритетом
// выполняются в порядке регистрации.
func (s *Scheduler) Register(e Event, sys System, opts Options) {
	s.seq++
	group := append(s.groups[e], &entry{system: sys, opts: opts, seq: s.seq})
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].opts.Priority < group[j].opts.Priority
	})
	s.groups[e] = group

	for _, other := range group {
		if other.seq != s.seq && other.opts.Access.Conflicts(opts.Access) {
			s.logger.Trace("Системы %s и %s на %s конфликтуют по ресурсам", other.system.Name(), sys.Name(), e)
		}
	}
}

// Push ставит событие в очередь (безопасно из любой горутины)
func (s *Scheduler) Push(e Event) {
	s.queue.Push(e)
}

// Systems возвращает системы события в порядке исполнения
func (s *Scheduler) Systems(e Event) []SystemInfo {
	group := s.groups[e]
	out := make([]SystemInfo, 0, len(group))
	for _, en := range group {
		out = append(out, SystemInfo{
			Name:     en.system.Name(),
			Event:    e,
			Priority: en.opts.Priority,
			Flush:    en.opts.Flush,
			Access:   en.opts.Access,
			Prepared: en.prepared,
		})
	}
	return out
}

// Events возвращает события, у которых есть системы
func (s *Scheduler) Events() []Event {
	out := make([]Event, 0, len(s.groups))
	for e := range s.groups {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Drive обрабатывает очередь, пока она не опустеет: забирает накопленные
// события, диспетчеризует их по порядку, затем повторяет для событий,
// поставленных во время обработки. Возвращает число диспетчеризаций.
func (s *Scheduler) Drive(ctx context.Context) int {
	dispatched := 0
	generations := 0
	for {
		events := s.queue.Swap()
		if len(events) == 0 {
			break
		}
		generations++
		if s.maxGenerations > 0 && generations > s.maxGenerations {
			panic(fmt.Sprintf("scheduler: event generations exceeded %d (last batch %v)", s.maxGenerations, events))
		}
		for _, e := range events {
			s.dispatch(ctx, e)
			dispatched++
		}
	}
	if s.metrics != nil {
		s.metrics.generations.Set(float64(generations))
	}
	return dispatched
}

// dispatch выполняет группу одного события. Все ещё не подготовленные
// системы группы готовятся до запуска первой. Буферы команд накапливаются
// и применяются перед системой с Flush и в конце события, вместе с ними
// очищается очередь отложенного уничтожения.
func (s *Scheduler) dispatch(ctx context.Context, e Event) {
	ctx, span := s.tracer.Start(ctx, "dispatch "+string(e), trace.WithAttributes(
		attribute.String("voxel.event", string(e)),
	))
	defer span.End()

	if s.metrics != nil {
		s.metrics.dispatches.WithLabelValues(string(e)).Inc()
	}

	var pending []*ecs.CommandBuffer
	flush := func() {
		for _, cb := range pending {
			cb.Apply(s.world)
		}
		pending = pending[:0]
		s.world.FlushDestroyQueue()
	}

	group := s.groups[e]
	for _, en := range group {
		if !en.prepared {
			if p, ok := en.system.(Preparer); ok {
				p.Prepare(s.world)
			}
			en.prepared = true
		}
	}

	for _, en := range group {
		if en.opts.Flush {
			flush()
		}

		cb := ecs.NewCommandBuffer()
		s.run(ctx, e, en, cb)
		if cb.Len() > 0 {
			pending = append(pending, cb)
		}
	}
	flush()
}

func (s *Scheduler) run(ctx context.Context, e Event, en *entry, cb *ecs.CommandBuffer) {
	name := en.system.Name()
	sctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("voxel.event", string(e)),
		attribute.Int("voxel.priority", en.opts.Priority),
	))
	defer span.End()

	start := time.Now()
	en.system.Run(&Context{
		Context:  sctx,
		World:    s.world,
		Commands: cb,
		Event:    e,
		queue:    s.queue,
	})
	if s.metrics != nil {
		s.metrics.systemSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}
