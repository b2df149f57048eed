package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ N int }

type marker struct{ Name string }

func TestDriveRecursionTerminates(t *testing.T) {
	s := New(ecs.NewWorld())
	runs := 0
	s.Register(EventUpdate, Func("looper", func(ctx *Context) {
		runs++
		if runs <= 3 {
			ctx.Push(EventUpdate)
		}
	}), Options{})

	s.Push(EventUpdate)
	assert.Equal(t, 4, s.Drive(context.Background()))
	assert.Equal(t, 4, runs)
	assert.Equal(t, 0, s.Drive(context.Background()), "Пустая очередь: ничего не делать")
}

func TestPriorityOrderAndTies(t *testing.T) {
	s := New(ecs.NewWorld())
	var order []string
	record := func(name string) System {
		return Func(name, func(*Context) { order = append(order, name) })
	}
	s.Register(EventRender, record("late"), Options{Priority: 100})
	s.Register(EventRender, record("tie-a"), Options{Priority: 0})
	s.Register(EventRender, record("early"), Options{Priority: -10})
	s.Register(EventRender, record("tie-b"), Options{Priority: 0})

	s.Push(EventRender)
	s.Drive(context.Background())
	assert.Equal(t, []string{"early", "tie-a", "tie-b", "late"}, order)

	infos := s.Systems(EventRender)
	require.Len(t, infos, 4)
	assert.Equal(t, "early", infos[0].Name)
	assert.True(t, infos[0].Prepared)
}

func TestFlushPoints(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)
	var seenByNoFlush, seenByFlush, seenNextEvent int

	s.Register(EventUpdate, Func("spawner", func(ctx *Context) {
		ctx.Commands.Spawn(func(w *ecs.World, id ecs.EntityID) {
			ecs.Insert(w, id, &marker{Name: "spawned"})
		})
	}), Options{Priority: 0})
	s.Register(EventUpdate, Func("no-flush", func(ctx *Context) {
		seenByNoFlush = ecs.Components[marker](ctx.World).Len()
	}), Options{Priority: 1})
	s.Register(EventUpdate, Func("flush", func(ctx *Context) {
		seenByFlush = ecs.Components[marker](ctx.World).Len()
		ctx.Commands.Spawn(nil)
	}), Options{Priority: 2, Flush: true})
	s.Register(EventRender, Func("reader", func(ctx *Context) {
		seenNextEvent = ctx.World.Len()
	}), Options{})

	s.Push(EventUpdate)
	s.Push(EventRender)
	s.Drive(context.Background())

	assert.Equal(t, 0, seenByNoFlush, "Без Flush буфер предыдущей системы ещё не применён")
	assert.Equal(t, 1, seenByFlush, "Flush применяет накопленные буферы")
	assert.Equal(t, 2, seenNextEvent, "Остаток буферов применяется в конце события")
}

type preparing struct {
	prepared int
	runs     int
}

func (p *preparing) Name() string { return "preparing" }
func (p *preparing) Run(ctx *Context) {
	p.runs++
	c := ecs.MustResource[counter](ctx.World)
	c.N++
}
func (p *preparing) Prepare(w *ecs.World) {
	p.prepared++
	ecs.SetResource(w, &counter{})
}

func TestPrepareRunsOnce(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)
	sys := &preparing{}
	s.Register(EventPoll, sys, Options{})

	for i := 0; i < 3; i++ {
		s.Push(EventPoll)
	}
	s.Drive(context.Background())
	s.Push(EventPoll)
	s.Drive(context.Background())

	assert.Equal(t, 1, sys.prepared)
	assert.Equal(t, 4, sys.runs)
	assert.Equal(t, 4, ecs.MustResource[counter](w).N)
}

func TestPrepareRunsBeforeFirstDispatch(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)

	var seen []bool
	s.Register(EventUpdate, Func("early", func(ctx *Context) {
		_, ok := ecs.GetResource[counter](ctx.World)
		seen = append(seen, ok)
	}), Options{Priority: -10})
	s.Register(EventUpdate, &preparing{}, Options{Priority: 10})

	s.Push(EventUpdate)
	s.Drive(context.Background())

	require.Len(t, seen, 1)
	assert.True(t, seen[0], "ресурс из Prepare поздней системы виден ранней уже в первом событии")
}

func TestDeferredDestructionAtFlushPoint(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)
	id := w.CreateEntity()

	var aliveInside, aliveAfterFlush bool
	s.Register(EventUpdate, Func("mark", func(ctx *Context) {
		ctx.Commands.Push(func(w *ecs.World) { w.MarkForDestruction(id) })
	}), Options{Priority: 0})
	s.Register(EventUpdate, Func("same-batch", func(ctx *Context) {
		aliveInside = ctx.World.Alive(id)
	}), Options{Priority: 1})
	s.Register(EventUpdate, Func("after-flush", func(ctx *Context) {
		aliveAfterFlush = ctx.World.Alive(id)
	}), Options{Priority: 2, Flush: true})

	s.Push(EventUpdate)
	s.Drive(context.Background())

	assert.True(t, aliveInside, "До точки сброса сущность жива")
	assert.False(t, aliveAfterFlush)
	assert.False(t, w.Alive(id))
}

func TestEventsAreFIFOAcrossGenerations(t *testing.T) {
	s := New(ecs.NewWorld())
	var seen []Event
	for _, e := range []Event{EventStart, EventCreated, EventReady, EventQuit} {
		e := e
		s.Register(e, Func(string(e), func(ctx *Context) {
			seen = append(seen, ctx.Event)
			if ctx.Event == EventStart {
				ctx.Push(EventQuit)
			}
		}), Options{})
	}

	s.Push(EventStart)
	s.Push(EventCreated)
	s.Push(EventReady)
	assert.Equal(t, 4, s.Drive(context.Background()))
	assert.Equal(t, []Event{EventStart, EventCreated, EventReady, EventQuit}, seen)
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(EventPoll)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Len())
	assert.Len(t, q.Swap(), 800)
	assert.Equal(t, 0, q.Len())
}

func TestRunawayGenerationsPanic(t *testing.T) {
	s := New(ecs.NewWorld())
	s.SetMaxGenerations(5)
	s.Register(EventUpdate, Func("forever", func(ctx *Context) { ctx.Push(EventUpdate) }), Options{})
	s.Push(EventUpdate)
	assert.Panics(t, func() { s.Drive(context.Background()) })
}

func TestSchedulerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	s := New(ecs.NewWorld()).WithMetrics(m)
	s.Register(EventUpdate, Func("noop", func(*Context) {}), Options{})

	s.Push(EventUpdate)
	s.Push(EventUpdate)
	s.Drive(context.Background())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("UPDATE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.systemSeconds))
}

func TestEventsLists(t *testing.T) {
	s := New(ecs.NewWorld())
	s.Register(EventUpdate, Func("a", func(*Context) {}), Options{})
	s.Register(EventPoll, Func("b", func(*Context) {}), Options{})
	assert.Equal(t, []Event{EventPoll, EventUpdate}, s.Events())
}
