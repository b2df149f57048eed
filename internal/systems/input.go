package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
)

// InputSystem фиксирует входные события кадра: перемещения двигают
// центр загрузки, установки блоков пишутся в мир через кеш.
type InputSystem struct{}

func (InputSystem) Name() string { return "input" }

func (InputSystem) Prepare(w *ecs.World) {
	if _, ok := ecs.GetResource[InputQueue](w); !ok {
		ecs.SetResource(w, &InputQueue{})
	}
	if _, ok := ecs.GetResource[InputState](w); !ok {
		ecs.SetResource(w, &InputState{})
	}
}

func (InputSystem) Run(ctx *scheduler.Context) {
	queue := ecs.MustResource[InputQueue](ctx.World)
	state := ecs.MustResource[InputState](ctx.World)
	state.Frame = queue.drain()
	state.Total += len(state.Frame)
	if len(state.Frame) == 0 {
		return
	}

	center, hasCenter := ecs.GetResource[LoadCenter](ctx.World)
	terrain, hasTerrain := ecs.GetResource[Terrain](ctx.World)
	for _, ev := range state.Frame {
		switch ev.Kind {
		case InputMove:
			if hasCenter {
				center.Pos = ev.Pos
			}
		case InputPlace:
			if !hasTerrain {
				continue
			}
			if _, loaded := terrain.Cache.SetBlock(ev.Pos, ev.Block); !loaded {
				logging.GetWorldLogger().Debug("Запись блока %+v в незагруженный чанк пропущена", ev.Pos)
			}
		}
	}
}

func (InputSystem) Options() scheduler.Options {
	a := ecs.Write[InputState](ecs.Access{})
	a = ecs.Write[LoadCenter](a)
	a = ecs.Write[Terrain](a)
	return scheduler.Options{Priority: 0, Access: a}
}
