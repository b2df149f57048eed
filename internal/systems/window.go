package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
)

// WindowSystem применяет изменения размера на RESIZED и закрывает окно на QUIT
type WindowSystem struct{}

func (WindowSystem) Name() string { return "window" }

func (WindowSystem) Prepare(w *ecs.World) {
	if _, ok := ecs.GetResource[WindowState](w); !ok {
		ecs.SetResource(w, &WindowState{Open: true})
	}
}

func (WindowSystem) Run(ctx *scheduler.Context) {
	ws := ecs.MustResource[WindowState](ctx.World)
	switch ctx.Event {
	case scheduler.EventResized:
		if ws.PendingWidth <= 0 || ws.PendingHeight <= 0 {
			return
		}
		ws.Width, ws.Height = ws.PendingWidth, ws.PendingHeight
		ws.PendingWidth, ws.PendingHeight = 0, 0
		ws.Resizes++
		logging.GetEngineLogger().Debug("Окно: %dx%d", ws.Width, ws.Height)
	case scheduler.EventQuit:
		ws.Open = false
	}
}

func (WindowSystem) Options() scheduler.Options {
	return scheduler.Options{Access: ecs.Write[WindowState](ecs.Access{})}
}
