package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/scheduler"
)

// TimeSystem продвигает часы кадра на POLL
type TimeSystem struct{}

func (TimeSystem) Name() string { return "time" }

func (TimeSystem) Prepare(w *ecs.World) {
	if _, ok := ecs.GetResource[Clock](w); !ok {
		ecs.SetResource(w, &Clock{})
	}
}

func (TimeSystem) Run(ctx *scheduler.Context) {
	c := ecs.MustResource[Clock](ctx.World)
	c.Delta = c.Next
	c.Next = 0
	c.Elapsed += c.Delta
	c.Frame++
}

func (TimeSystem) Options() scheduler.Options {
	return scheduler.Options{Priority: -100, Access: ecs.Write[Clock](ecs.Access{})}
}
