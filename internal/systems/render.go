package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
)

// RenderSystem загружает новые сетки в бэкенд и рисует все загруженные.
// При ошибке загрузки устаревшие буферы чанка освобождаются, а та же сетка
// загружается повторно в следующих кадрах без перестроения.
type RenderSystem struct{}

func (RenderSystem) Name() string { return "render" }

func (RenderSystem) Run(ctx *scheduler.Context) {
	r, ok := ecs.GetResource[Renderer](ctx.World)
	if !ok || r.Backend == nil {
		return
	}
	if ws, ok := ecs.GetResource[WindowState](ctx.World); ok && !ws.Open {
		return
	}

	ecs.Each2(ecs.Components[ChunkRef](ctx.World), ecs.Components[MeshRef](ctx.World),
		func(id ecs.EntityID, ref *ChunkRef, mr *MeshRef) {
			corner := ref.Chunk.Pos()
			if !mr.Uploaded {
				if err := r.Backend.Upload(corner, mr.Mesh); err != nil {
					if mr.Failures == 0 {
						logging.GetEngineLogger().Warn("Загрузка сетки чанка %+v: %v", corner, err)
						r.Backend.Release(corner)
					}
					mr.Failures++
					return
				}
				mr.Uploaded = true
			}
			r.Backend.Draw(corner, mr.Mesh)
		})
}

func (RenderSystem) Options() scheduler.Options {
	a := ecs.Read[Meshes](ecs.Access{})
	a = ecs.Write[Renderer](a)
	return scheduler.Options{Priority: 0, Flush: true, Access: a}
}
