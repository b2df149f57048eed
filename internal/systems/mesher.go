package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/vec"
)

// MesherSystem перестраивает сетки dirty-чанков и прикрепляет
// компонент MeshRef через буфер команд.
type MesherSystem struct{}

func (MesherSystem) Name() string { return "mesher" }

func (MesherSystem) Run(ctx *scheduler.Context) {
	terrain, ok := ecs.GetResource[Terrain](ctx.World)
	if !ok {
		return
	}
	meshes, ok := ecs.GetResource[Meshes](ctx.World)
	if !ok || meshes.Mesher == nil {
		return
	}

	built := 0
	ecs.Components[ChunkRef](ctx.World).Each(func(id ecs.EntityID, ref *ChunkRef) {
		m, _, processed := meshes.Mesher.Process(ref.Chunk, terrain.Cache, meshes.Cache)
		if !processed {
			return
		}
		built++
		if m != nil {
			ecs.InsertCmd(ctx.Commands, id, &MeshRef{Mesh: m})
			ctx.Commands.AddTag(id, TagMeshed)
			return
		}
		if _, had := ecs.Get[MeshRef](ctx.World, id); had {
			corner := ref.Chunk.Pos()
			ecs.RemoveCmd[MeshRef](ctx.Commands, id)
			ctx.Commands.RemoveTag(id, TagMeshed)
			ctx.Commands.Push(func(w *ecs.World) { releaseMesh(w, corner) })
		}
	})

	if built > 0 {
		logging.GetMeshLogger().Debug("Перестроено сеток: %d, опубликовано всего %d", built, meshes.Cache.Len())
	}
}

func (MesherSystem) Options() scheduler.Options {
	a := ecs.Read[Terrain](ecs.Access{})
	a = ecs.Write[Meshes](a)
	return scheduler.Options{Priority: -10, Flush: true, Access: a}
}

func releaseMesh(w *ecs.World, corner vec.Vec3) {
	if r, ok := ecs.GetResource[Renderer](w); ok {
		r.Backend.Release(corner)
	}
}
