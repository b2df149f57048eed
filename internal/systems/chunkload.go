package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// ChunkLoadSystem загружает чанки вокруг центра и выгружает дальние.
// Новые чанки получают сущность с тегом ungenerated через буфер команд.
type ChunkLoadSystem struct{}

func (ChunkLoadSystem) Name() string { return "chunk-load" }

func (ChunkLoadSystem) Run(ctx *scheduler.Context) {
	terrain, ok := ecs.GetResource[Terrain](ctx.World)
	if !ok {
		return
	}
	center, ok := ecs.GetResource[LoadCenter](ctx.World)
	if !ok {
		return
	}

	origin := center.Corner()
	loaded := 0
	for dy := -center.Vertical; dy <= center.Vertical; dy++ {
		for dz := -center.Radius; dz <= center.Radius; dz++ {
			for dx := -center.Radius; dx <= center.Radius; dx++ {
				corner := origin.Add(vec.Vec3{X: dx, Y: dy, Z: dz}.Scale(world.ChunkSize))
				c, created := terrain.Cache.Load(corner)
				if !created {
					continue
				}
				loaded++
				ctx.Commands.Spawn(func(w *ecs.World, id ecs.EntityID) {
					ecs.Insert(w, id, &ChunkRef{Chunk: c})
					w.AddTag(id, TagUngenerated)
					terrain.Entities[c.Pos()] = id
				})
			}
		}
	}

	unloaded := 0
	for _, corner := range terrain.Cache.Corners() {
		if inRange(origin, corner, center.Radius+1, center.Vertical+1) {
			continue
		}
		unloaded++
		corner := corner
		ctx.Commands.Push(func(w *ecs.World) { unloadChunk(w, terrain, corner) })
	}

	if loaded > 0 || unloaded > 0 {
		logging.GetWorldLogger().Debug("Чанки: загружено %d, выгружается %d, всего %d", loaded, unloaded, terrain.Cache.Len())
	}
}

func (ChunkLoadSystem) Options() scheduler.Options {
	a := ecs.Read[LoadCenter](ecs.Access{})
	a = ecs.Write[Terrain](a)
	return scheduler.Options{Priority: -10, Access: a}
}

// inRange сравнивает расстояние в чанках по каждой оси
func inRange(origin, corner vec.Vec3, radius, vertical int) bool {
	d := corner.Sub(origin)
	return abs(d.X) <= radius*world.ChunkSize && abs(d.Z) <= radius*world.ChunkSize && abs(d.Y) <= vertical*world.ChunkSize
}

// unloadChunk выгружает чанк. Оставшиеся соседи помечаются dirty:
// их граничные грани были отсечены этим чанком.
func unloadChunk(w *ecs.World, terrain *Terrain, corner vec.Vec3) {
	for _, f := range block.Faces {
		if n, ok := terrain.Cache.Neighbor(corner, f); ok {
			n.MarkDirty()
		}
	}
	terrain.Cache.Drop(corner)
	if meshes, ok := ecs.GetResource[Meshes](w); ok {
		meshes.Cache.Delete(corner)
	}
	if r, ok := ecs.GetResource[Renderer](w); ok {
		r.Backend.Release(corner)
	}
	if id, ok := terrain.Entities[corner]; ok {
		w.MarkForDestruction(id)
		delete(terrain.Entities, corner)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
