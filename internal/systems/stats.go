package systems

import (
	"strconv"

	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/render"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/world"
)

// statsSource реализуют бэкенды, умеющие отдавать счётчики
type statsSource interface {
	Stats() render.Stats
}

// StatsSystem публикует снимок состояния в StatsBoard
type StatsSystem struct {
	// WithChunks включает список чанков в снимок
	WithChunks bool
}

func (StatsSystem) Name() string { return "stats" }

func (StatsSystem) Prepare(w *ecs.World) {
	if _, ok := ecs.GetResource[StatsBoard](w); !ok {
		ecs.SetResource(w, &StatsBoard{})
	}
}

func (s StatsSystem) Run(ctx *scheduler.Context) {
	snap := Collect(ctx.World, s.WithChunks)
	ecs.MustResource[StatsBoard](ctx.World).Publish(snap)
}

func (StatsSystem) Options() scheduler.Options {
	a := ecs.Read[Terrain](ecs.Access{})
	a = ecs.Read[Meshes](a)
	a = ecs.Write[StatsBoard](a)
	return scheduler.Options{Priority: 100, Access: a}
}

// Collect собирает снимок из ресурсов мира
func Collect(w *ecs.World, withChunks bool) Snapshot {
	snap := Snapshot{Entities: w.Len()}
	if c, ok := ecs.GetResource[Clock](w); ok {
		snap.Frame, snap.Elapsed = c.Frame, c.Elapsed
	}
	if ws, ok := ecs.GetResource[WindowState](w); ok {
		snap.WindowOpen, snap.Width, snap.Height = ws.Open, ws.Width, ws.Height
	}
	if lc, ok := ecs.GetResource[LoadCenter](w); ok {
		snap.LoadCenter = lc.Pos
	}

	var meshes *Meshes
	if m, ok := ecs.GetResource[Meshes](w); ok {
		meshes = m
		snap.Meshes = m.Cache.Len()
		snap.Faces = m.Cache.TotalFaces()
	}
	if r, ok := ecs.GetResource[Renderer](w); ok {
		if src, ok := r.Backend.(statsSource); ok {
			snap.Render = src.Stats()
		}
	}

	terrain, ok := ecs.GetResource[Terrain](w)
	if !ok {
		return snap
	}
	snap.Chunks = terrain.Cache.Len()
	snap.PaletteHash = terrain.Palette.Digest()
	terrain.Cache.Each(func(c *world.Chunk) bool {
		if c.IsGenerated() {
			snap.Generated++
		}
		if c.IsDirty() {
			snap.Dirty++
		}
		if withChunks {
			info := ChunkInfo{
				Pos:       c.Pos(),
				Generated: c.IsGenerated(),
				Dirty:     c.IsDirty(),
				Blocks:    c.NonEmptyCount(),
				Digest:    strconv.FormatUint(c.Digest(), 16),
			}
			if meshes != nil {
				if m, ok := meshes.Cache.Get(c.Pos()); ok {
					info.Faces = m.FaceCount()
				}
			}
			snap.ChunkList = append(snap.ChunkList, info)
		}
		return true
	})
	return snap
}
