package systems

import (
	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
)

// GeneratorSystem заполняет чанки с тегом ungenerated. После генерации
// соседние сгенерированные чанки помечаются dirty: их граничные грани
// строились без этого соседа.
type GeneratorSystem struct {
	// PerFrame ограничивает число чанков за кадр (0: без ограничения)
	PerFrame int

	chunks prometheus.Counter
}

// NewGeneratorSystem создаёт систему; reg может быть nil
func NewGeneratorSystem(perFrame int, reg prometheus.Registerer) *GeneratorSystem {
	g := &GeneratorSystem{PerFrame: perFrame}
	if reg != nil {
		g.chunks = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "generator",
			Name:      "chunks_total",
			Help:      "Число сгенерированных чанков.",
		})
		reg.MustRegister(g.chunks)
	}
	return g
}

func (g *GeneratorSystem) Name() string { return "generator" }

func (g *GeneratorSystem) Run(ctx *scheduler.Context) {
	terrain, ok := ecs.GetResource[Terrain](ctx.World)
	if !ok || terrain.Generator == nil {
		return
	}

	done := 0
	for _, id := range ctx.World.Tagged(TagUngenerated) {
		if g.PerFrame > 0 && done >= g.PerFrame {
			break
		}
		ref, ok := ecs.Get[ChunkRef](ctx.World, id)
		if !ok {
			continue
		}
		if terrain.Generator.Generate(ref.Chunk) {
			done++
			for _, f := range block.Faces {
				if n, ok := terrain.Cache.Neighbor(ref.Chunk.Pos(), f); ok && n.IsGenerated() {
					n.MarkDirty()
				}
			}
		}
		ctx.Commands.RemoveTag(id, TagUngenerated)
	}

	if done > 0 {
		if g.chunks != nil {
			g.chunks.Add(float64(done))
		}
		logging.GetWorldLogger().Debug("Сгенерировано чанков: %d", done)
	}
}

func (g *GeneratorSystem) Options() scheduler.Options {
	return scheduler.Options{Priority: 0, Flush: true, Access: ecs.Write[Terrain](ecs.Access{})}
}
