package mesh

import (
	"time"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Stats итог одного построения
type Stats struct {
	Emitted   int // Построенные грани
	Culled    int // Отсечённые грани
	Neighbors int // Загруженные соседи на момент построения
}

// Mesher строит сетки чанков с отсечением скрытых граней
type Mesher struct {
	palette *block.Palette
	metrics *Metrics
}

// NewMesher создаёт построитель сеток
func NewMesher(palette *block.Palette) *Mesher {
	return &Mesher{palette: palette}
}

// WithMetrics подключает метрики Prometheus
func (m *Mesher) WithMetrics(metrics *Metrics) *Mesher {
	m.metrics = metrics
	return m
}

// Palette возвращает палитру построителя
func (m *Mesher) Palette() *block.Palette { return m.palette }

// Build строит сетку чанка. Соседние чанки берутся из cache; отсутствующий
// сосед не отсекает граничные грани. cache может быть nil.
func (m *Mesher) Build(c *world.Chunk, cache *world.ChunkCache) (*Mesh, Stats) {
	start := time.Now()

	region := world.NewRegion(c)
	if cache != nil {
		region = cache.RegionAround(c)
	}

	out := &Mesh{Uniform: UniformOf(c.Pos())}
	stats := Stats{Neighbors: region.Loaded()}

	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				r := vec.Vec3{X: x, Y: y, Z: z}
				self, v := cellFrom(c.ShapeAt(r, m.palette))
				if !Emits(self.Shape) {
					continue
				}
				tileU, tileV := AtlasTile(v.ID())

				for _, f := range block.Faces {
					other := EmptyCell
					if p, owner, ok := region.BlockAt(r.Add(f.Normal())); ok {
						other, _ = cellFrom(m.shapeOf(owner, p))
					}

					if Culled(self, other, f) {
						stats.Culled++
						continue
					}
					out.appendFace(faceCorners[f], r, tileU, tileV)
					stats.Emitted++
				}
			}
		}
	}

	if m.metrics != nil {
		m.metrics.observe(stats, time.Since(start))
	}
	return out, stats
}

// Process строит сетку грязного сгенерированного чанка, публикует её в meshes
// (пустая сетка удаляет прежнюю) и сбрасывает dirty. Возвращает nil для
// чанков, которые не требуют построения, или если сетка оказалась пустой.
func (m *Mesher) Process(c *world.Chunk, cache *world.ChunkCache, meshes *Cache) (*Mesh, Stats, bool) {
	if !c.IsDirty() || !c.IsGenerated() {
		return nil, Stats{}, false
	}
	out, stats := m.Build(c, cache)
	if out.IsEmpty() {
		meshes.Delete(c.Pos())
		out = nil
	} else {
		meshes.Put(c.Pos(), out)
	}
	c.ClearDirty()
	return out, stats, true
}

func (m *Mesher) shapeOf(owner *world.Chunk, p block.Packed) (block.Shape, block.Packed) {
	v := m.palette.Resolve(p, owner.Resolver())
	return m.palette.ShapeOf(v), v
}

func cellFrom(shape block.Shape, v block.Packed) (Cell, block.Packed) {
	cell := Cell{Shape: shape}
	if shape == block.ShapeHalf {
		cell.Variant = block.HalfVariant(v.Variant())
	}
	return cell, v
}
