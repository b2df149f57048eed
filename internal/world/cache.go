package world

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// ChunkCache хранит загруженные чанки по их углу.
// Обход идёт в порядке загрузки, чтобы генерация и построение сеток
// были детерминированными между запусками.
type ChunkCache struct {
	chunks map[vec.Vec3]*Chunk
	order  []vec.Vec3
}

// NewChunkCache создаёт пустой кеш
func NewChunkCache() *ChunkCache {
	return &ChunkCache{chunks: make(map[vec.Vec3]*Chunk)}
}

// Load возвращает чанк по позиции, создавая его при отсутствии.
// Второе значение true, если чанк был создан этим вызовом.
func (cc *ChunkCache) Load(pos vec.Vec3) (*Chunk, bool) {
	corner := ChunkCorner(pos)
	if c, ok := cc.chunks[corner]; ok {
		return c, false
	}
	c := NewChunk(corner)
	cc.chunks[corner] = c
	cc.order = append(cc.order, corner)
	return c, true
}

// At возвращает загруженный чанк, которому принадлежит позиция
func (cc *ChunkCache) At(pos vec.Vec3) (*Chunk, bool) {
	c, ok := cc.chunks[ChunkCorner(pos)]
	return c, ok
}

// Neighbor возвращает соседний чанк через грань
func (cc *ChunkCache) Neighbor(pos vec.Vec3, f block.Face) (*Chunk, bool) {
	return cc.At(ChunkCorner(pos).Add(f.Normal().Scale(ChunkSize)))
}

// Region собирает загруженный чанк и его шесть соседей
func (cc *ChunkCache) Region(pos vec.Vec3) (*Region, bool) {
	center, ok := cc.At(pos)
	if !ok {
		return nil, false
	}
	return cc.RegionAround(center), true
}

// RegionAround собирает соседей для center, даже если сам center не в кэше
func (cc *ChunkCache) RegionAround(center *Chunk) *Region {
	r := NewRegion(center)
	for _, f := range block.Faces {
		if n, ok := cc.Neighbor(center.Pos(), f); ok {
			r.neighbors[f] = n
		}
	}
	return r
}

// Len возвращает число загруженных чанков
func (cc *ChunkCache) Len() int { return len(cc.order) }

// Each обходит чанки в порядке загрузки; fn возвращает false для остановки
func (cc *ChunkCache) Each(fn func(c *Chunk) bool) {
	for _, corner := range cc.order {
		if !fn(cc.chunks[corner]) {
			return
		}
	}
}

// Corners возвращает углы загруженных чанков в порядке загрузки
func (cc *ChunkCache) Corners() []vec.Vec3 {
	out := make([]vec.Vec3, len(cc.order))
	copy(out, cc.order)
	return out
}

// Drop выгружает чанк
func (cc *ChunkCache) Drop(pos vec.Vec3) bool {
	corner := ChunkCorner(pos)
	if _, ok := cc.chunks[corner]; !ok {
		return false
	}
	delete(cc.chunks, corner)
	for i, p := range cc.order {
		if p == corner {
			cc.order = append(cc.order[:i], cc.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear выгружает все чанки
func (cc *ChunkCache) Clear() {
	cc.chunks = make(map[vec.Vec3]*Chunk)
	cc.order = nil
}

// GetBlock читает ячейку по мировой позиции
func (cc *ChunkCache) GetBlock(w vec.Vec3) (block.Packed, bool) {
	c, ok := cc.At(w)
	if !ok {
		return block.Empty, false
	}
	return c.GetPacked(RelativePos(w)), true
}

// SetBlock записывает ячейку по мировой позиции. Если изменилась граничная
// ячейка, соседний чанк за этой гранью тоже помечается dirty.
func (cc *ChunkCache) SetBlock(w vec.Vec3, v block.Packed) (changed bool, loaded bool) {
	c, ok := cc.At(w)
	if !ok {
		return false, false
	}
	r := RelativePos(w)
	if !c.SetPacked(r, v) {
		return false, true
	}
	for _, f := range boundaryFaces(r) {
		if n, ok := cc.Neighbor(c.Pos(), f); ok {
			n.MarkDirty()
		}
	}
	return true, true
}

func boundaryFaces(r vec.Vec3) []block.Face {
	var out []block.Face
	if r.X == 0 {
		out = append(out, block.West)
	}
	if r.X == ChunkSize-1 {
		out = append(out, block.East)
	}
	if r.Y == 0 {
		out = append(out, block.Down)
	}
	if r.Y == ChunkSize-1 {
		out = append(out, block.Up)
	}
	if r.Z == 0 {
		out = append(out, block.North)
	}
	if r.Z == ChunkSize-1 {
		out = append(out, block.South)
	}
	return out
}
