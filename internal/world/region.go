package world

import (
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Region чанк вместе с соседями по шести граням
type Region struct {
	Center    *Chunk
	neighbors [block.FaceCount]*Chunk
}

// NewRegion создаёт регион без загруженных соседей
func NewRegion(center *Chunk) *Region {
	return &Region{Center: center}
}

// Neighbor возвращает соседа через грань или nil, если он не загружен
func (r *Region) Neighbor(f block.Face) *Chunk {
	return r.neighbors[f]
}

// Loaded возвращает число загруженных соседей
func (r *Region) Loaded() int {
	n := 0
	for _, c := range r.neighbors {
		if c != nil {
			n++
		}
	}
	return n
}

// BlockAt читает ячейку по позиции относительно центра. Позиция может выходить
// за границу центра не более чем по одной оси, тогда ячейка берётся у соседа.
// ok == false, если нужный сосед не загружен.
func (r *Region) BlockAt(rel vec.Vec3) (block.Packed, *Chunk, bool) {
	if InChunk(rel) {
		return r.Center.GetPacked(rel), r.Center, true
	}
	f, ok := outsideFace(rel)
	if !ok {
		panic(fmt.Sprintf("world: region position %+v is outside more than one face", rel))
	}
	n := r.neighbors[f]
	if n == nil {
		return block.Empty, nil, false
	}
	return n.GetPacked(rel.RemEuclid(ChunkSize)), n, true
}

func outsideFace(rel vec.Vec3) (block.Face, bool) {
	var (
		face  block.Face
		count int
	)
	switch {
	case rel.X < 0:
		face, count = block.West, count+1
	case rel.X >= ChunkSize:
		face, count = block.East, count+1
	}
	switch {
	case rel.Y < 0:
		face, count = block.Down, count+1
	case rel.Y >= ChunkSize:
		face, count = block.Up, count+1
	}
	switch {
	case rel.Z < 0:
		face, count = block.North, count+1
	case rel.Z >= ChunkSize:
		face, count = block.South, count+1
	}
	return face, count == 1
}
