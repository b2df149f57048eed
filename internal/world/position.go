package world

import "github.com/annel0/voxelcore/internal/vec"

// ChunkCorner возвращает угол чанка, которому принадлежит мировая позиция
func ChunkCorner(w vec.Vec3) vec.Vec3 {
	return w.SnapDown(ChunkSize)
}

// RelativePos возвращает позицию внутри владеющего чанка
func RelativePos(w vec.Vec3) vec.Vec3 {
	return w.RemEuclid(ChunkSize)
}

// InChunk проверяет, что относительная позиция лежит в [0, S)³
func InChunk(r vec.Vec3) bool {
	return r.InBox(ChunkSize)
}
