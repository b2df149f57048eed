package mesh

import (
	"fmt"

	"github.com/annel0/voxelcore/internal/world/block"
)

// Раскладка 32-битной вершины, старшие биты первыми:
// 6 бит X, 6 бит Y, 6 бит Z, 7 бит U, 7 бит V.
const (
	xShift = 26
	yShift = 20
	zShift = 14
	uShift = 7

	posMask = 0x3F
	uvMask  = 0x7F

	// AtlasTiles ширина атласа текстур в тайлах
	AtlasTiles = 64
)

// Vertex распакованная вершина: угол ячейки в [0, S] и координаты атласа
type Vertex struct {
	X, Y, Z uint32
	U, V    uint32
}

// PackVertex упаковывает вершину. Значения вне диапазона полей: ошибка программиста.
func PackVertex(x, y, z, u, v uint32) uint32 {
	if x > posMask || y > posMask || z > posMask || u > uvMask || v > uvMask {
		panic(fmt.Sprintf("mesh: vertex field overflow x=%d y=%d z=%d u=%d v=%d", x, y, z, u, v))
	}
	return x<<xShift | y<<yShift | z<<zShift | u<<uShift | v
}

// UnpackVertex раскладывает слово обратно на поля
func UnpackVertex(w uint32) Vertex {
	return Vertex{
		X: w >> xShift & posMask,
		Y: w >> yShift & posMask,
		Z: w >> zShift & posMask,
		U: w >> uShift & uvMask,
		V: w & uvMask,
	}
}

// Pack упаковывает вершину
func (v Vertex) Pack() uint32 {
	return PackVertex(v.X, v.Y, v.Z, v.U, v.V)
}

// AtlasTile возвращает тайл атласа для типа блока (строки по AtlasTiles)
func AtlasTile(id block.TypeID) (u, v uint32) {
	return uint32(id) % AtlasTiles, uint32(id) / AtlasTiles
}
