package mesh

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Углы каждой грани. Треугольники (0,1,2) и (0,2,3) обходятся
// против часовой стрелки, если смотреть на грань снаружи ячейки.
var faceCorners = [block.FaceCount][4]vec.Vec3{
	block.North: {{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}},
	block.South: {{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}},
	block.West:  {{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0}},
	block.East:  {{X: 1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}},
	block.Down:  {{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
	block.Up:    {{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}},
}

// Смещения UV внутри тайла для углов 0..3 (v растёт вниз)
var cornerUV = [4][2]uint32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// Индексы двух треугольников грани относительно её первой вершины
var faceIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// FaceCorners возвращает углы грани относительно угла ячейки
func FaceCorners(f block.Face) [4]vec.Vec3 {
	return faceCorners[f]
}
