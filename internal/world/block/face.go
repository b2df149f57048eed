package block

import (
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
)

// Face одна из шести граней ячейки
type Face uint8

const (
	North Face = iota // -Z
	South             // +Z
	West              // -X
	East              // +X
	Down              // -Y
	Up                // +Y

	FaceCount = 6
)

var faceNormals = [FaceCount]vec.Vec3{
	North: {X: 0, Y: 0, Z: -1},
	South: {X: 0, Y: 0, Z: 1},
	West:  {X: -1, Y: 0, Z: 0},
	East:  {X: 1, Y: 0, Z: 0},
	Down:  {X: 0, Y: -1, Z: 0},
	Up:    {X: 0, Y: 1, Z: 0},
}

var faceNames = [FaceCount]string{"north", "south", "west", "east", "down", "up"}

// Faces все грани в порядке индексов
var Faces = [FaceCount]Face{North, South, West, East, Down, Up}

// Normal возвращает единичную нормаль грани
func (f Face) Normal() vec.Vec3 {
	return faceNormals[f]
}

// Opposite возвращает противоположную грань (North<->South и т.д.)
func (f Face) Opposite() Face {
	return f ^ 1
}

func (f Face) String() string {
	if f < FaceCount {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}
