package mesh

import "github.com/annel0/voxelcore/internal/world/block"

// Cell форма и вариант ячейки после разрешения addressed-значений
type Cell struct {
	Shape   block.Shape
	Variant block.HalfVariant
}

// EmptyCell соответствует пустой или незагруженной ячейке
var EmptyCell = Cell{Shape: block.ShapeEmpty}

// Culled сообщает, скрыта ли грань f ячейки self соседней ячейкой neighbor
func Culled(self Cell, neighbor Cell, f block.Face) bool {
	switch self.Shape {
	case block.ShapeEmpty:
		return true
	case block.ShapeCube:
		return cubeCulled(neighbor, f)
	case block.ShapeHalf:
		// TODO: точная геометрия половинок; пока половинка отсекается как куб
		return cubeCulled(neighbor, f)
	case block.ShapeStair, block.ShapeCross, block.ShapeLiquid, block.ShapeMesh:
		return false
	default:
		return false
	}
}

func cubeCulled(neighbor Cell, f block.Face) bool {
	switch neighbor.Shape {
	case block.ShapeEmpty:
		return false
	case block.ShapeCube:
		return true
	case block.ShapeHalf:
		if neighbor.Variant.IsFull() {
			return true
		}
		// Половинка соседа прилегает к грани f, если занимает его противоположную сторону
		side, ok := neighbor.Variant.Face()
		return ok && side == f.Opposite()
	default:
		return false
	}
}

// Emits сообщает, строится ли геометрия для формы
func Emits(s block.Shape) bool {
	return s == block.ShapeCube || s == block.ShapeHalf
}
