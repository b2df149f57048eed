package block

import (
	"fmt"
	"strings"
)

// Shape закрытый набор форм блока. Отсечение и построение сетки
// делаются исчерпывающим switch по этим значениям.
type Shape uint8

const (
	ShapeEmpty Shape = iota
	ShapeCube
	ShapeHalf
	ShapeStair
	ShapeCross
	ShapeLiquid
	ShapeMesh

	shapeCount
)

var shapeNames = [shapeCount]string{"empty", "cube", "half", "stair", "cross", "liquid", "mesh"}

func (s Shape) String() string {
	if s < shapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ParseShape разбирает имя формы из файла палитры
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return ShapeEmpty, fmt.Errorf("unknown shape %q", name)
}

// HalfVariant ориентация половинчатого блока, хранится в Variant.
// Первые шесть значений совпадают с индексами граней: половинка занимает
// сторону, прилегающую к этой грани. Оставшиеся три: полный объём
// (две половинки вместе).
type HalfVariant Variant

const (
	HalfNorth HalfVariant = HalfVariant(North)
	HalfSouth HalfVariant = HalfVariant(South)
	HalfWest  HalfVariant = HalfVariant(West)
	HalfEast  HalfVariant = HalfVariant(East)
	HalfDown  HalfVariant = HalfVariant(Down)
	HalfUp    HalfVariant = HalfVariant(Up)

	HalfNorthSouth HalfVariant = 6
	HalfWestEast   HalfVariant = 7
	HalfDownUp     HalfVariant = 8

	HalfVariantCount = 9
)

var halfNames = [HalfVariantCount]string{
	"north", "south", "west", "east", "down", "up", "north_south", "west_east", "down_up",
}

// IsFull сообщает, что вариант занимает весь объём ячейки
func (h HalfVariant) IsFull() bool {
	return h == HalfNorthSouth || h == HalfWestEast || h == HalfDownUp
}

// Face возвращает грань, к которой прилегает направленная половинка
func (h HalfVariant) Face() (Face, bool) {
	if h < HalfNorthSouth {
		return Face(h), true
	}
	return 0, false
}

// Valid сообщает, что значение входит в набор из девяти ориентаций
func (h HalfVariant) Valid() bool {
	return h < HalfVariantCount
}

func (h HalfVariant) String() string {
	if h.Valid() {
		return halfNames[h]
	}
	return fmt.Sprintf("HalfVariant(%d)", uint8(h))
}
