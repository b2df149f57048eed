package block

// Встроенные типы блоков (индексы в DefaultPalette)
const (
	AirBlockID    TypeID = iota // 0
	GrassBlockID                // 1: поверхность
	StoneBlockID                // 2: недра
	DirtBlockID                 // 3
	SlabBlockID                 // 4: половинка
	StairsBlockID               // 5
	FlowerBlockID               // 6
	WaterBlockID                // 7

	// Генератор кладёт эти типы в верхний слой и под него
	SurfaceBlockID  = GrassBlockID
	InteriorBlockID = StoneBlockID
)

var defaultEntries = []PaletteEntry{
	{Name: "Air", TextID: "air", Color: Color{0, 0, 0, 0}, Shape: ShapeEmpty},
	{Name: "Grass", TextID: "grass", Color: Color{106, 170, 64, 255}, Shape: ShapeCube},
	{Name: "Stone", TextID: "stone", Color: Color{125, 125, 125, 255}, Shape: ShapeCube},
	{Name: "Dirt", TextID: "dirt", Color: Color{134, 96, 67, 255}, Shape: ShapeCube},
	{Name: "Stone Slab", TextID: "slab", Color: Color{160, 160, 160, 255}, Shape: ShapeHalf},
	{Name: "Stairs", TextID: "stairs", Color: Color{150, 110, 70, 255}, Shape: ShapeStair},
	{Name: "Flower", TextID: "flower", Color: Color{230, 60, 60, 255}, Shape: ShapeCross},
	{Name: "Water", TextID: "water", Color: Color{40, 90, 220, 160}, Shape: ShapeLiquid},
}

// DefaultPalette возвращает встроенную палитру
func DefaultPalette() *Palette {
	p, err := NewPalette(defaultEntries)
	if err != nil {
		panic("block: built-in palette is invalid: " + err.Error())
	}
	return p
}
