package world

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// UnpackedBlock представление ячейки только для чтения: упакованное
// значение, мировая позиция и палитра. Изменения идут через чанк.
//
// Addressed-ячейки без побочной таблицы читаются как запись 0 палитры.
type UnpackedBlock struct {
	packed  block.Packed
	pos     vec.Vec3
	palette *block.Palette
}

// NewUnpackedBlock создаёт представление ячейки
func NewUnpackedBlock(p block.Packed, pos vec.Vec3, palette *block.Palette) UnpackedBlock {
	return UnpackedBlock{packed: p, pos: pos, palette: palette}
}

func (b UnpackedBlock) entry() block.PaletteEntry {
	if !b.packed.IsInline() {
		return b.palette.Lookup(block.AirBlockID)
	}
	return b.palette.Lookup(b.packed.ID())
}

func (b UnpackedBlock) Packed() block.Packed    { return b.packed }
func (b UnpackedBlock) Shape() block.Shape      { return b.palette.ShapeOf(b.packed) }
func (b UnpackedBlock) Name() string            { return b.entry().Name }
func (b UnpackedBlock) TextID() string          { return b.entry().TextID }
func (b UnpackedBlock) Color() block.Color      { return b.entry().Color }
func (b UnpackedBlock) Pos() vec.Vec3           { return b.pos }
func (b UnpackedBlock) RelativePos() vec.Vec3   { return RelativePos(b.pos) }
func (b UnpackedBlock) ChunkPos() vec.Vec3      { return ChunkCorner(b.pos) }
func (b UnpackedBlock) Format() block.Format    { return b.packed.Format() }
func (b UnpackedBlock) IsEmpty() bool           { return b.Shape() == block.ShapeEmpty }
func (b UnpackedBlock) Palette() *block.Palette { return b.palette }
func (b UnpackedBlock) HalfVariant() block.HalfVariant {
	if !b.packed.IsInline() {
		return 0
	}
	return block.HalfVariant(b.packed.Variant())
}
