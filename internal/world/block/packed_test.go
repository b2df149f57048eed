package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackRoundTripAllInline(t *testing.T) {
	for id := TypeID(0); id <= MaxTypeID; id++ {
		for v := Variant(0); v <= MaxVariant; v++ {
			p := Pack(id, v)
			if p.Format() != FormatInline {
				t.Fatalf("Pack(%d,%d) даёт формат %s", id, v, p.Format())
			}
			if p.ID() != id || p.Variant() != v {
				t.Fatalf("Pack(%d,%d) -> (%d,%d)", id, v, p.ID(), p.Variant())
			}
			if Pack(p.ID(), p.Variant()) != p {
				t.Fatalf("повторная упаковка %v изменила значение", p)
			}
		}
	}
}

func TestPackBitLayout(t *testing.T) {
	assert.Equal(t, Packed(0x0012), Pack(1, 2))
	assert.Equal(t, Packed(0x7FFF), Pack(MaxTypeID, MaxVariant))
	assert.True(t, Pack(0, 0).IsEmpty())
	assert.False(t, Pack(0, 1).IsEmpty())
}

func TestPackOverflowPanics(t *testing.T) {
	assert.Panics(t, func() { Pack(MaxTypeID+1, 0) })
	assert.Panics(t, func() { Pack(1, MaxVariant+1) })
	assert.Panics(t, func() { Addressed(MaxPointer + 1) })
}

func TestAddressedCells(t *testing.T) {
	p := Addressed(1234)
	assert.Equal(t, FormatAddressed, p.Format())
	assert.Equal(t, uint16(1234), p.Pointer())
	assert.False(t, p.IsEmpty())

	assert.Panics(t, func() { _ = p.ID() }, "чтение id addressed-ячейки запрещено")
	assert.Panics(t, func() { _ = p.Variant() })
	assert.Panics(t, func() { _ = Pack(1, 0).Pointer() })
}

func TestFaceOpposite(t *testing.T) {
	for _, f := range Faces {
		assert.Equal(t, f, f.Opposite().Opposite())
		n, o := f.Normal(), f.Opposite().Normal()
		assert.Equal(t, 0, n.X+o.X)
		assert.Equal(t, 0, n.Y+o.Y)
		assert.Equal(t, 0, n.Z+o.Z)
	}
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, East, West.Opposite())
}

func TestHalfVariant(t *testing.T) {
	f, ok := HalfDown.Face()
	assert.True(t, ok)
	assert.Equal(t, Down, f)

	for _, h := range []HalfVariant{HalfNorthSouth, HalfWestEast, HalfDownUp} {
		assert.True(t, h.IsFull(), h.String())
		_, ok := h.Face()
		assert.False(t, ok)
	}
	assert.False(t, HalfVariant(9).Valid())
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("Half")
	assert.NoError(t, err)
	assert.Equal(t, ShapeHalf, s)

	_, err = ParseShape("sphere")
	assert.Error(t, err)
}
