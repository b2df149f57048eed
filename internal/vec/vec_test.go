package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemEuclid(t *testing.T) {
	assert.Equal(t, 0, RemEuclid(0, 32))
	assert.Equal(t, 31, RemEuclid(-1, 32))
	assert.Equal(t, 0, RemEuclid(-32, 32))
	assert.Equal(t, 1, RemEuclid(33, 32))
	assert.Equal(t, 31, RemEuclid(-33, 32))
}

func TestVec3SnapDown(t *testing.T) {
	cases := []struct {
		in, want Vec3
	}{
		{Vec3{0, 0, 0}, Vec3{0, 0, 0}},
		{Vec3{31, 31, 31}, Vec3{0, 0, 0}},
		{Vec3{32, 5, -1}, Vec3{32, 0, -32}},
		{Vec3{-32, -33, 64}, Vec3{-32, -64, 64}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.SnapDown(32), "snap %v", c.in)
	}

	// Свойство: для любого w угол кратен 32 и w - corner ∈ [0, 32)
	for x := -70; x <= 70; x += 7 {
		w := Vec3{X: x, Y: -x, Z: x * 3}
		c := w.SnapDown(32)
		assert.Zero(t, RemEuclid(c.X, 32))
		assert.True(t, w.Sub(c).InBox(32), "остаток %v вне чанка", w.Sub(c))
	}
}

func TestVec3InBox(t *testing.T) {
	assert.True(t, Vec3{0, 0, 0}.InBox(32))
	assert.True(t, Vec3{31, 31, 31}.InBox(32))
	assert.False(t, Vec3{32, 0, 0}.InBox(32))
	assert.False(t, Vec3{0, -1, 0}.InBox(32))
}
