package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(12345)
	b := NewNoise(12345)
	for x := -20; x < 20; x++ {
		for z := -20; z < 20; z++ {
			fx, fz := float64(x)/15, float64(z)/15
			assert.Equal(t, a.Noise2D(fx, fz), b.Noise2D(fx, fz))
		}
	}
}

func TestNoiseRange(t *testing.T) {
	n := NewNoise(7)
	for x := 0; x < 200; x++ {
		v := n.Noise2D(float64(x)*0.37, float64(x)*-0.21)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNoiseSeedMatters(t *testing.T) {
	a := NewNoise(1)
	b := NewNoise(2)
	differs := false
	for x := 0; x < 50 && !differs; x++ {
		if a.Noise2D(float64(x)/15+0.3, 0.7) != b.Noise2D(float64(x)/15+0.3, 0.7) {
			differs = true
		}
	}
	assert.True(t, differs, "разные сиды должны давать разный шум")
}
