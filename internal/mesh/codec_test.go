package mesh

import (
	"bytes"
	"errors"
	"testing"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshDumpRoundTrip(t *testing.T) {
	cc := world.NewChunkCache()
	c, _ := cc.Load(vec.Vec3{X: -32, Y: 0, Z: 64})
	world.NewGenerator(world.DefaultGeneratorConfig()).Generate(c)
	m, _ := NewMesher(block.DefaultPalette()).Build(c, cc)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Uniform, got.Uniform)
	assert.Equal(t, m.Vertices, got.Vertices)
	assert.Equal(t, m.Indices, got.Indices)
}

func TestMeshDumpRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("nope"))
	assert.True(t, errors.Is(err, ErrBadMeshDump))

	_, err = Unmarshal(append([]byte("VXM1"), 1, 2, 3))
	assert.True(t, errors.Is(err, ErrBadMeshDump))
}

func TestMeshBuffers(t *testing.T) {
	m := &Mesh{Vertices: []uint32{1, 2, 3, 4}, Indices: []uint32{0, 1, 2, 0, 2, 3}, Uniform: Uniform{X: -32}}
	assert.Len(t, m.VertexBytes(), 16)
	assert.Len(t, m.IndexBytes(), 24)
	assert.Equal(t, []byte{0xE0, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0}, m.Uniform.Bytes())
	assert.Equal(t, vec.Vec3{X: -32}, m.Uniform.Corner())
	assert.Equal(t, 1, m.FaceCount())
}

func TestCacheCornersSorted(t *testing.T) {
	c := NewCache()
	c.Put(vec.Vec3{X: 32}, &Mesh{})
	c.Put(vec.Vec3{Y: -32}, &Mesh{})
	c.Put(vec.Vec3{}, &Mesh{})
	assert.Equal(t, []vec.Vec3{{Y: -32}, {}, {X: 32}}, c.Corners())
	assert.True(t, c.Delete(vec.Vec3{}))
	assert.False(t, c.Delete(vec.Vec3{}))
	assert.Equal(t, 2, c.Len())
}
