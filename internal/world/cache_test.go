package world

import (
	"testing"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCacheLoadIsIdempotent(t *testing.T) {
	cc := NewChunkCache()

	a, created := cc.Load(vec.Vec3{X: 5, Y: 5, Z: 5})
	require.True(t, created)
	b, created := cc.Load(vec.Vec3{X: 31, Y: 0, Z: 17})
	assert.False(t, created, "Повторная загрузка того же чанка не создаёт новый")
	assert.Same(t, a, b)
	assert.Equal(t, 1, cc.Len())
}

func TestChunkCacheNeighbor(t *testing.T) {
	cc := NewChunkCache()
	cc.Load(vec.Vec3{})
	east, _ := cc.Load(vec.Vec3{X: 32})
	down, _ := cc.Load(vec.Vec3{Y: -32})

	n, ok := cc.Neighbor(vec.Vec3{X: 10, Y: 10, Z: 10}, block.East)
	require.True(t, ok)
	assert.Same(t, east, n)

	n, ok = cc.Neighbor(vec.Vec3{}, block.Down)
	require.True(t, ok)
	assert.Same(t, down, n)

	_, ok = cc.Neighbor(vec.Vec3{}, block.North)
	assert.False(t, ok, "Незагруженный сосед должен отсутствовать")
}

func TestChunkCacheEachKeepsLoadOrder(t *testing.T) {
	cc := NewChunkCache()
	order := []vec.Vec3{{X: 64}, {}, {Z: -32}, {Y: 32}}
	for _, p := range order {
		cc.Load(p)
	}

	var got []vec.Vec3
	cc.Each(func(c *Chunk) bool {
		got = append(got, c.Pos())
		return true
	})
	assert.Equal(t, order, got)
	assert.Equal(t, order, cc.Corners())

	require.True(t, cc.Drop(vec.Vec3{}))
	assert.False(t, cc.Drop(vec.Vec3{}))
	assert.Equal(t, []vec.Vec3{{X: 64}, {Z: -32}, {Y: 32}}, cc.Corners())

	cc.Clear()
	assert.Equal(t, 0, cc.Len())
}

func TestChunkCacheSetBlockMarksNeighbor(t *testing.T) {
	cc := NewChunkCache()
	center, _ := cc.Load(vec.Vec3{})
	west, _ := cc.Load(vec.Vec3{X: -32})
	east, _ := cc.Load(vec.Vec3{X: 32})

	changed, loaded := cc.SetBlock(vec.Vec3{X: 0, Y: 3, Z: 3}, block.Pack(block.StoneBlockID, 0))
	require.True(t, loaded)
	require.True(t, changed)
	assert.True(t, center.IsDirty())
	assert.True(t, west.IsDirty(), "Изменение граничной ячейки должно затрагивать соседа")
	assert.False(t, east.IsDirty())

	v, ok := cc.GetBlock(vec.Vec3{X: 0, Y: 3, Z: 3})
	require.True(t, ok)
	assert.Equal(t, block.StoneBlockID, v.ID())

	_, loaded = cc.SetBlock(vec.Vec3{X: 500}, block.Pack(block.StoneBlockID, 0))
	assert.False(t, loaded)
}

func TestRegionBlockAt(t *testing.T) {
	cc := NewChunkCache()
	center, _ := cc.Load(vec.Vec3{})
	up, _ := cc.Load(vec.Vec3{Y: 32})
	up.SetPacked(vec.Vec3{X: 4, Y: 0, Z: 4}, block.Pack(block.DirtBlockID, 0))

	r, ok := cc.Region(vec.Vec3{})
	require.True(t, ok)
	assert.Same(t, center, r.Center)
	assert.Equal(t, 1, r.Loaded())
	assert.Same(t, up, r.Neighbor(block.Up))
	assert.Nil(t, r.Neighbor(block.Down))

	v, owner, ok := r.BlockAt(vec.Vec3{X: 4, Y: 32, Z: 4})
	require.True(t, ok)
	assert.Same(t, up, owner)
	assert.Equal(t, block.DirtBlockID, v.ID())

	_, _, ok = r.BlockAt(vec.Vec3{X: -1})
	assert.False(t, ok, "Незагруженный сосед")

	assert.Panics(t, func() { r.BlockAt(vec.Vec3{X: -1, Y: -1}) })
}
