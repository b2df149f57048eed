package app

import (
	"context"
	"testing"
	"time"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/render"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, radius int) (*Engine, *render.Headless) {
	t.Helper()
	cfg := config.Default()
	cfg.World.LoadRadius = radius
	backend := render.NewHeadless()
	e, err := New(cfg, backend)
	require.NoError(t, err)
	require.NoError(t, e.Start(context.Background()))
	return e, backend
}

func TestEngineFrameBuildsWorld(t *testing.T) {
	e, backend := newTestEngine(t, 1)

	n, err := e.Frame(context.Background(), 16*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "POLL, UPDATE и RENDER")

	st := e.Stats()
	assert.Equal(t, 9, st.Chunks)
	assert.Equal(t, 9, st.Generated)
	assert.Equal(t, 9, st.Meshes)
	assert.Equal(t, uint64(1), st.Frame)
	assert.Equal(t, 16*time.Millisecond, st.Elapsed)
	assert.True(t, st.WindowOpen)
	assert.Equal(t, 9, backend.Stats().Resident)
	assert.Equal(t, e.Palette().Digest(), st.PaletteHash)
}

func TestEngineFrameRequiresStart(t *testing.T) {
	e, err := New(nil, nil)
	require.NoError(t, err)
	_, err = e.Frame(context.Background(), time.Millisecond)
	assert.Error(t, err)
}

func TestEngineSetBlock(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	_, err := e.Frame(context.Background(), time.Millisecond)
	require.NoError(t, err)
	faces := e.Stats().Faces

	pos := vec.Vec3{X: 10, Y: 28, Z: 10}
	require.True(t, e.SetBlock(pos, block.Pack(block.DirtBlockID, 0)))
	assert.False(t, e.SetBlock(vec.Vec3{X: 1000}, block.Pack(block.DirtBlockID, 0)), "Чанк не загружен")

	_, err = e.Frame(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, faces+6, e.Stats().Faces)
	assert.Equal(t, 0, e.Stats().Dirty)

	b, ok := e.GetBlock(pos)
	require.True(t, ok)
	assert.Equal(t, "dirt", b.TextID())
}

func TestEngineResizeAndStop(t *testing.T) {
	e, backend := newTestEngine(t, 0)
	e.Resize(640, 480)
	_, err := e.Frame(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 640, e.Stats().Width)

	require.NoError(t, e.Stop(context.Background()))
	assert.Equal(t, 0, backend.Stats().Resident, "Stop освобождает буферы")
	_, err = e.Frame(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, e.Start(context.Background()), ErrStopped)
}

func TestEngineRunHonoursMaxFrames(t *testing.T) {
	cfg := config.Default()
	cfg.World.LoadRadius = 0
	cfg.Engine.TickRate = time.Millisecond
	cfg.Engine.MaxFrames = 3
	e, err := New(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(3), e.Stats().Frame)
}

func TestEngineMetrics(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	_, err := e.Frame(context.Background(), time.Millisecond)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(e.Registry(), "voxel_generator_chunks_total", "voxel_mesher_meshes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NotEmpty(t, e.Systems())
}
