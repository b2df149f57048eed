package observability

import (
	"context"
	"testing"
	"time"

	"github.com/annel0/voxelcore/internal/render"
	"github.com/annel0/voxelcore/internal/systems"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStats struct{ snap systems.Snapshot }

func (s *staticStats) Stats() systems.Snapshot { return s.snap }

func TestExporterRefresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	src := &staticStats{snap: systems.Snapshot{
		Frame:  3,
		Chunks: 9,
		Meshes: 4,
		Faces:  120,
		Render: render.Stats{Uploads: 4, Resident: 4, Bytes: 2048},
	}}
	me := NewMetricsExporter(src, reg, reg)

	me.Refresh()
	assert.Equal(t, 3.0, testutil.ToFloat64(me.frames))
	assert.Equal(t, 9.0, testutil.ToFloat64(me.chunks))
	assert.Equal(t, 120.0, testutil.ToFloat64(me.faces))
	assert.Equal(t, 2048.0, testutil.ToFloat64(me.gpuBytes))

	src.snap.Frame = 5
	src.snap.Chunks = 1
	src.snap.Render.Uploads = 6
	me.Refresh()
	assert.Equal(t, 5.0, testutil.ToFloat64(me.frames), "счётчик растёт на дельту")
	assert.Equal(t, 6.0, testutil.ToFloat64(me.uploads))
	assert.Equal(t, 1.0, testutil.ToFloat64(me.chunks))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestExporterLoopStops(t *testing.T) {
	reg := prometheus.NewRegistry()
	src := &staticStats{snap: systems.Snapshot{Chunks: 2}}
	me := NewMetricsExporter(src, reg, reg)
	me.SetInterval(time.Millisecond)
	me.Start()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(me.chunks) == 2
	}, time.Second, time.Millisecond)
	require.NoError(t, me.Stop(context.Background()))
}

func TestExporterStopWithoutStart(t *testing.T) {
	reg := prometheus.NewRegistry()
	me := NewMetricsExporter(&staticStats{}, reg, reg)

	stopped := make(chan error, 1)
	go func() { stopped <- me.Stop(context.Background()) }()
	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Stop без Start завис")
	}
}

func TestExporterStopTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	me := NewMetricsExporter(&staticStats{}, reg, reg)
	me.SetInterval(time.Millisecond)
	me.Start()
	me.Start()

	require.NoError(t, me.Stop(context.Background()))
	assert.NotPanics(t, func() {
		assert.NoError(t, me.Stop(context.Background()))
	})
}
