package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/annel0/voxelcore/internal/scheduler"
	"github.com/annel0/voxelcore/internal/systems"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	palette *block.Palette
	cache   *world.ChunkCache
	snap    systems.Snapshot
}

func newFakeEngine() *fakeEngine {
	cc := world.NewChunkCache()
	c, _ := cc.Load(vec.Vec3{})
	c.SetPacked(vec.Vec3{X: 1, Y: 2, Z: 3}, block.Pack(block.StoneBlockID, 0))
	return &fakeEngine{
		palette: block.DefaultPalette(),
		cache:   cc,
		snap: systems.Snapshot{
			Frame:  7,
			Chunks: 1,
			ChunkList: []systems.ChunkInfo{
				{Pos: vec.Vec3{}, Generated: true, Blocks: 1},
			},
		},
	}
}

func (f *fakeEngine) ID() string              { return "engine-1" }
func (f *fakeEngine) Stats() systems.Snapshot { return f.snap }
func (f *fakeEngine) Palette() *block.Palette { return f.palette }
func (f *fakeEngine) Systems() []scheduler.SystemInfo {
	return []scheduler.SystemInfo{{Name: "mesher", Event: scheduler.EventRender, Priority: -10, Flush: true}}
}
func (f *fakeEngine) GetBlock(w vec.Vec3) (world.UnpackedBlock, bool) {
	c, ok := f.cache.At(w)
	if !ok {
		return world.UnpackedBlock{}, false
	}
	return c.GetUnpacked(world.RelativePos(w), f.palette), true
}
func (f *fakeEngine) SetBlock(w vec.Vec3, p block.Packed) bool {
	_, loaded := f.cache.SetBlock(w, p)
	return loaded
}

func newTestServer(t *testing.T, readOnly bool) (*RestServer, *fakeEngine) {
	t.Helper()
	reg := prometheus.NewRegistry()
	eng := newFakeEngine()
	return NewRestServer(Config{Engine: eng, Gatherer: reg, Registry: reg, ReadOnly: readOnly}), eng
}

func do(t *testing.T, rs *RestServer, method, path string, body []byte) (*httptest.ResponseRecorder, GenericResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rs.Handler().ServeHTTP(rec, req)

	var resp GenericResponse
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestHealth(t *testing.T) {
	rs, _ := newTestServer(t, true)
	rec, _ := do(t, rs, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "engine-1")
}

func TestStatsAndChunks(t *testing.T) {
	rs, _ := newTestServer(t, true)

	rec, resp := do(t, rs, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Contains(t, rec.Body.String(), `"frame":7`)

	rec, resp = do(t, rs, http.MethodGet, "/api/chunks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	chunks, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, chunks, 1)
}

func TestGetBlock(t *testing.T) {
	rs, _ := newTestServer(t, true)

	rec, resp := do(t, rs, http.MethodGet, "/api/blocks?x=1&y=2&z=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "stone", data["text_id"])
	assert.Equal(t, "cube", data["shape"])

	rec, _ = do(t, rs, http.MethodGet, "/api/blocks?x=1000&y=0&z=0", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, rs, http.MethodGet, "/api/blocks?x=a&y=0&z=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetBlock(t *testing.T) {
	rs, eng := newTestServer(t, false)

	body, _ := json.Marshal(SetBlockRequest{X: 4, Y: 4, Z: 4, Block: "dirt"})
	rec, resp := do(t, rs, http.MethodPost, "/api/blocks", body)
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)
	v, _ := eng.cache.GetBlock(vec.Vec3{X: 4, Y: 4, Z: 4})
	assert.Equal(t, block.DirtBlockID, v.ID())

	body, _ = json.Marshal(SetBlockRequest{Block: "unobtainium"})
	rec, _ = do(t, rs, http.MethodPost, "/api/blocks", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, _ = json.Marshal(SetBlockRequest{Block: "slab", Variant: 16})
	rec, _ = do(t, rs, http.MethodPost, "/api/blocks", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	rs, _ := newTestServer(t, true)
	body, _ := json.Marshal(SetBlockRequest{Block: "dirt"})
	rec, _ := do(t, rs, http.MethodPost, "/api/blocks", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemsPaletteAndMetrics(t *testing.T) {
	rs, _ := newTestServer(t, true)

	rec, _ := do(t, rs, http.MethodGet, "/api/systems", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"mesher"`)

	rec, resp := do(t, rs, http.MethodGet, "/api/palette", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, block.DefaultPalette().Len())

	rec = httptest.NewRecorder()
	rs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "voxel_debug_api_http_requests_inflight")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5с", formatUptime(5*time.Second))
	assert.Equal(t, "2м 5с", formatUptime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", formatUptime(25*time.Hour))
}
