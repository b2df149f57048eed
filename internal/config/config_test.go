package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv("VOXEL_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Generator.SeaLevel)
	assert.Equal(t, 5, cfg.Generator.Delta)
	assert.Equal(t, uint32(0), cfg.Generator.Seed)
	assert.Equal(t, 15.0, cfg.Generator.Scale)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "engine.yaml", `
generator:
  seed: 12345
  delta: 7
world:
  load_radius: 1
engine:
  tick_rate: 20ms
logging:
  level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), cfg.Generator.Seed)
	assert.Equal(t, 7, cfg.Generator.Delta)
	assert.Equal(t, 10, cfg.Generator.SeaLevel, "незаданные поля остаются по умолчанию")
	assert.Equal(t, 1, cfg.World.LoadRadius)
	assert.Equal(t, 20*time.Millisecond, cfg.Engine.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "engine.toml", `
[generator]
seed = 7
sea_level = 12
workers = 4

[server]
api_port = 9000
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), cfg.Generator.Seed)
	assert.Equal(t, 12, cfg.Generator.SeaLevel)
	assert.Equal(t, 4, cfg.Generator.Workers)
	assert.Equal(t, 9000, cfg.Server.GetAPIPort())
}

func TestLoadFromEnv(t *testing.T) {
	p := writeFile(t, "env.yml", "generator:\n  seed: 99\n")
	t.Setenv("VOXEL_CONFIG", p)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint32(99), cfg.Generator.Seed)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	p := writeFile(t, "engine.ini", "seed=1")
	_, err := Load(p)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRejectsBadScale(t *testing.T) {
	p := writeFile(t, "bad.yaml", "generator:\n  scale: 0\n")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestPortFallback(t *testing.T) {
	var s ServerConfig
	t.Setenv("VOXEL_METRICS_PORT", "3000")
	assert.Equal(t, 3000, s.GetMetricsPort())
	t.Setenv("VOXEL_API_PORT", "")
	assert.Equal(t, 8088, s.GetAPIPort())
}
