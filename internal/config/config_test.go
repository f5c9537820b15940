package config

import (
	"os"
	"path/filepath"
	"testing"

	"voxelmesh/internal/meshing"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/voxel"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxelmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "greedy", cfg.Mesher.Kind)
	assert.Equal(t, "heightmap", cfg.Source.Shape)
	assert.GreaterOrEqual(t, cfg.Pool.Workers, 1)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
mesher:
  kind: culled
  block_size: 0.5
pool:
  workers: 3
log:
  level: debug
  format: json
source:
  shape: random
  seed: 9
  dims: {x: 8, y: 4, z: 8}
palette:
  - {id: 3, name: stone, top: 1, side: 2, bottom: 3}
  - {id: 7, name: glass, top: 6, side: 6, bottom: 6}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "culled", cfg.Mesher.Kind)
	assert.Equal(t, float32(0.5), cfg.Mesher.BlockSize)
	assert.Equal(t, 3, cfg.Pool.Workers)
	assert.Equal(t, 64, cfg.Pool.QueueSize, "unset keys keep their defaults")
	assert.Equal(t, voxel.Dims{X: 8, Y: 4, Z: 8}, cfg.Source.Dims)
	assert.Equal(t, int64(9), cfg.Source.Seed)

	palette, err := cfg.BuildPalette()
	require.NoError(t, err)
	assert.Equal(t, 1, palette.Tile(voxel.Stone, voxel.FaceTop))
	assert.Equal(t, 6, palette.Tile(voxel.Type(7), voxel.FaceNorth))
	assert.Equal(t, 13, palette.Tile(voxel.Grass, voxel.FaceTop))

	log, err := cfg.Log.Logger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	assert.IsType(t, &meshing.Culled{}, cfg.NewMesher(palette))
}

func TestLoadFallsBackToEnvironment(t *testing.T) {
	path := writeConfig(t, "mesher:\n  parallel_axes: true\n")
	t.Setenv(EnvPath, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Mesher.ParallelAxes)

	m, ok := cfg.NewMesher(nil).(*meshing.Greedy)
	require.True(t, ok)
	assert.True(t, m.ParallelAxes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for name, body := range map[string]string{
		"mesher kind": "mesher: {kind: marching}",
		"block size":  "mesher: {block_size: -1}",
		"log level":   "log: {level: loud}",
		"log format":  "log: {format: xml}",
		"shape":       "source: {shape: sphere}",
		"density":     "source: {density: 2}",
		"dims":        "source: {dims: {x: -1, y: 1, z: 1}}",
		"atlas":       "atlas: {columns: 0}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestValidateRejectsNonFiniteBlockSize(t *testing.T) {
	for _, bs := range []float32{math32.NaN(), math32.Inf(1), math32.Inf(-1)} {
		cfg := Default()
		cfg.Mesher.BlockSize = bs
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, "block size %v", bs)
	}

	_, err := Load(writeConfig(t, "mesher: {block_size: .inf}"))
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Load(writeConfig(t, "mesher: {block_size: .nan}"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildPaletteRejectsEmptyID(t *testing.T) {
	cfg := Default()
	cfg.Palette = append(cfg.Palette, registryEntry(0))
	_, err := cfg.BuildPalette()
	assert.Error(t, err)
}

func TestWorkersAreClamped(t *testing.T) {
	p := PoolConfig{Workers: 1000}
	assert.Equal(t, 64, p.GetWorkers())

	t.Setenv("VOXELMESH_WORKERS", "5")
	p = PoolConfig{}
	assert.Equal(t, 5, p.GetWorkers())
}

func registryEntry(id voxel.Type) registry.Definition {
	return registry.Definition{ID: id, Name: "bad"}
}
