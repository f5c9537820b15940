package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/registry"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPath names the config file when Load is given an empty path.
const EnvPath = "VOXELMESH_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the YAML configuration.
type Config struct {
	Mesher  MesherConfig          `yaml:"mesher"`
	Pool    PoolConfig            `yaml:"pool"`
	Atlas   atlas.Grid            `yaml:"atlas"`
	Log     LogConfig             `yaml:"log"`
	Source  SourceConfig          `yaml:"source"`
	Palette []registry.Definition `yaml:"palette"`
}

type MesherConfig struct {
	// Kind is "greedy" or "culled".
	Kind         string  `yaml:"kind"`
	BlockSize    float32 `yaml:"block_size"`
	ParallelAxes bool    `yaml:"parallel_axes"`
}

type PoolConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mesher: MesherConfig{Kind: "greedy", BlockSize: 1},
		Pool:   PoolConfig{Workers: runtime.NumCPU(), QueueSize: 64},
		Atlas:  atlas.Grid{Columns: 4, Rows: 4},
		Log:    LogConfig{Level: "info", Format: "text"},
		Source: defaultSource(),
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to $VOXELMESH_CONFIG,
// and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, cfg.Validate()
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section and clamps the pool to sane values.
func (c *Config) Validate() error {
	switch c.Mesher.Kind {
	case "greedy", "culled":
	default:
		return fmt.Errorf("%w: mesher.kind %q", ErrInvalid, c.Mesher.Kind)
	}
	if bs := c.Mesher.BlockSize; bs < 0 || math32.IsNaN(bs) || math32.IsInf(bs, 0) {
		return fmt.Errorf("%w: mesher.block_size %v", ErrInvalid, c.Mesher.BlockSize)
	}
	if err := c.Atlas.Validate(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}

	c.Pool.Workers = c.Pool.GetWorkers()
	c.Pool.QueueSize = clamp(c.Pool.QueueSize, 1, 4096)
	return nil
}

// GetWorkers returns the worker count with priority config -> $VOXELMESH_WORKERS ->
// number of CPUs, clamped to [1, 64].
func (p *PoolConfig) GetWorkers() int {
	n := p.Workers
	if n <= 0 {
		n = runtime.NumCPU()
		if env := os.Getenv("VOXELMESH_WORKERS"); env != "" {
			if v, err := strconv.Atoi(env); err == nil && v > 0 {
				n = v
			}
		}
	}
	return clamp(n, 1, 64)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Logger builds a logrus logger from the log section.
func (l LogConfig) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	log := logrus.New()
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// BuildPalette returns the stock palette with the configured definitions applied on top.
func (c *Config) BuildPalette() (*registry.Palette, error) {
	p := registry.Default()
	for _, def := range c.Palette {
		if err := p.Register(def); err != nil {
			return nil, fmt.Errorf("config: palette entry %q: %w", def.Name, err)
		}
	}
	return p, nil
}

// NewMesher builds the configured mesher over tiles.
func (c *Config) NewMesher(tiles meshing.TileLookup) meshing.Mesher {
	opts := meshing.Options{BlockSize: c.Mesher.BlockSize, Tiles: tiles}
	if c.Mesher.Kind == "culled" {
		return &meshing.Culled{Options: opts}
	}
	return &meshing.Greedy{Options: opts, ParallelAxes: c.Mesher.ParallelAxes}
}
