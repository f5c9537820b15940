package config

import (
	"fmt"

	"voxelmesh/internal/voxel"
)

// SourceConfig describes the synthetic chunk the dump tool meshes.
type SourceConfig struct {
	// Shape is "heightmap", "random" or "cube".
	Shape   string     `yaml:"shape"`
	Seed    int64      `yaml:"seed"`
	Density float64    `yaml:"density"` // random only
	Dims    voxel.Dims `yaml:"dims"`
}

func defaultSource() SourceConfig {
	return SourceConfig{
		Shape:   "heightmap",
		Seed:    1,
		Density: 0.3,
		Dims:    voxel.Dims{X: 16, Y: 64, Z: 16},
	}
}

// Validate checks the shape name, density and dimensions.
func (s SourceConfig) Validate() error {
	switch s.Shape {
	case "heightmap", "random", "cube":
	default:
		return fmt.Errorf("%w: source.shape %q", ErrInvalid, s.Shape)
	}
	if s.Density < 0 || s.Density > 1 {
		return fmt.Errorf("%w: source.density %v", ErrInvalid, s.Density)
	}
	return s.Dims.Validate()
}
