// Package voxeltest builds chunk fixtures and reference face sets for mesher tests.
package voxeltest

import (
	"math/rand"

	"voxelmesh/internal/voxel"

	"github.com/aquilax/go-perlin"
)

// Solids is the set of block types used by the random fixtures.
var Solids = []voxel.Type{voxel.Grass, voxel.Dirt, voxel.Stone, voxel.OakLog}

func mustGrid(dims voxel.Dims) *voxel.Grid {
	g, err := voxel.NewGrid(dims)
	if err != nil {
		panic(err)
	}
	return g
}

// Random fills a grid with solid voxels at the given density, drawing types from types
// (Solids when empty). The same seed always produces the same grid.
func Random(dims voxel.Dims, seed int64, density float64, types ...voxel.Type) *voxel.Grid {
	if len(types) == 0 {
		types = Solids
	}
	rng := rand.New(rand.NewSource(seed))
	g := mustGrid(dims)
	data := g.Data()
	for i := range data {
		if rng.Float64() < density {
			data[i] = types[rng.Intn(len(types))]
		}
	}
	return g
}

// Heightmap builds a terrain-like column grid from 2D perlin noise: a grass cap over
// three layers of dirt over stone.
func Heightmap(dims voxel.Dims, seed int64) *voxel.Grid {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	g := mustGrid(dims)
	for z := 0; z < dims.Z; z++ {
		for x := 0; x < dims.X; x++ {
			n := (noise.Noise2D(float64(x)/16, float64(z)/16) + 1) / 2
			height := min(max(int(n*float64(dims.Y)), 1), dims.Y)
			for y := 0; y < height; y++ {
				t := voxel.Stone
				switch {
				case y == height-1:
					t = voxel.Grass
				case y >= height-4:
					t = voxel.Dirt
				}
				g.Set(x, y, z, t)
			}
		}
	}
	return g
}

// Cube returns a grid of the given dims with the half-open box [lo, hi) set to t.
func Cube(dims voxel.Dims, lo, hi [3]int, t voxel.Type) *voxel.Grid {
	g := mustGrid(dims)
	g.Fill(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2], t)
	return g
}

// Solid returns a grid completely filled with t.
func Solid(dims voxel.Dims, t voxel.Type) *voxel.Grid {
	return Cube(dims, [3]int{}, [3]int{dims.X, dims.Y, dims.Z}, t)
}
