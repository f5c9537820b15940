package voxeltest

import (
	"testing"

	"voxelmesh/internal/voxel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomIsDeterministic(t *testing.T) {
	dims := voxel.Dims{X: 8, Y: 8, Z: 8}
	a := Random(dims, 42, 0.5)
	b := Random(dims, 42, 0.5)
	assert.Equal(t, a.Data(), b.Data())
	assert.NotZero(t, a.SolidCount())
}

func TestHeightmapColumnsAreCapped(t *testing.T) {
	dims := voxel.Dims{X: 16, Y: 32, Z: 16}
	g := Heightmap(dims, 7)
	for z := 0; z < dims.Z; z++ {
		for x := 0; x < dims.X; x++ {
			require.True(t, g.At(x, 0, z).IsSolid(), "column (%d,%d) has no floor", x, z)
			top := 0
			for y := 0; y < dims.Y; y++ {
				if g.At(x, y, z).IsSolid() {
					top = y
				}
			}
			assert.Equal(t, voxel.Grass, g.At(x, top, z))
		}
	}
}

func TestBruteForceSingleVoxel(t *testing.T) {
	g := Cube(voxel.Dims{X: 3, Y: 3, Z: 3}, [3]int{1, 1, 1}, [3]int{2, 2, 2}, voxel.Stone)
	set := BruteForce(g, nil)
	assert.Len(t, set, 6)
	assert.Empty(t, set.Duplicates())
}

func TestBruteForceUsesOutsideSampler(t *testing.T) {
	g := Solid(voxel.Dims{X: 1, Y: 1, Z: 1}, voxel.Dirt)
	solidBelow := func(x, y, z int) voxel.Type {
		if y < 0 {
			return voxel.Stone
		}
		return voxel.Empty
	}
	set := BruteForce(g, solidBelow)
	assert.Len(t, set, 5)
	assert.NotContains(t, set, UnitFace{Face: voxel.FaceBottom, Type: voxel.Dirt})
}
