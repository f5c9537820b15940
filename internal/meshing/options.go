package meshing

import (
	"errors"
	"fmt"

	"voxelmesh/internal/registry"
	"voxelmesh/internal/voxel"

	"github.com/chewxy/math32"
)

// ErrBlockSize is returned for a negative, infinite or NaN block size.
var ErrBlockSize = errors.New("meshing: invalid block size")

// TileLookup maps a voxel type and face to an atlas tile. registry.Palette implements it.
type TileLookup interface {
	Tile(t voxel.Type, face voxel.Face) int
}

// NeighborSampler answers voxel lookups just outside a chunk, in that chunk's local
// coordinates (for example x == -1 or x == dims.X). It is only consulted for
// coordinates outside the grid.
type NeighborSampler interface {
	At(x, y, z int) voxel.Type
}

// NeighborFunc adapts a function to NeighborSampler.
type NeighborFunc func(x, y, z int) voxel.Type

func (f NeighborFunc) At(x, y, z int) voxel.Type {
	return f(x, y, z)
}

// Mesher builds a mesh for one chunk.
type Mesher interface {
	Build(g *voxel.Grid) (*Mesh, error)
}

var defaultTiles TileLookup = registry.Default()

// Options are shared by every mesher in this package. The zero value meshes with unit
// blocks, the stock palette and off-chunk voxels treated as empty.
type Options struct {
	// BlockSize is world units per voxel; zero means 1.
	BlockSize float32
	// Tiles selects atlas tiles; nil means the stock palette.
	Tiles TileLookup
	// Neighbors, when set, lets solid voxels in adjacent chunks hide boundary faces.
	// Without it every boundary face toward the outside of the chunk is emitted.
	Neighbors NeighborSampler
}

func (o Options) blockSize() (float32, error) {
	bs := o.BlockSize
	if bs == 0 {
		return 1, nil
	}
	if bs < 0 || math32.IsNaN(bs) || math32.IsInf(bs, 0) {
		return 0, fmt.Errorf("%w: %v", ErrBlockSize, bs)
	}
	return bs, nil
}

func (o Options) tiles() TileLookup {
	if o.Tiles == nil {
		return defaultTiles
	}
	return o.Tiles
}

// sample reads the grid, falling back to the neighbor sampler (or empty) outside it.
// The second result reports whether the coordinate was outside the chunk.
func (o Options) sample(g *voxel.Grid, p [3]int) (voxel.Type, bool) {
	if g.InBounds(p[0], p[1], p[2]) {
		return g.At(p[0], p[1], p[2]), false
	}
	if o.Neighbors == nil {
		return voxel.Empty, true
	}
	return o.Neighbors.At(p[0], p[1], p[2]), true
}

// prepare validates the grid and options ahead of any emission.
func (o Options) prepare(g *voxel.Grid) (float32, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	return o.blockSize()
}
