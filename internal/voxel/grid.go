package voxel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/zeebo/xxh3"
)

var (
	// ErrInvalidDimensions is returned for chunk dimensions with a negative component.
	ErrInvalidDimensions = errors.New("voxel: invalid chunk dimensions")
	// ErrGridSize is returned when a voxel buffer does not hold exactly X*Y*Z entries.
	ErrGridSize = errors.New("voxel: grid length does not match dimensions")
)

// Dims are the chunk extents along X, Y and Z.
type Dims struct {
	X, Y, Z int
}

// Axis returns the extent along axis 0, 1 or 2.
func (d Dims) Axis(axis int) int {
	switch axis {
	case 0:
		return d.X
	case 1:
		return d.Y
	default:
		return d.Z
	}
}

// Volume is the number of voxels in the chunk.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// Empty reports whether any axis has zero extent.
func (d Dims) Empty() bool {
	return d.X == 0 || d.Y == 0 || d.Z == 0
}

// Validate rejects negative extents and extents whose volume does not fit in an int.
// Zero extents are valid and describe an empty chunk.
func (d Dims) Validate() error {
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, d.X, d.Y, d.Z)
	}
	if d.Empty() {
		return nil
	}
	if d.X > math.MaxInt/d.Y || d.X*d.Y > math.MaxInt/d.Z {
		return fmt.Errorf("%w: %dx%dx%d overflows the voxel count", ErrInvalidDimensions, d.X, d.Y, d.Z)
	}
	return nil
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// Grid is a dense chunk of voxels flattened as x + X*(y + Y*z).
// Reads outside the chunk return Empty; there is no wraparound.
type Grid struct {
	dims   Dims
	blocks []Type
}

// NewGrid allocates an all-empty grid.
func NewGrid(dims Dims) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Grid{dims: dims, blocks: make([]Type, dims.Volume())}, nil
}

// FromSlice wraps an existing buffer without copying it. The caller must not mutate
// data while a mesh build reads the grid.
func FromSlice(dims Dims, data []Type) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if len(data) != dims.Volume() {
		return nil, fmt.Errorf("%w: got %d voxels for %s (want %d)", ErrGridSize, len(data), dims, dims.Volume())
	}
	return &Grid{dims: dims, blocks: data}, nil
}

// Dims returns the chunk extents.
func (g *Grid) Dims() Dims {
	return g.dims
}

// Validate checks that the backing buffer still matches the dimensions.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrGridSize)
	}
	if err := g.dims.Validate(); err != nil {
		return err
	}
	if len(g.blocks) != g.dims.Volume() {
		return fmt.Errorf("%w: got %d voxels for %s (want %d)", ErrGridSize, len(g.blocks), g.dims, g.dims.Volume())
	}
	return nil
}

// InBounds reports whether (x, y, z) lies inside the chunk.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.dims.X && y >= 0 && y < g.dims.Y && z >= 0 && z < g.dims.Z
}

func (g *Grid) index(x, y, z int) int {
	return x + g.dims.X*(y+g.dims.Y*z)
}

// At returns the voxel at the given local coordinates, or Empty outside the chunk.
func (g *Grid) At(x, y, z int) Type {
	if !g.InBounds(x, y, z) {
		return Empty
	}
	return g.blocks[g.index(x, y, z)]
}

// Set writes a voxel. Out-of-range writes are ignored.
func (g *Grid) Set(x, y, z int, t Type) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.blocks[g.index(x, y, z)] = t
}

// Fill sets every voxel in the half-open box [x0,x1)×[y0,y1)×[z0,z1), clipped to the chunk.
func (g *Grid) Fill(x0, y0, z0, x1, y1, z1 int, t Type) {
	x0, x1 = max(x0, 0), min(x1, g.dims.X)
	y0, y1 = max(y0, 0), min(y1, g.dims.Y)
	z0, z1 = max(z0, 0), min(z1, g.dims.Z)
	for z := z0; z < z1; z++ {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.blocks[g.index(x, y, z)] = t
			}
		}
	}
}

// Data exposes the flat backing buffer.
func (g *Grid) Data() []Type {
	return g.blocks
}

// Clone returns a deep copy, suitable as a snapshot handed to a background build.
func (g *Grid) Clone() *Grid {
	blocks := make([]Type, len(g.blocks))
	copy(blocks, g.blocks)
	return &Grid{dims: g.dims, blocks: blocks}
}

// SolidCount returns the number of non-empty voxels.
func (g *Grid) SolidCount() int {
	n := 0
	for _, b := range g.blocks {
		if b.IsSolid() {
			n++
		}
	}
	return n
}

// Hash fingerprints the dimensions and contents. Two grids with equal hashes are treated
// as the same chunk version by the mesh cache.
func (g *Grid) Hash() uint64 {
	var header [24]byte
	binary.LittleEndian.PutUint64(header[0:], uint64(g.dims.X))
	binary.LittleEndian.PutUint64(header[8:], uint64(g.dims.Y))
	binary.LittleEndian.PutUint64(header[16:], uint64(g.dims.Z))

	h := xxh3.New()
	_, _ = h.Write(header[:])
	if len(g.blocks) > 0 {
		// Type is a single byte, so the buffer can be hashed in place.
		_, _ = h.Write(unsafe.Slice((*byte)(unsafe.Pointer(&g.blocks[0])), len(g.blocks)))
	}
	return h.Sum64()
}
