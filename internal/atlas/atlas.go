// Package atlas turns tile indices into texture coordinates for merged quads.
//
// Coordinates are expressed in tile units: a quad that spans w×h voxels gets UVs
// running from 0 to w and 0 to h, and the third component carries the tile index as a
// texture-array layer. Sampling with a repeating wrap mode therefore tiles the texture
// across the quad instead of stretching one tile over it.
package atlas

import (
	"errors"
	"fmt"

	"voxelmesh/internal/voxel"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrLayout is returned for an atlas with no columns or rows.
var ErrLayout = errors.New("atlas: columns and rows must be positive")

// UVs returns the texture coordinates for the corners of a w×h quad in
// bottom-left, bottom-right, top-left, top-right order (the quad's own u/v basis).
//
// For X and Y faces the quad's first in-plane axis is Y and Z respectively, so width
// and height are swapped onto the texture axes. That keeps world-up as texture V on
// every side face and X as texture U on top and bottom faces.
func UVs(tile, w, h int, face voxel.Face) [4]mgl32.Vec3 {
	layer := float32(tile)
	fw, fh := float32(w), float32(h)
	if face.Axis() == 2 {
		return [4]mgl32.Vec3{
			{0, 0, layer},
			{fw, 0, layer},
			{0, fh, layer},
			{fw, fh, layer},
		}
	}
	return [4]mgl32.Vec3{
		{0, 0, layer},
		{0, fw, layer},
		{fh, 0, layer},
		{fh, fw, layer},
	}
}

// Grid describes a 2D atlas image split into Columns×Rows equally sized tiles,
// numbered row-major from the top-left corner.
type Grid struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Validate checks the layout.
func (g Grid) Validate() error {
	if g.Columns <= 0 || g.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrLayout, g.Columns, g.Rows)
	}
	return nil
}

// Tiles is the number of tiles the atlas holds.
func (g Grid) Tiles() int {
	return g.Columns * g.Rows
}

// Region returns the normalised rectangle occupied by tile. Tiles past the end of the
// atlas wrap around to the start.
func (g Grid) Region(tile int) (min, max mgl32.Vec2) {
	n := g.Tiles()
	if n <= 0 {
		return mgl32.Vec2{}, mgl32.Vec2{}
	}
	tile %= n
	if tile < 0 {
		tile += n
	}
	col, row := tile%g.Columns, tile/g.Columns
	sw, sh := 1/float32(g.Columns), 1/float32(g.Rows)
	min = mgl32.Vec2{float32(col) * sw, float32(row) * sh}
	return min, min.Add(mgl32.Vec2{sw, sh})
}

// Sample maps a tiled UV produced by UVs into the atlas image, the same way a shader
// would with fract(uv) inside the tile's region.
func (g Grid) Sample(uv mgl32.Vec3) mgl32.Vec2 {
	lo, hi := g.Region(int(uv.Z()))
	fu := uv.X() - math32.Floor(uv.X())
	fv := uv.Y() - math32.Floor(uv.Y())
	return mgl32.Vec2{
		lo.X() + fu*(hi.X()-lo.X()),
		lo.Y() + fv*(hi.Y()-lo.Y()),
	}
}
