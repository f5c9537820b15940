package meshing

import (
	"fmt"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/voxel"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv.uvw)
const VertexStride = 9

// Quad is one emitted rectangle. Corners are bottom-left, bottom-right, top-left and
// top-right in the quad's own basis: "right" runs along the first in-plane axis
// ((Axis+1)%3) for Width voxels and "top" along the second ((Axis+2)%3) for Height voxels.
type Quad struct {
	Corners [4]mgl32.Vec3
	Normal  mgl32.Vec3
	UVs     [4]mgl32.Vec3

	Width, Height int
	Type          voxel.Type
	Face          voxel.Face
	Tile          int

	// Integer placement: the quad lies on plane Slice of Axis, starting at voxel
	// coordinates (U, V) on the two in-plane axes.
	Axis, Slice, U, V int
}

// Mesh holds the geometry for one chunk. Vertices, Normals and UVs are parallel
// (four entries per quad); Indices holds two triangles (six entries) per quad.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec3
	Indices  []uint32
	Quads    []Quad
}

// QuadCount returns the number of emitted quads.
func (m *Mesh) QuadCount() int {
	return len(m.Quads)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Quads) == 0
}

// Reset clears the buffers while keeping their capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Quads = m.Quads[:0]
}

// Append copies other onto the end of m, rebasing its indices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
	m.Quads = append(m.Quads, other.Quads...)
}

// Validate checks the buffer-length and index-range invariants.
func (m *Mesh) Validate() error {
	q := len(m.Quads)
	if len(m.Vertices) != 4*q || len(m.Normals) != 4*q || len(m.UVs) != 4*q {
		return fmt.Errorf("meshing: %d quads but %d vertices, %d normals, %d uvs",
			q, len(m.Vertices), len(m.Normals), len(m.UVs))
	}
	if len(m.Indices) != 6*q {
		return fmt.Errorf("meshing: %d quads but %d indices", q, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("meshing: index %d at %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Interleaved packs every vertex as pos+normal+uv for a single GPU buffer. Draw it
// with Indices.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for i, p := range m.Vertices {
		n, uv := m.Normals[i], m.UVs[i]
		out = append(out,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			uv[0], uv[1], uv[2],
		)
	}
	return out
}

// Bounds returns the axis-aligned box enclosing every vertex, or a zero box for an
// empty mesh.
func (m *Mesh) Bounds() cube.BBox {
	if len(m.Vertices) == 0 {
		return cube.BBox{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, p := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// quadWinding holds the two-triangle index pattern over BL=0, BR=1, TL=2, TR=3.
// Triangles are counter-clockwise when seen from the side the normal points to.
var quadWinding = [2][6]uint32{
	{0, 3, 1, 0, 2, 3}, // normal toward -axis
	{0, 1, 3, 0, 3, 2}, // normal toward +axis
}

// addQuad emits a w×h quad lying on plane s of axis d, whose lower corner sits at
// (i, j) on the in-plane axes.
func (m *Mesh) addQuad(d, s, i, j, w, h int, c maskCell, blockSize float32, tiles TileLookup) {
	u, v := (d+1)%3, (d+2)%3

	var origin [3]int
	origin[d], origin[u], origin[v] = s, i, j

	corner := func(du, dv int) mgl32.Vec3 {
		p := origin
		p[u] += du
		p[v] += dv
		// shift by -0.5 so voxel centers land on integer positions
		return mgl32.Vec3{
			(float32(p[0]) - 0.5) * blockSize,
			(float32(p[1]) - 0.5) * blockSize,
			(float32(p[2]) - 0.5) * blockSize,
		}
	}

	face := voxel.FaceFor(d, c.sign > 0)
	tile := tiles.Tile(c.typ, face)
	q := Quad{
		Corners: [4]mgl32.Vec3{corner(0, 0), corner(w, 0), corner(0, h), corner(w, h)},
		Normal:  face.Normal(),
		UVs:     atlas.UVs(tile, w, h, face),
		Width:   w,
		Height:  h,
		Type:    c.typ,
		Face:    face,
		Tile:    tile,
		Axis:    d,
		Slice:   s,
		U:       i,
		V:       j,
	}

	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, q.Corners[:]...)
	m.Normals = append(m.Normals, q.Normal, q.Normal, q.Normal, q.Normal)
	m.UVs = append(m.UVs, q.UVs[:]...)

	winding := quadWinding[0]
	if c.sign > 0 {
		winding = quadWinding[1]
	}
	for _, k := range winding {
		m.Indices = append(m.Indices, base+k)
	}
	m.Quads = append(m.Quads, q)
}
