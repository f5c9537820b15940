// Package export writes meshes in formats external tools can open.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"voxelmesh/internal/meshing"
	"voxelmesh/internal/voxel"
)

// WriteOBJ writes m as a Wavefront OBJ object. Texture coordinates carry the tile layer
// as their w component, and faces are grouped with a usemtl line per voxel type run.
func WriteOBJ(w io.Writer, m *meshing.Mesh, name string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	out := bufio.NewWriterSize(w, 64*1024)

	fmt.Fprintln(out, "# voxelmesh", m.QuadCount(), "quads")
	if name != "" {
		fmt.Fprintln(out, "o", name)
	}
	for _, p := range m.Vertices {
		fmt.Fprintln(out, "v", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
	}
	for _, uv := range m.UVs {
		fmt.Fprintln(out, "vt", ftoa(uv[0]), ftoa(uv[1]), ftoa(uv[2]))
	}
	for _, n := range m.Normals {
		fmt.Fprintln(out, "vn", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
	}

	current := voxel.Empty
	for k, q := range m.Quads {
		if q.Type != current {
			current = q.Type
			fmt.Fprintln(out, "usemtl", current)
		}
		idx := m.Indices[6*k : 6*k+6]
		for tri := 0; tri < 6; tri += 3 {
			// OBJ indices are 1-based; position, uv and normal share an index.
			a, b, c := idx[tri]+1, idx[tri+1]+1, idx[tri+2]+1
			fmt.Fprintf(out, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}
	return out.Flush()
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
