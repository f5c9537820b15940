package meshing

import (
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/voxel"
)

// Culled emits one unit quad per visible voxel face without merging. It shares the
// buffer, winding and UV contract of Greedy and serves as a reference for it.
type Culled struct {
	Options
}

// Build produces a fresh mesh for g.
func (m *Culled) Build(g *voxel.Grid) (*Mesh, error) {
	defer profiling.Track("meshing.Culled.Build")()

	blockSize, err := m.prepare(g)
	if err != nil {
		return nil, err
	}
	out := &Mesh{}
	dims := g.Dims()
	tiles := m.tiles()

	var p [3]int
	for p[2] = 0; p[2] < dims.Z; p[2]++ {
		for p[1] = 0; p[1] < dims.Y; p[1]++ {
			for p[0] = 0; p[0] < dims.X; p[0]++ {
				t := g.At(p[0], p[1], p[2])
				if !t.IsSolid() {
					continue
				}
				for _, face := range voxel.Faces {
					d := face.Axis()
					q := p
					s := p[d]
					if face.Positive() {
						q[d]++
						s++
					} else {
						q[d]--
					}
					if nb, _ := m.sample(g, q); nb.IsSolid() {
						continue
					}
					c := maskCell{typ: t, sign: -1}
					if face.Positive() {
						c.sign = 1
					}
					u, v := (d+1)%3, (d+2)%3
					out.addQuad(d, s, p[u], p[v], 1, 1, c, blockSize, tiles)
				}
			}
		}
	}
	return out, nil
}
