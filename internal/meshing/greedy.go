package meshing

import (
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/voxel"

	"golang.org/x/sync/errgroup"
)

// Greedy merges coplanar faces of the same type and orientation into maximal rectangles.
// It keeps no state between calls, so one value may be shared by concurrent builds.
type Greedy struct {
	Options
	// ParallelAxes sweeps X, Y and Z on separate goroutines. The result is identical to
	// the sequential sweep.
	ParallelAxes bool
}

// Build meshes a flat voxel buffer with the stock palette.
func Build(dims voxel.Dims, data []voxel.Type, blockSize float32) (*Mesh, error) {
	g, err := voxel.FromSlice(dims, data)
	if err != nil {
		return nil, err
	}
	return (&Greedy{Options: Options{BlockSize: blockSize}}).Build(g)
}

// Build produces a fresh mesh for g.
func (m *Greedy) Build(g *voxel.Grid) (*Mesh, error) {
	out := &Mesh{}
	if err := m.BuildInto(g, out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuildInto clears dst and refills it. On error dst is left untouched.
func (m *Greedy) BuildInto(g *voxel.Grid, dst *Mesh) error {
	defer profiling.Track("meshing.Greedy.Build")()

	blockSize, err := m.prepare(g)
	if err != nil {
		return err
	}
	dst.Reset()
	if g.Dims().Empty() {
		return nil
	}
	tiles := m.tiles()

	if !m.ParallelAxes {
		for d := 0; d < 3; d++ {
			m.sweepAxis(g, d, blockSize, tiles, dst)
		}
		return nil
	}

	var parts [3]Mesh
	var eg errgroup.Group
	for d := 0; d < 3; d++ {
		eg.Go(func() error {
			m.sweepAxis(g, d, blockSize, tiles, &parts[d])
			return nil
		})
	}
	// sweepAxis cannot fail once the grid is validated.
	_ = eg.Wait()
	for d := range parts {
		dst.Append(&parts[d])
	}
	return nil
}

// sweepAxis walks every plane perpendicular to axis d, including both chunk faces, and
// greedily merges each plane's boundary mask into quads.
func (m *Greedy) sweepAxis(g *voxel.Grid, d int, blockSize float32, tiles TileLookup, out *Mesh) {
	dims := g.Dims()
	u, v := (d+1)%3, (d+2)%3
	nd, nu, nv := dims.Axis(d), dims.Axis(u), dims.Axis(v)

	mask := make([]maskCell, nu*nv)
	var x [3]int
	for s := 0; s <= nd; s++ {
		// Compute the mask for plane s: voxel s-1 against voxel s along d.
		n := 0
		for x[v] = 0; x[v] < nv; x[v]++ {
			for x[u] = 0; x[u] < nu; x[u]++ {
				x[d] = s - 1
				current, currentOff := m.sample(g, x)
				x[d] = s
				compare, compareOff := m.sample(g, x)
				mask[n] = boundaryCell(current, compare, currentOff, compareOff)
				n++
			}
		}

		// Greedy merge over the mask, v rows outer and u inner.
		n = 0
		for j := 0; j < nv; j++ {
			for i := 0; i < nu; {
				c := mask[n]
				if c.empty() {
					i++
					n++
					continue
				}
				// compute width
				w := 1
				for i+w < nu && mask[n+w] == c {
					w++
				}
				// compute height: every cell of the next row under [i, i+w) must match
				h := 1
			grow:
				for ; j+h < nv; h++ {
					row := n + h*nu
					for k := 0; k < w; k++ {
						if mask[row+k] != c {
							break grow
						}
					}
				}

				out.addQuad(d, s, i, j, w, h, c, blockSize, tiles)

				// zero-out mask region
				for l := 0; l < h; l++ {
					clearMask(mask[n+l*nu : n+l*nu+w])
				}
				i += w
				n += w
			}
		}
	}
}
