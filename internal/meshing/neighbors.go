package meshing

import "voxelmesh/internal/voxel"

// Neighborhood samples the six face-adjacent chunks of a grid with dimensions Dims.
// Missing neighbors read as empty. All neighbors must share Dims.
type Neighborhood struct {
	Dims voxel.Dims
	// Indexed by voxel.Face: the chunk lying in that direction.
	Chunks [6]*voxel.Grid
}

// At maps a coordinate just outside the centre chunk into the adjacent chunk. Only
// coordinates that leave the chunk across exactly one face resolve to a neighbor;
// edge and corner positions are never needed for face culling and read as empty.
func (n *Neighborhood) At(x, y, z int) voxel.Type {
	p := [3]int{x, y, z}
	face, found := voxel.Face(0), false
	for d := 0; d < 3; d++ {
		size := n.Dims.Axis(d)
		switch {
		case p[d] < 0:
			if found {
				return voxel.Empty
			}
			face, found = voxel.FaceFor(d, false), true
			p[d] += size
		case p[d] >= size:
			if found {
				return voxel.Empty
			}
			face, found = voxel.FaceFor(d, true), true
			p[d] -= size
		}
	}
	if !found {
		return voxel.Empty
	}
	g := n.Chunks[face]
	if g == nil {
		return voxel.Empty
	}
	return g.At(p[0], p[1], p[2])
}
