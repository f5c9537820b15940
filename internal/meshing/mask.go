package meshing

import "voxelmesh/internal/voxel"

// maskCell records one unit of a slice boundary: the type of the solid voxel and which
// side of the plane it sits on. sign is +1 when the solid voxel is on the negative side
// (so the face points toward +axis) and -1 otherwise. The zero value is the empty cell;
// real cells never carry sign 0.
type maskCell struct {
	typ  voxel.Type
	sign int8
}

func (c maskCell) empty() bool {
	return c.sign == 0
}

// boundaryCell classifies the boundary between current (just below the plane) and
// compare (just above it). currentOff/compareOff mark voxels that lie outside the chunk:
// they may hide a face but never produce one.
func boundaryCell(current, compare voxel.Type, currentOff, compareOff bool) maskCell {
	cs, ps := current.IsSolid(), compare.IsSolid()
	switch {
	case cs == ps:
		return maskCell{}
	case cs:
		if currentOff {
			return maskCell{}
		}
		return maskCell{typ: current, sign: 1}
	default:
		if compareOff {
			return maskCell{}
		}
		return maskCell{typ: compare, sign: -1}
	}
}

func clearMask(mask []maskCell) {
	for i := range mask {
		mask[i] = maskCell{}
	}
}
