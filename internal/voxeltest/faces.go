package voxeltest

import (
	"fmt"

	"voxelmesh/internal/voxel"
)

// UnitFace is one visible face of one voxel.
type UnitFace struct {
	X, Y, Z int
	Face    voxel.Face
	Type    voxel.Type
}

func (f UnitFace) String() string {
	return fmt.Sprintf("%s face of %s at (%d,%d,%d)", f.Face, f.Type, f.X, f.Y, f.Z)
}

// FaceSet counts how often each unit face was produced. A correct mesh covers every
// visible face exactly once.
type FaceSet map[UnitFace]int

// Sampler resolves voxels outside the grid. Nil means everything outside is empty.
type Sampler func(x, y, z int) voxel.Type

// BruteForce lists every visible face of every solid voxel in g by checking its six
// neighbors one at a time.
func BruteForce(g *voxel.Grid, outside Sampler) FaceSet {
	dims := g.Dims()
	set := make(FaceSet)
	for z := 0; z < dims.Z; z++ {
		for y := 0; y < dims.Y; y++ {
			for x := 0; x < dims.X; x++ {
				t := g.At(x, y, z)
				if !t.IsSolid() {
					continue
				}
				for _, face := range voxel.Faces {
					p := [3]int{x, y, z}
					if face.Positive() {
						p[face.Axis()]++
					} else {
						p[face.Axis()]--
					}
					nb := g.At(p[0], p[1], p[2])
					if !g.InBounds(p[0], p[1], p[2]) && outside != nil {
						nb = outside(p[0], p[1], p[2])
					}
					if nb.IsSolid() {
						continue
					}
					set[UnitFace{X: x, Y: y, Z: z, Face: face, Type: t}]++
				}
			}
		}
	}
	return set
}

// Duplicates returns the faces counted more than once.
func (s FaceSet) Duplicates() []UnitFace {
	var out []UnitFace
	for f, n := range s {
		if n > 1 {
			out = append(out, f)
		}
	}
	return out
}
