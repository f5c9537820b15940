package voxel

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Face identifies one of the six axis-aligned face orientations of a voxel.
type Face uint8

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceNorth              // +Z
	FaceSouth              // -Z
)

// Faces lists every orientation in declaration order.
var Faces = [6]Face{FaceEast, FaceWest, FaceTop, FaceBottom, FaceNorth, FaceSouth}

// FaceFor returns the face whose normal points along axis (0=X, 1=Y, 2=Z) with the given sign.
func FaceFor(axis int, positive bool) Face {
	f := Face(axis * 2)
	if !positive {
		f++
	}
	return f
}

// Axis returns 0, 1 or 2 for faces perpendicular to X, Y or Z.
func (f Face) Axis() int {
	return int(f) / 2
}

// Positive reports whether the normal points toward the positive end of its axis.
func (f Face) Positive() bool {
	return f%2 == 0
}

// Opposite returns the face on the other side of the same axis.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Horizontal reports whether the face is one of the four side faces.
func (f Face) Horizontal() bool {
	return f.Axis() != 1
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	if f.Positive() {
		n[f.Axis()] = 1
	} else {
		n[f.Axis()] = -1
	}
	return n
}

// Cube converts to the float32-cube face. That package follows Minecraft's compass,
// where north is -Z, so FaceNorth maps to cube.FaceSouth and vice versa.
func (f Face) Cube() cube.Face {
	switch f {
	case FaceEast:
		return cube.FaceEast
	case FaceWest:
		return cube.FaceWest
	case FaceTop:
		return cube.FaceUp
	case FaceBottom:
		return cube.FaceDown
	case FaceNorth:
		return cube.FaceSouth
	default:
		return cube.FaceNorth
	}
}

// FaceFromCube is the inverse of Face.Cube.
func FaceFromCube(f cube.Face) Face {
	switch f {
	case cube.FaceEast:
		return FaceEast
	case cube.FaceWest:
		return FaceWest
	case cube.FaceUp:
		return FaceTop
	case cube.FaceDown:
		return FaceBottom
	case cube.FaceSouth:
		return FaceNorth
	default:
		return FaceSouth
	}
}

func (f Face) String() string {
	switch f {
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	default:
		return "unknown"
	}
}
