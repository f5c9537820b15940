package voxel

import "fmt"

// Type is a block-type code stored per voxel.
type Type uint8

const (
	Empty Type = iota
	Grass
	Dirt
	Stone
	OakLog
)

// IsSolid reports whether the voxel produces faces. Every non-empty code is solid.
func (t Type) IsSolid() bool {
	return t != Empty
}

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Stone:
		return "stone"
	case OakLog:
		return "oak_log"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}
