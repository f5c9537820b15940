package registry

import (
	"errors"
	"fmt"

	"voxelmesh/internal/voxel"

	"github.com/elliotchance/orderedmap/v2"
)

// ErrEmptyID is returned when a definition tries to claim the reserved empty code.
var ErrEmptyID = errors.New("registry: block id 0 is reserved for empty")

// ErrDuplicateName is returned when a name is already taken by a different id.
var ErrDuplicateName = errors.New("registry: block name already registered")

// Definition maps a voxel type to its atlas tiles. Side covers the four horizontal faces.
type Definition struct {
	ID     voxel.Type `yaml:"id"`
	Name   string     `yaml:"name"`
	Top    int        `yaml:"top"`
	Side   int        `yaml:"side"`
	Bottom int        `yaml:"bottom"`
}

// Tile returns the tile used for the given face.
func (d Definition) Tile(face voxel.Face) int {
	switch face {
	case voxel.FaceTop:
		return d.Top
	case voxel.FaceBottom:
		return d.Bottom
	default:
		return d.Side
	}
}

// Palette is an ordered set of block definitions. Registration order is preserved so
// that listings and dumps are deterministic. A Palette must not be modified while a
// mesh build is reading it.
type Palette struct {
	defs   *orderedmap.OrderedMap[voxel.Type, Definition]
	byName map[string]voxel.Type
}

func NewPalette() *Palette {
	return &Palette{
		defs:   orderedmap.NewOrderedMap[voxel.Type, Definition](),
		byName: make(map[string]voxel.Type),
	}
}

// Default returns the stock block set.
func Default() *Palette {
	p := NewPalette()
	for _, def := range []Definition{
		{ID: voxel.Grass, Name: "grass", Top: 13, Side: 8, Bottom: 12},
		{ID: voxel.Dirt, Name: "dirt", Top: 12, Side: 12, Bottom: 12},
		{ID: voxel.Stone, Name: "stone", Top: 15, Side: 15, Bottom: 15},
		{ID: voxel.OakLog, Name: "oak_log", Top: 10, Side: 14, Bottom: 10},
	} {
		p.mustRegister(def)
	}
	return p
}

func (p *Palette) mustRegister(def Definition) {
	if err := p.Register(def); err != nil {
		panic(err)
	}
}

// Register adds def, replacing any earlier definition with the same id. A name may
// only belong to one id.
func (p *Palette) Register(def Definition) error {
	if def.ID == voxel.Empty {
		return fmt.Errorf("%w (name %q)", ErrEmptyID, def.Name)
	}
	if def.Top < 0 || def.Side < 0 || def.Bottom < 0 {
		return fmt.Errorf("registry: block %q has a negative tile index", def.Name)
	}
	if def.Name == "" {
		def.Name = def.ID.String()
	}
	if owner, ok := p.byName[def.Name]; ok && owner != def.ID {
		return fmt.Errorf("%w: %q is block %d", ErrDuplicateName, def.Name, owner)
	}
	if old, ok := p.defs.Get(def.ID); ok && old.Name != def.Name {
		delete(p.byName, old.Name)
	}
	p.defs.Set(def.ID, def)
	p.byName[def.Name] = def.ID
	return nil
}

// Lookup returns the definition for t.
func (p *Palette) Lookup(t voxel.Type) (Definition, bool) {
	return p.defs.Get(t)
}

// ByName resolves a block name to its id.
func (p *Palette) ByName(name string) (voxel.Type, bool) {
	t, ok := p.byName[name]
	return t, ok
}

// Tile returns the atlas tile for (t, face). Unknown types fall back to tile 0.
func (p *Palette) Tile(t voxel.Type, face voxel.Face) int {
	def, ok := p.defs.Get(t)
	if !ok {
		return 0
	}
	return def.Tile(face)
}

// Definitions lists the palette in registration order.
func (p *Palette) Definitions() []Definition {
	out := make([]Definition, 0, p.defs.Len())
	for el := p.defs.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Len returns the number of registered blocks.
func (p *Palette) Len() int {
	return p.defs.Len()
}
