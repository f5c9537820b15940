package atlas

import (
	"errors"
	"testing"

	"voxelmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestUVsTileAcrossMergedQuad(t *testing.T) {
	uvs := UVs(7, 4, 2, voxel.FaceNorth)
	assert.Equal(t, mgl32.Vec3{0, 0, 7}, uvs[0])
	assert.Equal(t, mgl32.Vec3{4, 0, 7}, uvs[1])
	assert.Equal(t, mgl32.Vec3{0, 2, 7}, uvs[2])
	assert.Equal(t, mgl32.Vec3{4, 2, 7}, uvs[3])
}

func TestUVsSwapAxesForXAndYFaces(t *testing.T) {
	for _, f := range []voxel.Face{voxel.FaceEast, voxel.FaceWest, voxel.FaceTop, voxel.FaceBottom} {
		uvs := UVs(3, 4, 2, f)
		assert.Equal(t, mgl32.Vec3{0, 4, 3}, uvs[1], f.String())
		assert.Equal(t, mgl32.Vec3{2, 0, 3}, uvs[2], f.String())
		assert.Equal(t, mgl32.Vec3{2, 4, 3}, uvs[3], f.String())
	}
}

func TestUVsUnitQuadSpansOneTile(t *testing.T) {
	for _, f := range voxel.Faces {
		uvs := UVs(0, 1, 1, f)
		assert.Equal(t, mgl32.Vec3{1, 1, 0}, uvs[3], f.String())
	}
}

func TestGridRegion(t *testing.T) {
	g := Grid{Columns: 4, Rows: 2}
	lo, hi := g.Region(5)
	assert.InDelta(t, 0.25, lo.X(), 1e-6)
	assert.InDelta(t, 0.5, lo.Y(), 1e-6)
	assert.InDelta(t, 0.5, hi.X(), 1e-6)
	assert.InDelta(t, 1.0, hi.Y(), 1e-6)

	wlo, _ := g.Region(13)
	assert.Equal(t, lo, wlo)
}

func TestGridSampleRepeatsInsideTile(t *testing.T) {
	g := Grid{Columns: 4, Rows: 4}
	a := g.Sample(mgl32.Vec3{0.5, 0.5, 6})
	b := g.Sample(mgl32.Vec3{3.5, 2.5, 6})
	assert.InDelta(t, a.X(), b.X(), 1e-6)
	assert.InDelta(t, a.Y(), b.Y(), 1e-6)

	lo, hi := g.Region(6)
	assert.True(t, a.X() > lo.X() && a.X() < hi.X())
	assert.True(t, a.Y() > lo.Y() && a.Y() < hi.Y())
}

func TestGridValidate(t *testing.T) {
	assert.NoError(t, Grid{Columns: 16, Rows: 16}.Validate())
	assert.True(t, errors.Is(Grid{Columns: 0, Rows: 16}.Validate(), ErrLayout))
}
