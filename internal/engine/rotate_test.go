package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lookingNorth = mgl64.Vec3{0, 0, -1}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestNewViewBasis_Horizontal(t *testing.T) {
	b := NewViewBasis(lookingNorth, 0.9)

	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Forward)
	assertVec(t, mgl64.Vec3{1, 0, 0}, b.Right)
	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Dominant)
	assert.False(t, b.NearlyVertical)
}

func TestNewViewBasis_MostlyX(t *testing.T) {
	b := NewViewBasis(mgl64.Vec3{-3, 1, 0.5}, 0.9)

	assertVec(t, mgl64.Vec3{-1, 0, 0}, b.Forward)
	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Right)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, b.Dominant)
}

func TestNewViewBasis_NearlyVertical(t *testing.T) {
	b := NewViewBasis(mgl64.Vec3{0.1, -0.99, 0.05}, 0.9)

	assert.True(t, b.NearlyVertical)
	assertVec(t, mgl64.Vec3{1, 0, 0}, b.Forward)
	assertVec(t, mgl64.Vec3{0, -1, 0}, b.Dominant)
}

func TestNewViewBasis_ZeroFacing(t *testing.T) {
	b := NewViewBasis(mgl64.Vec3{}, 0.9)
	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Forward)
}

func TestViewBasis_RotationAxes(t *testing.T) {
	b := NewViewBasis(lookingNorth, 0.9)

	// forward: about right (+X), +Y goes to +Z
	assertVec(t, mgl64.Vec3{0, 0, 1}, b.Rotation(1, 0, 0).Rotate(mgl64.Vec3{0, 1, 0}))
	// side: about +Y, +X goes to -Z
	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Rotation(0, 1, 0).Rotate(mgl64.Vec3{1, 0, 0}))
	// roll: about -Z, +X goes to -Y
	assertVec(t, mgl64.Vec3{0, -1, 0}, b.Rotation(0, 0, 1).Rotate(mgl64.Vec3{1, 0, 0}))

	// from above, side turns about the forward axis instead of vertical
	top := NewViewBasis(mgl64.Vec3{0, -1, -0.01}, 0.9)
	require.True(t, top.NearlyVertical)
	assertVec(t, mgl64.Vec3{0, 0, -1}, top.Forward)
	assertVec(t, mgl64.Vec3{0, -1, 0}, top.Rotation(0, 1, 0).Rotate(mgl64.Vec3{1, 0, 0}))
}

func TestViewBasis_ForwardAppliedBeforeSide(t *testing.T) {
	b := NewViewBasis(lookingNorth, 0.9)
	// forward sends +Y to +Z, side then sends +Z to +X
	assertVec(t, mgl64.Vec3{1, 0, 0}, b.Rotation(1, 1, 0).Rotate(mgl64.Vec3{0, 1, 0}))
}

func TestRotateSelection_MovesAboutPivot(t *testing.T) {
	p := block(12, 10, 10)
	set := partset.New([]*model.PlacedPart{p})
	set.Select(p)

	adj, pivot := RotateSelection(set, model.Cell{X: 10, Y: 10, Z: 10}, 0, 1, 0, NewViewBasis(lookingNorth, 0.9))

	assert.False(t, adj.Renormalized())
	assert.Equal(t, model.Cell{X: 10, Y: 10, Z: 10}, pivot)
	assert.Equal(t, model.Cell{X: 10, Y: 10, Z: 8}, p.Position)
	assert.InDelta(t, 0, p.Rotation.X, 1e-9)
	assert.InDelta(t, 1.5707963, p.Rotation.Y, 1e-6)
}

func TestRotateSelection_ReorientsFootprint(t *testing.T) {
	p := model.NewPlacedPart(catalog.PartDoubleHeightUp, model.Cell{X: 5, Y: 5, Z: 5}, model.Euler{})
	set := partset.New([]*model.PlacedPart{p})
	set.Select(p)

	RotateSelection(set, p.Position, 1, 0, 0, NewViewBasis(lookingNorth, 0.9))

	assert.Equal(t, model.Cell{X: 5, Y: 5, Z: 5}, p.Position, "part at the pivot stays put")
	assert.ElementsMatch(t, []model.Cell{{X: 5, Y: 5, Z: 6}, {X: 5, Y: 5, Z: 5}}, Cells(p, catalog.Default()))
}

func TestRotateSelection_FourQuarterTurnsIsIdentity(t *testing.T) {
	cat := catalog.Default()
	for _, steps := range [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, -1, 0}} {
		a := model.NewPlacedPart(catalog.PartDoubleHeightUp, model.Cell{X: 12, Y: 10, Z: 10}, model.Euler{})
		b := model.NewPlacedPart(catalog.PartCorner, model.Cell{X: 10, Y: 13, Z: 11}, model.EulerFromDegrees(0, 90, 0))
		set := partset.New([]*model.PlacedPart{a, b})
		set.SelectAll()

		wantPos := []model.Cell{a.Position, b.Position}
		wantCells := [][]model.Cell{Cells(a, cat), Cells(b, cat)}
		wantOrient := []mgl64.Vec3{EulerToQuat(a.Rotation).Rotate(mgl64.Vec3{1, 2, 3}), EulerToQuat(b.Rotation).Rotate(mgl64.Vec3{1, 2, 3})}

		pivot := model.Cell{X: 10, Y: 10, Z: 10}
		basis := NewViewBasis(lookingNorth, 0.9)
		for i := 0; i < 4; i++ {
			var adj Adjustment
			adj, pivot = RotateSelection(set, pivot, steps[0], steps[1], steps[2], basis)
			require.False(t, adj.Renormalized())
		}

		for i, p := range []*model.PlacedPart{a, b} {
			assert.Equal(t, wantPos[i], p.Position, "steps %v part %d", steps, i)
			assert.Equal(t, wantCells[i], Cells(p, cat), "steps %v part %d", steps, i)
			got := EulerToQuat(p.Rotation).Rotate(mgl64.Vec3{1, 2, 3})
			for k := 0; k < 3; k++ {
				assert.InDelta(t, wantOrient[i][k], got[k], 1e-6)
			}
		}
	}
}

func TestRotateSelection_RenormalizesAndShiftsPivot(t *testing.T) {
	p := block(2, 10, 10)
	fixed := block(10, 0, 0)
	set := partset.New([]*model.PlacedPart{fixed, p})
	set.Select(p)

	adj, pivot := RotateSelection(set, model.Cell{X: 0, Y: 10, Z: 10}, 0, 2, 0, NewViewBasis(lookingNorth, 0.9))

	assert.Equal(t, Adjustment{X: -2}, adj)
	assert.Equal(t, model.Cell{X: 2, Y: 10, Z: 10}, pivot)
	assert.Equal(t, model.Cell{X: 0, Y: 10, Z: 10}, p.Position)
	assert.Equal(t, model.Cell{X: 12, Y: 0, Z: 0}, fixed.Position)
}

func TestRotateSelection_NoStepsIsNoop(t *testing.T) {
	p := block(3, 3, 3)
	p.Rotation = model.EulerFromDegrees(10, 20, 30)
	before := *p
	set := partset.New([]*model.PlacedPart{p})
	set.Select(p)

	adj, pivot := RotateSelection(set, model.Cell{}, 0, 4, -4, NewViewBasis(lookingNorth, 0.9))

	assert.False(t, adj.Renormalized())
	assert.Equal(t, model.Cell{}, pivot)
	assert.Equal(t, before, *p)
}
