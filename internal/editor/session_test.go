package editor

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

var lookingNorth = mgl64.Vec3{0, 0, -1}

func block(x, y, z int) *model.PlacedPart {
	return model.NewPlacedPart(catalog.PartBlock, model.Cell{X: x, Y: y, Z: z}, model.Euler{})
}

func newSession(t *testing.T, parts ...*model.PlacedPart) *Session {
	t.Helper()
	return NewSession(model.DefaultEditorConfig(), catalog.Default(), parts, zerolog.Nop())
}

// assertGridsConsistent checks the grids against the state machine.
func assertGridsConsistent(t *testing.T, s *Session) {
	t.Helper()
	switch s.State() {
	case model.SelectionNone:
		assert.True(t, s.SelectedGrid().Empty())
	case model.SelectionActive:
		assert.False(t, s.Vacancy().Intersects(s.SelectedGrid()))
	case model.SelectionBad:
		assert.True(t, s.Vacancy().Intersects(s.SelectedGrid()))
	}
}

func TestNewSession_BuildsVacancy(t *testing.T) {
	s := newSession(t, block(1, 1, 1), block(2, 1, 1))

	assert.Equal(t, model.SelectionNone, s.State())
	assert.Equal(t, 2, s.Vacancy().Count())
	assert.True(t, s.SelectedGrid().Empty())
	assert.Equal(t, 2, s.Len())
}

func TestNewSession_AssignsMissingIDs(t *testing.T) {
	loaded := &model.PlacedPart{PartID: catalog.PartBlock, Position: model.Cell{X: 1, Y: 1, Z: 1}}
	kept := block(3, 1, 1)
	id := kept.ID

	newSession(t, loaded, kept)

	assert.Len(t, loaded.ID, 8)
	assert.Equal(t, id, kept.ID)
}

func TestSelectAndCommit(t *testing.T) {
	a, b := block(1, 1, 1), block(5, 1, 1)
	s := newSession(t, a, b)

	require.NoError(t, s.Select(a))
	assert.Equal(t, model.SelectionActive, s.State())
	assert.Equal(t, 1, s.SelectedGrid().Count())
	assert.Equal(t, 1, s.Vacancy().Count())
	assertGridsConsistent(t, s)

	require.NoError(t, s.Commit())
	assert.Equal(t, model.SelectionNone, s.State())
	assert.Equal(t, 2, s.Vacancy().Count())
}

func TestSelect_UnknownPart(t *testing.T) {
	s := newSession(t, block(1, 1, 1))
	assert.ErrorIs(t, s.Select(block(1, 1, 1)), ErrUnknownPart)
}

func TestSelectAt(t *testing.T) {
	tall := model.NewPlacedPart(catalog.PartDoubleHeightUp, model.Cell{X: 3, Y: 3, Z: 3}, model.Euler{})
	s := newSession(t, tall)

	p, err := s.SelectAt(model.Cell{X: 3, Y: 4, Z: 3})
	require.NoError(t, err)
	assert.Same(t, tall, p)
	assert.Equal(t, model.SelectionActive, s.State())

	p, err = s.SelectAt(model.Cell{X: 50, Y: 50, Z: 50})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMoveOntoOccupiedCell_BlocksCommit(t *testing.T) {
	fixed := block(10, 10, 10)
	moving := block(8, 10, 10)
	s := newSession(t, fixed, moving)
	require.NoError(t, s.Select(moving))

	_, err := s.Move(model.Cell{X: 2})
	require.NoError(t, err)
	assert.Equal(t, model.SelectionBad, s.State())
	assertGridsConsistent(t, s)

	sel, unsel := s.parts.Snapshot()
	assert.ErrorIs(t, s.Commit(), ErrSelectionBlocked)
	gotSel, gotUnsel := s.parts.Snapshot()
	assert.Equal(t, sel, gotSel)
	assert.Equal(t, unsel, gotUnsel)
	assert.Equal(t, model.SelectionBad, s.State())

	// moving clear unblocks it
	_, err = s.Move(model.Cell{Y: 1})
	require.NoError(t, err)
	assert.Equal(t, model.SelectionActive, s.State())
	assert.NoError(t, s.Commit())
}

func TestDeselect_RefusedWhileBad(t *testing.T) {
	fixed, moving := block(10, 10, 10), block(10, 10, 10)
	s := newSession(t, fixed, moving)
	require.NoError(t, s.Select(moving))
	require.Equal(t, model.SelectionBad, s.State())

	assert.ErrorIs(t, s.Deselect(moving), ErrSelectionBlocked)
	assert.True(t, s.parts.IsSelected(moving))
}

func TestDeselect(t *testing.T) {
	a, b := block(1, 1, 1), block(2, 2, 2)
	s := newSession(t, a, b)
	s.SelectAll()
	require.Equal(t, 2, s.SelectedLen())

	require.NoError(t, s.Deselect(a))
	assert.Equal(t, 1, s.SelectedLen())
	assert.True(t, s.Vacancy().Get(a.Position))
	assert.ErrorIs(t, s.Deselect(a), ErrUnknownPart)
}

func TestMove_NoSelection(t *testing.T) {
	s := newSession(t, block(1, 1, 1))
	_, err := s.Move(model.Cell{X: 1})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.False(t, s.CanUndo())
}

func TestMove_Renormalizes(t *testing.T) {
	fixed := block(20, 0, 0)
	p := block(3, 0, 0)
	s := newSession(t, fixed, p)
	require.NoError(t, s.Select(p))

	adj, err := s.Move(model.Cell{X: -5})
	require.NoError(t, err)
	assert.True(t, adj.Renormalized())
	assert.Equal(t, 0, p.Position.X)
	assert.Equal(t, 22, fixed.Position.X)
	assert.Equal(t, model.Cell{X: 7}, adj.Apply(model.Cell{X: 5}), "cursor follows the layout")
	assertGridsConsistent(t, s)
}

func TestRotate(t *testing.T) {
	p := block(12, 10, 10)
	s := newSession(t, p)
	require.NoError(t, s.Select(p))

	adj, pivot, err := s.Rotate(model.Cell{X: 10, Y: 10, Z: 10}, 0, 1, 0, lookingNorth)
	require.NoError(t, err)
	assert.False(t, adj.Renormalized())
	assert.Equal(t, model.Cell{X: 10, Y: 10, Z: 10}, pivot)
	assert.Equal(t, model.Cell{X: 10, Y: 10, Z: 8}, p.Position)
	assert.True(t, s.SelectedGrid().Get(p.Position))
}

func TestMoveAndRotate_NoOpRecordsNothing(t *testing.T) {
	p := block(12, 10, 10)
	s := newSession(t, p)
	require.NoError(t, s.Select(p))

	adj, err := s.Move(model.Cell{})
	require.NoError(t, err)
	assert.False(t, adj.Renormalized())

	adj, pivot, err := s.Rotate(model.Cell{X: 10, Y: 10, Z: 10}, 4, 0, -8, lookingNorth)
	require.NoError(t, err)
	assert.False(t, adj.Renormalized())
	assert.Equal(t, model.Cell{X: 10, Y: 10, Z: 10}, pivot)

	assert.Equal(t, model.Cell{X: 12, Y: 10, Z: 10}, p.Position)
	assert.False(t, s.CanUndo())
}

func TestRotate_NoSelection(t *testing.T) {
	s := newSession(t)
	_, pivot, err := s.Rotate(model.Cell{X: 1}, 1, 0, 0, lookingNorth)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, model.Cell{X: 1}, pivot)
}

func TestDelete(t *testing.T) {
	a, b := block(1, 1, 1), block(2, 2, 2)
	s := newSession(t, a, b)
	require.NoError(t, s.Select(b))

	n, err := s.Delete()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, model.SelectionNone, s.State())
	assert.False(t, s.Vacancy().Get(b.Position))

	_, err = s.Delete()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestDuplicate(t *testing.T) {
	a := block(5, 5, 5)
	s := newSession(t, a)
	require.NoError(t, s.Select(a))

	_, err := s.Duplicate(model.Cell{X: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.parts.IsSelected(a), "original is committed")
	copies := partset.Collect(s.parts, model.ScopeSelected)
	require.Len(t, copies, 1)
	assert.NotEqual(t, a.ID, copies[0].ID)
	assert.Equal(t, model.Cell{X: 6, Y: 5, Z: 5}, copies[0].Position)
	assert.Equal(t, model.SelectionActive, s.State())
}

func TestDuplicate_InPlaceIsBad(t *testing.T) {
	a := block(5, 5, 5)
	s := newSession(t, a)
	require.NoError(t, s.Select(a))

	_, err := s.Duplicate(model.Cell{})
	require.NoError(t, err)
	assert.Equal(t, model.SelectionBad, s.State())

	_, err = s.Duplicate(model.Cell{X: 1})
	assert.ErrorIs(t, err, ErrSelectionBlocked)
}

func TestPaint(t *testing.T) {
	a, b := block(1, 1, 1), block(2, 2, 2)
	s := newSession(t, a, b)
	require.NoError(t, s.Select(a))

	require.NoError(t, s.Paint(7))
	assert.Equal(t, uint8(7), a.Color)
	assert.Equal(t, uint8(0), b.Color)
}

func TestUndoRedo_Move(t *testing.T) {
	a := block(4, 4, 4)
	s := newSession(t, a)
	require.NoError(t, s.Select(a))
	_, err := s.Move(model.Cell{Z: 3})
	require.NoError(t, err)

	require.NoError(t, s.Undo())
	parts := partset.Collect(s.parts, model.ScopeSelected)
	require.Len(t, parts, 1)
	assert.Equal(t, model.Cell{X: 4, Y: 4, Z: 4}, parts[0].Position)
	assert.Equal(t, a.ID, parts[0].ID)
	assert.True(t, s.SelectedGrid().Get(model.Cell{X: 4, Y: 4, Z: 4}))
	assert.False(t, s.SelectedGrid().Get(model.Cell{X: 4, Y: 4, Z: 7}))

	require.NoError(t, s.Redo())
	parts = partset.Collect(s.parts, model.ScopeSelected)
	assert.Equal(t, model.Cell{X: 4, Y: 4, Z: 7}, parts[0].Position)

	assert.ErrorIs(t, s.Redo(), ErrNothingToRedo)
}

func TestUndo_Empty(t *testing.T) {
	s := newSession(t, block(1, 1, 1))
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestUndo_Disabled(t *testing.T) {
	cfg := model.DefaultEditorConfig()
	cfg.HistoryDepth = 0
	a := block(1, 1, 1)
	s := NewSession(cfg, catalog.Default(), []*model.PlacedPart{a}, zerolog.Nop())
	require.NoError(t, s.Select(a))
	_, err := s.Move(model.Cell{X: 1})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestSession_Bounds(t *testing.T) {
	s := newSession(t, block(1, 2, 3), block(9, 8, 7))
	min, max, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, model.Cell{X: 1, Y: 2, Z: 3}, min)
	assert.Equal(t, model.Cell{X: 9, Y: 8, Z: 7}, max)
}

func TestSession_LogsRenormalization(t *testing.T) {
	var buf bytes.Buffer
	p := block(0, 0, 0)
	s := NewSession(model.DefaultEditorConfig(), catalog.Default(), []*model.PlacedPart{p}, zerolog.New(&buf).Level(zerolog.InfoLevel))
	require.NoError(t, s.Select(p))
	buf.Reset()

	_, err := s.Move(model.Cell{Y: -2})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"adjustment":{"x":0,"y":-2,"z":0}`)
	assert.Contains(t, buf.String(), `"component":"editor"`)

	buf.Reset()
	_, err = s.Move(model.Cell{Y: 1})
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "plain moves log at debug")
}

func TestDeselectAll(t *testing.T) {
	a, b := block(1, 1, 1), block(1, 1, 1)
	s := newSession(t, a, b)
	require.NoError(t, s.Select(b))
	assert.ErrorIs(t, s.DeselectAll(), ErrSelectionBlocked)

	_, err := s.Move(model.Cell{X: 3})
	require.NoError(t, err)
	require.NoError(t, s.DeselectAll())
	assert.Equal(t, 0, s.SelectedLen())
	assert.Equal(t, 2, s.Vacancy().Count())
}
