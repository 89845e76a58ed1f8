// Package editor ties the part set, the two occupancy grids and the
// selection state machine into one editing session.
//
// A Session is driven by a single editor loop and is not safe for
// concurrent use. Every operation rebuilds the grids before returning, so
// readers never observe a half-built grid.
package editor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/engine"
	"github.com/piwi3910/voxedit/internal/grid"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

var (
	ErrSelectionBlocked = errors.New("selection overlaps other parts")
	ErrNoSelection      = errors.New("nothing selected")
	ErrUnknownPart      = errors.New("part is not in this session")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
)

// Session is one loaded vehicle being edited.
type Session struct {
	cfg      model.EditorConfig
	eng      *engine.Engine
	parts    *partset.PartSet
	vacancy  *grid.Grid
	selected *grid.Grid
	state    model.SelectionState
	history  *History
	log      zerolog.Logger
}

// NewSession takes ownership of parts, all initially unselected, and builds
// both grids. Parts loaded without an instance ID are given one.
func NewSession(cfg model.EditorConfig, cat *catalog.Catalog, parts []*model.PlacedPart, log zerolog.Logger) *Session {
	for _, p := range parts {
		if p != nil && p.ID == "" {
			p.ID = model.NewInstanceID()
		}
	}
	s := &Session{
		cfg:      cfg,
		eng:      engine.New(cat),
		parts:    partset.New(parts),
		vacancy:  grid.New(),
		selected: grid.New(),
		history:  NewHistory(cfg.HistoryDepth),
		log:      log.With().Str("component", "editor").Logger(),
	}
	s.refresh()
	s.log.Info().Int("parts", s.parts.Len()).Msg("Session loaded")
	return s
}

// State returns the current selection state.
func (s *Session) State() model.SelectionState { return s.state }

// Vacancy returns the grid of unselected part cells. Callers must not
// modify it.
func (s *Session) Vacancy() *grid.Grid { return s.vacancy }

// SelectedGrid returns the grid of selected part cells. Callers must not
// modify it.
func (s *Session) SelectedGrid() *grid.Grid { return s.selected }

// Parts starts an enumeration of the session's parts.
func (s *Session) Parts(scope model.Scope) *partset.Enumerator {
	return partset.NewEnumerator(s.parts, scope)
}

// Len returns the number of parts in the session.
func (s *Session) Len() int { return s.parts.Len() }

// SelectedLen returns the number of selected parts.
func (s *Session) SelectedLen() int { return s.parts.SelectedLen() }

// Catalog returns the catalog the session resolves footprints with.
func (s *Session) Catalog() *catalog.Catalog { return s.eng.Catalog }

// PartAt returns the part occupying cell, or nil.
func (s *Session) PartAt(cell model.Cell) *model.PlacedPart {
	return s.eng.FindPartAt(s.parts, s.vacancy, s.selected, cell)
}

// Bounds returns the bounding box of every occupied cell.
func (s *Session) Bounds() (min, max model.Cell, ok bool) {
	return s.eng.Bounds(s.parts)
}

// Select adds p to the selection.
func (s *Session) Select(p *model.PlacedPart) error {
	if s.parts.IsSelected(p) {
		return nil
	}
	if !s.parts.Select(p) {
		return ErrUnknownPart
	}
	s.refresh()
	s.log.Debug().Str("part", p.ID).Stringer("state", s.state).Msg("Selected part")
	return nil
}

// SelectAt selects the part occupying cell. It returns nil when the cell
// is empty.
func (s *Session) SelectAt(cell model.Cell) (*model.PlacedPart, error) {
	p := s.PartAt(cell)
	if p == nil {
		return nil, nil
	}
	return p, s.Select(p)
}

// SelectAll selects every part.
func (s *Session) SelectAll() {
	s.parts.SelectAll()
	s.refresh()
	s.log.Debug().Int("selected", s.parts.SelectedLen()).Msg("Selected all parts")
}

// Deselect returns p to the unselected parts. It is refused while the
// selection overlaps, since the vacancy grid must stay collision free.
func (s *Session) Deselect(p *model.PlacedPart) error {
	if s.state == model.SelectionBad {
		return ErrSelectionBlocked
	}
	if !s.parts.Deselect(p) {
		return ErrUnknownPart
	}
	s.refresh()
	s.log.Debug().Str("part", p.ID).Stringer("state", s.state).Msg("Deselected part")
	return nil
}

// Commit merges the selection into the unselected parts. It is refused
// while the selection overlaps; the part set is then left unchanged.
func (s *Session) Commit() error {
	switch s.state {
	case model.SelectionNone:
		return nil
	case model.SelectionBad:
		s.log.Warn().Int("selected", s.parts.SelectedLen()).Msg("Commit refused, selection overlaps")
		return ErrSelectionBlocked
	}
	n := s.parts.SelectedLen()
	s.parts.MergeSelection()
	s.refresh()
	s.log.Debug().Int("parts", n).Msg("Committed selection")
	return nil
}

// DeselectAll is Commit under the name the editor binds to its clear key.
func (s *Session) DeselectAll() error { return s.Commit() }

// Move shifts the selection by delta. The returned adjustment is non-zero
// when the assembly was renormalized; external anchors such as the cursor
// should be passed through Adjustment.Apply.
func (s *Session) Move(delta model.Cell) (engine.Adjustment, error) {
	if s.parts.SelectedLen() == 0 {
		return engine.Adjustment{}, ErrNoSelection
	}
	if delta == (model.Cell{}) {
		return engine.Adjustment{}, nil
	}
	s.history.Push(MakeSnapshot(s.parts, "Move"))

	adj := engine.MoveSelection(s.parts, delta)
	s.refresh()
	s.logAdjustment(adj).Dict("delta", cellDict(delta)).Msg("Moved selection")
	return adj, nil
}

// Rotate turns the selection by quarter-turn steps about pivot, relative to
// the camera facing. It returns the adjustment and the pivot shifted by it.
func (s *Session) Rotate(pivot model.Cell, forward, side, roll int, facing mgl64.Vec3) (engine.Adjustment, model.Cell, error) {
	if s.parts.SelectedLen() == 0 {
		return engine.Adjustment{}, pivot, ErrNoSelection
	}
	if forward%4 == 0 && side%4 == 0 && roll%4 == 0 {
		return engine.Adjustment{}, pivot, nil
	}
	s.history.Push(MakeSnapshot(s.parts, "Rotate"))

	basis := engine.NewViewBasis(facing, s.cfg.VerticalThreshold)
	adj, pivot := engine.RotateSelection(s.parts, pivot, forward, side, roll, basis)
	s.refresh()
	s.logAdjustment(adj).
		Int("forward", forward).Int("side", side).Int("roll", roll).
		Dict("pivot", cellDict(pivot)).Msg("Rotated selection")
	return adj, pivot, nil
}

// Delete removes every selected part from the session.
func (s *Session) Delete() (int, error) {
	if s.parts.SelectedLen() == 0 {
		return 0, ErrNoSelection
	}
	s.history.Push(MakeSnapshot(s.parts, "Delete"))
	removed := s.parts.RemoveSelected()
	s.refresh()
	s.log.Debug().Int("parts", len(removed)).Msg("Deleted selection")
	return len(removed), nil
}

// Duplicate commits the selection and selects fresh copies of it shifted by
// offset. The copies usually start out overlapping, leaving the state Bad
// until they are moved clear.
func (s *Session) Duplicate(offset model.Cell) (engine.Adjustment, error) {
	switch s.state {
	case model.SelectionNone:
		return engine.Adjustment{}, ErrNoSelection
	case model.SelectionBad:
		return engine.Adjustment{}, ErrSelectionBlocked
	}
	s.history.Push(MakeSnapshot(s.parts, "Duplicate"))

	originals := partset.Collect(s.parts, model.ScopeSelected)
	copies := make([]*model.PlacedPart, len(originals))
	for i, p := range originals {
		copies[i] = p.Clone()
	}
	s.parts.MergeSelection()
	s.parts.AddSelected(copies...)

	adj := engine.MoveSelection(s.parts, offset)
	s.refresh()
	s.logAdjustment(adj).Int("parts", len(copies)).Msg("Duplicated selection")
	return adj, nil
}

// Paint sets the colour of every selected part.
func (s *Session) Paint(color uint8) error {
	if s.parts.SelectedLen() == 0 {
		return ErrNoSelection
	}
	s.history.Push(MakeSnapshot(s.parts, "Paint"))
	parts := s.Parts(model.ScopeSelected)
	for p, ok := parts.Next(); ok; p, ok = parts.Next() {
		p.Color = color
	}
	s.log.Debug().Uint8("color", color).Msg("Painted selection")
	return nil
}

// Undo restores the state before the last recorded operation. Parts are
// rebuilt from the snapshot, so previously held part pointers go stale.
func (s *Session) Undo() error {
	snap, ok := s.history.Undo(MakeSnapshot(s.parts, "Current"))
	if !ok {
		return ErrNothingToUndo
	}
	s.restore(snap)
	s.log.Debug().Str("label", snap.Label).Msg("Undo")
	return nil
}

// Redo reapplies the last undone operation.
func (s *Session) Redo() error {
	snap, ok := s.history.Redo(MakeSnapshot(s.parts, "Current"))
	if !ok {
		return ErrNothingToRedo
	}
	s.restore(snap)
	s.log.Debug().Str("label", snap.Label).Msg("Redo")
	return nil
}

// CanUndo reports whether Undo has anything to restore.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo has anything to restore.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) restore(snap Snapshot) {
	s.parts.Restore(snap.Selected, snap.Unselected)
	s.refresh()
}

// refresh rebuilds both grids and re-evaluates the selection state.
func (s *Session) refresh() {
	s.eng.RebuildGrids(s.parts, s.vacancy, s.selected)
	switch {
	case s.parts.SelectedLen() == 0:
		s.state = model.SelectionNone
	case s.eng.Overlap(s.parts, s.vacancy):
		s.state = model.SelectionBad
	default:
		s.state = model.SelectionActive
	}
}

// logAdjustment raises renormalizing edits to info level.
func (s *Session) logAdjustment(adj engine.Adjustment) *zerolog.Event {
	if adj.Renormalized() {
		return s.log.Info().Dict("adjustment", cellDict(model.Cell(adj))).Stringer("state", s.state)
	}
	return s.log.Debug().Stringer("state", s.state)
}

func cellDict(c model.Cell) *zerolog.Event {
	return zerolog.Dict().Int("x", c.X).Int("y", c.Y).Int("z", c.Z)
}
