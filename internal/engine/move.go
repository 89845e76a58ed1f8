package engine

import (
	"errors"

	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

var ErrPartNotFound = errors.New("part not found in set")

// Adjustment records, per axis, the negative coordinate a move asked for
// before it was clamped to zero. A non-zero axis means the whole assembly
// was shifted by the opposite amount on that axis.
type Adjustment model.Cell

// Renormalized reports whether any axis shifted the assembly.
func (a Adjustment) Renormalized() bool {
	return a != Adjustment{}
}

// Add sums two adjustments.
func (a Adjustment) Add(o Adjustment) Adjustment {
	return Adjustment(model.Cell(a).Add(model.Cell(o)))
}

// Apply shifts an external anchor (cursor, pivot) the same way the other
// parts were shifted, keeping it fixed relative to the assembly.
func (a Adjustment) Apply(anchor model.Cell) model.Cell {
	return anchor.Sub(model.Cell(a))
}

// MovePart moves p by delta, one axis at a time.
//
// A coordinate landing in [0, BorderCoord) is committed. One reaching the
// border coordinate or beyond is dropped and p keeps its old value on that
// axis. A negative coordinate is clamped to zero and every other part in the
// set is pushed the opposite way on the same axis (stopping at the border),
// so the layout is preserved.
func MovePart(set *partset.PartSet, p *model.PlacedPart, delta model.Cell) (Adjustment, error) {
	if !set.Contains(p) {
		return Adjustment{}, ErrPartNotFound
	}

	var adj model.Cell
	for axis := 0; axis < 3; axis++ {
		d := delta.Axis(axis)
		if d == 0 {
			continue
		}
		next := p.Position.Axis(axis) + d
		switch {
		case next >= model.BorderCoord:
		case next >= 0:
			p.Position.SetAxis(axis, next)
		default:
			p.Position.SetAxis(axis, 0)
			adj.SetAxis(axis, next)
			shiftOthers(set, p, axis, -next)
		}
	}
	return Adjustment(adj), nil
}

// shiftOthers adds amount to every part except moved on the given axis.
func shiftOthers(set *partset.PartSet, moved *model.PlacedPart, axis, amount int) {
	parts := partset.NewEnumerator(set, model.ScopeAll)
	for q, ok := parts.Next(); ok; q, ok = parts.Next() {
		if q == moved {
			continue
		}
		q.Position.SetAxis(axis, min(q.Position.Axis(axis)+amount, model.BorderCoord))
	}
}

// MoveSelection moves every selected part by delta and returns the summed
// adjustment.
func MoveSelection(set *partset.PartSet, delta model.Cell) Adjustment {
	var total Adjustment
	for _, p := range partset.Collect(set, model.ScopeSelected) {
		adj, err := MovePart(set, p, delta)
		if err != nil {
			continue
		}
		total = total.Add(adj)
	}
	return total
}
