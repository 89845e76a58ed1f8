package engine

import (
	"github.com/piwi3910/voxedit/internal/grid"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

// FindPartAt returns the part occupying cell, or nil.
//
// Both grids are consulted first so empty cells cost two bit tests. Only the
// subsets whose grid reports the cell are scanned, and parts further than
// MaxFootprintRadius from cell on any axis are skipped before their cells
// are enumerated.
func (e *Engine) FindPartAt(set *partset.PartSet, vacancy, selected *grid.Grid, cell model.Cell) *model.PlacedPart {
	inVacancy := vacancy.Get(cell)
	inSelected := selected.Get(cell)

	var scope model.Scope
	switch {
	case inVacancy && inSelected:
		scope = model.ScopeAll
	case inVacancy:
		scope = model.ScopeUnselected
	case inSelected:
		scope = model.ScopeSelected
	default:
		return nil
	}

	parts := partset.NewEnumerator(set, scope)
	for p, ok := parts.Next(); ok; p, ok = parts.Next() {
		if !p.Position.Near(cell, model.MaxFootprintRadius) {
			continue
		}
		cells := NewCellEnumerator(p, e.Catalog)
		for c, ok := cells.Next(); ok; c, ok = cells.Next() {
			if c == cell {
				return p
			}
		}
	}
	return nil
}
