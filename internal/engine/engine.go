// Package engine implements the spatial editing operations: cell enumeration
// under rotation, reverse lookup, selection move/rotate with boundary
// renormalization, and overlap detection.
package engine

import (
	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/grid"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

// Engine runs the catalog-dependent queries.
type Engine struct {
	Catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{Catalog: cat}
}

// Cells returns every absolute cell p occupies.
func (e *Engine) Cells(p *model.PlacedPart) []model.Cell {
	return Cells(p, e.Catalog)
}

// RebuildGrids clears both grids and repopulates them from the set:
// unselected parts go into vacancy, selected parts into selected.
func (e *Engine) RebuildGrids(set *partset.PartSet, vacancy, selected *grid.Grid) {
	vacancy.Clear()
	selected.Clear()
	fill(set, model.ScopeUnselected, vacancy, e.Catalog)
	fill(set, model.ScopeSelected, selected, e.Catalog)
}

func fill(set *partset.PartSet, scope model.Scope, g *grid.Grid, cat *catalog.Catalog) {
	parts := partset.NewEnumerator(set, scope)
	for p, ok := parts.Next(); ok; p, ok = parts.Next() {
		cells := NewCellEnumerator(p, cat)
		for c, ok := cells.Next(); ok; c, ok = cells.Next() {
			g.Set(c, true)
		}
	}
}

// Overlap reports whether any cell of any selected part is occupied in
// vacancy.
func (e *Engine) Overlap(set *partset.PartSet, vacancy *grid.Grid) bool {
	parts := partset.NewEnumerator(set, model.ScopeSelected)
	for p, ok := parts.Next(); ok; p, ok = parts.Next() {
		cells := NewCellEnumerator(p, e.Catalog)
		for c, ok := cells.Next(); ok; c, ok = cells.Next() {
			if vacancy.Get(c) {
				return true
			}
		}
	}
	return false
}

// Bounds returns the inclusive bounding box of every occupied cell in the
// set. ok is false for an empty set.
func (e *Engine) Bounds(set *partset.PartSet) (min, max model.Cell, ok bool) {
	parts := partset.NewEnumerator(set, model.ScopeAll)
	for p, more := parts.Next(); more; p, more = parts.Next() {
		cells := NewCellEnumerator(p, e.Catalog)
		for c, more := cells.Next(); more; c, more = cells.Next() {
			if !ok {
				min, max, ok = c, c, true
				continue
			}
			for axis := 0; axis < 3; axis++ {
				v := c.Axis(axis)
				if v < min.Axis(axis) {
					min.SetAxis(axis, v)
				}
				if v > max.Axis(axis) {
					max.SetAxis(axis, v)
				}
			}
		}
	}
	return min, max, ok
}
