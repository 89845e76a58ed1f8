package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/model"
)

// CellEnumerator yields the absolute cells of one placed part.
//
// Each footprint offset is rotated by the part's combined rotation, rounded
// to the nearest integer, clamped to >= 0 per axis and added to the part
// position.
//
// A footprint entry after the first that equals the anchor (entry 0) ends
// the list, as does the end of the slice. catalog.Validate rejects entries
// that would trip this rule mid-footprint.
type CellEnumerator struct {
	footprint []model.Cell
	pos       model.Cell
	rot       mgl64.Mat3
	identity  bool
	i         int
}

// NewCellEnumerator prepares a single-pass enumeration of p's cells.
func NewCellEnumerator(p *model.PlacedPart, cat *catalog.Catalog) *CellEnumerator {
	fp := cat.Footprint(p.PartID)
	if len(fp) > model.MaxFootprint {
		fp = fp[:model.MaxFootprint]
	}
	e := &CellEnumerator{
		footprint: fp,
		pos:       p.Position,
		identity:  p.Rotation.IsZero(),
	}
	if !e.identity {
		e.rot = EulerToQuat(p.Rotation).Mat4().Mat3()
	}
	return e
}

// Next returns the next absolute cell, or false once exhausted.
func (e *CellEnumerator) Next() (model.Cell, bool) {
	if e.i >= len(e.footprint) {
		return model.Cell{}, false
	}
	rel := e.footprint[e.i]
	if e.i > 0 && rel == e.footprint[0] {
		e.i = len(e.footprint)
		return model.Cell{}, false
	}
	e.i++

	off := rel
	if !e.identity {
		off = roundVec(e.rot.Mul3x1(mgl64.Vec3{float64(rel.X), float64(rel.Y), float64(rel.Z)}))
	}
	off.X = max(off.X, 0)
	off.Y = max(off.Y, 0)
	off.Z = max(off.Z, 0)
	return e.pos.Add(off), true
}

// Cells drains a fresh enumerator for p.
func Cells(p *model.PlacedPart, cat *catalog.Catalog) []model.Cell {
	e := NewCellEnumerator(p, cat)
	out := make([]model.Cell, 0, len(e.footprint))
	for c, ok := e.Next(); ok; c, ok = e.Next() {
		out = append(out, c)
	}
	return out
}

func roundVec(v mgl64.Vec3) model.Cell {
	return model.Cell{
		X: int(math.Round(v[0])),
		Y: int(math.Round(v[1])),
		Z: int(math.Round(v[2])),
	}
}

func cellVec(c model.Cell) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}
