package engine

import (
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

// RotateSelection turns every selected part by quarter-turn steps about
// pivot. Each part's orientation is composed with the rotation and its
// offset from pivot is rotated and rounded; the position change goes through
// MovePart so boundary renormalization applies. The pivot follows every
// renormalization so later parts rotate about the same assembly-relative
// point. The summed adjustment and the shifted pivot are returned.
func RotateSelection(set *partset.PartSet, pivot model.Cell, forward, side, roll int, basis ViewBasis) (Adjustment, model.Cell) {
	if forward%4 == 0 && side%4 == 0 && roll%4 == 0 {
		return Adjustment{}, pivot
	}
	q := basis.Rotation(forward, side, roll)

	var total Adjustment
	for _, p := range partset.Collect(set, model.ScopeSelected) {
		p.Rotation = QuatToEuler(q.Mul(EulerToQuat(p.Rotation)))

		target := pivot.Add(roundVec(q.Rotate(cellVec(p.Position.Sub(pivot)))))
		adj, err := MovePart(set, p, target.Sub(p.Position))
		if err != nil {
			continue
		}
		pivot = adj.Apply(pivot)
		total = total.Add(adj)
	}
	return total, pivot
}
