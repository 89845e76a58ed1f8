package catalog

import "github.com/piwi3910/voxedit/internal/model"

// Built-in part type IDs.
const (
	PartBlock          uint16 = 1
	PartDoubleHeightUp uint16 = 2
	PartWedge          uint16 = 3
	PartBeam4          uint16 = 4
	PartPlate2x2       uint16 = 5
	PartLargeBlock     uint16 = 6
	PartSeat           uint16 = 7
	PartWheel          uint16 = 8
	PartEngine         uint16 = 9
	PartThruster       uint16 = 10
	PartPlate4x4       uint16 = 11
	PartCorner         uint16 = 12
)

func builtinEntries() []model.CatalogEntry {
	return []model.CatalogEntry{
		{ID: PartBlock, Name: "Block", Footprint: []model.Cell{{X: 0, Y: 0, Z: 0}}},
		{ID: PartDoubleHeightUp, Name: "Double Height Up", Footprint: []model.Cell{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 0}}},
		{ID: PartWedge, Name: "Wedge 1x2", Footprint: []model.Cell{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}}},
		{ID: PartBeam4, Name: "Beam 1x4", Footprint: box(4, 1, 1)},
		{ID: PartPlate2x2, Name: "Plate 2x2", Footprint: box(2, 1, 2)},
		{ID: PartLargeBlock, Name: "Large Block 3x3x3", Footprint: box(3, 3, 3)},
		{ID: PartSeat, Name: "Seat", Footprint: []model.Cell{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 2, Z: 1}}},
		{ID: PartWheel, Name: "Wheel", Footprint: box(1, 3, 3)},
		{ID: PartEngine, Name: "Engine", Footprint: box(2, 2, 3)},
		{ID: PartThruster, Name: "Thruster", Footprint: []model.Cell{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 2}}},
		{ID: PartPlate4x4, Name: "Plate 4x4", Footprint: box(4, 1, 4)},
		{ID: PartCorner, Name: "Corner", Footprint: []model.Cell{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}}},
	}
}

// box returns a w×h×d footprint anchored at the origin, iterating X fastest.
func box(w, h, d int) []model.Cell {
	cells := make([]model.Cell, 0, w*h*d)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cells = append(cells, model.Cell{X: x, Y: y, Z: z})
			}
		}
	}
	return cells
}
