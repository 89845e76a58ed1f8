package model

import (
	"math"

	"github.com/google/uuid"
)

// Grid dimensions. Every axis spans [0, GridSize).
const (
	GridSize = 128
	// BorderCoord is the last coordinate on each axis. It is reserved as a
	// border: moves that land on it are dropped.
	BorderCoord = GridSize - 1
	// MaxFootprint is the longest footprint a catalog entry may declare.
	MaxFootprint = 112
	// MaxFootprintRadius bounds the length of any footprint offset, and so
	// how far (per axis) a cell can be from its part's position under any
	// rotation.
	MaxFootprintRadius = 8
)

// Cell is an integer grid coordinate. It doubles as a relative offset and as
// a move delta.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns c + o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns c - o.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Axis returns the component for axis 0 (X), 1 (Y) or 2 (Z).
func (c Cell) Axis(i int) int {
	switch i {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// SetAxis sets the component for axis i.
func (c *Cell) SetAxis(i, v int) {
	switch i {
	case 0:
		c.X = v
	case 1:
		c.Y = v
	default:
		c.Z = v
	}
}

// InBounds reports whether every axis lies in [0, GridSize).
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < GridSize &&
		c.Y >= 0 && c.Y < GridSize &&
		c.Z >= 0 && c.Z < GridSize
}

// Near reports whether c and o differ by at most r on every axis.
func (c Cell) Near(o Cell, r int) bool {
	return absInt(c.X-o.X) <= r && absInt(c.Y-o.Y) <= r && absInt(c.Z-o.Z) <= r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Euler holds rotation angles in radians. They are applied about the part's
// own origin in X, then Y, then Z order.
type Euler struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsZero reports whether all angles are exactly zero.
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// Degrees returns the angles converted to degrees, rounded to 3 decimals.
func (e Euler) Degrees() (x, y, z float64) {
	conv := func(r float64) float64 {
		return math.Round(r*180/math.Pi*1000) / 1000
	}
	return conv(e.X), conv(e.Y), conv(e.Z)
}

// EulerFromDegrees builds an Euler rotation from degrees.
func EulerFromDegrees(x, y, z float64) Euler {
	return Euler{X: x * math.Pi / 180, Y: y * math.Pi / 180, Z: z * math.Pi / 180}
}

// CatalogEntry describes one part type.
type CatalogEntry struct {
	ID   uint16 `json:"id"`
	Name string `json:"name"`
	// Footprint lists occupied cells relative to the part origin at identity
	// rotation. Entry 0 is the anchor cell.
	Footprint []Cell `json:"footprint"`
}

// PlacedPart is one part instance in a vehicle assembly.
type PlacedPart struct {
	ID       string `json:"id"`
	PartID   uint16 `json:"part_id"`
	Position Cell   `json:"position"`
	Rotation Euler  `json:"rotation"`
	Color    uint8  `json:"color"`
	Modifier uint8  `json:"modifier"`
}

// NewInstanceID returns a short random part instance ID.
func NewInstanceID() string {
	return uuid.New().String()[:8]
}

func NewPlacedPart(partID uint16, pos Cell, rot Euler) *PlacedPart {
	return &PlacedPart{
		ID:       NewInstanceID(),
		PartID:   partID,
		Position: pos,
		Rotation: rot,
	}
}

// Clone returns a copy of the part carrying a fresh instance ID.
func (p *PlacedPart) Clone() *PlacedPart {
	cp := *p
	cp.ID = NewInstanceID()
	return &cp
}

// SelectionState describes whether the current selection may be committed.
type SelectionState int

const (
	SelectionNone   SelectionState = iota // Nothing selected
	SelectionActive                       // Selection is non-empty and collision free
	SelectionBad                          // Selection overlaps unselected parts
)

func (s SelectionState) String() string {
	switch s {
	case SelectionActive:
		return "Active"
	case SelectionBad:
		return "Bad"
	default:
		return "None"
	}
}

// Scope selects which PartSet subsets an enumeration visits.
type Scope int

const (
	ScopeSelected Scope = iota
	ScopeUnselected
	ScopeAll // Unselected first, then selected
)

func (s Scope) String() string {
	switch s {
	case ScopeSelected:
		return "Selected"
	case ScopeUnselected:
		return "Unselected"
	default:
		return "All"
	}
}
