// Package grid provides the dense bit-packed occupancy grid covering the
// whole 128×128×128 editing volume.
//
// Cell (x, y, z) lives in byte (x, y, z/8) at bit z%8, so eight consecutive
// Z cells share a byte. Bulk readers may test ByteAt for zero to skip eight
// cells at once.
package grid

import (
	"math/bits"

	"github.com/piwi3910/voxedit/internal/model"
)

const (
	size       = model.GridSize
	zBytes     = size / 8
	arenaBytes = size * size * zBytes
)

// The arena must cover exactly one bit per cell.
var _ = [1]struct{}{}[arenaBytes*8-size*size*size]

// Grid is a 128³ presence bitmap. Coordinates outside [0,128) on any axis
// read as empty and ignore writes.
type Grid struct {
	cells [arenaBytes]byte
}

func New() *Grid {
	return &Grid{}
}

// byteIndex returns the arena offset of the byte holding (x, y, zByte).
func byteIndex(x, y, zByte int) int {
	return (x*size+y)*zBytes + zByte
}

// Get reports whether c is occupied.
func (g *Grid) Get(c model.Cell) bool {
	if !c.InBounds() {
		return false
	}
	return g.cells[byteIndex(c.X, c.Y, c.Z/8)]&(1<<uint(c.Z%8)) != 0
}

// Set marks or clears c.
func (g *Grid) Set(c model.Cell, v bool) {
	if !c.InBounds() {
		return
	}
	i := byteIndex(c.X, c.Y, c.Z/8)
	mask := byte(1 << uint(c.Z%8))
	if v {
		g.cells[i] |= mask
	} else {
		g.cells[i] &^= mask
	}
}

// ByteAt returns the packed byte for cells (x, y, zByte*8 .. zByte*8+7).
// Out-of-range addresses return 0.
func (g *Grid) ByteAt(x, y, zByte int) byte {
	if x < 0 || x >= size || y < 0 || y >= size || zByte < 0 || zByte >= zBytes {
		return 0
	}
	return g.cells[byteIndex(x, y, zByte)]
}

// Clear empties the grid.
func (g *Grid) Clear() {
	clear(g.cells[:])
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		n += bits.OnesCount8(b)
	}
	return n
}

// Empty reports whether no cell is occupied.
func (g *Grid) Empty() bool {
	for _, b := range g.cells {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both grids hold identical bits.
func (g *Grid) Equal(o *Grid) bool {
	return g.cells == o.cells
}

// Intersects reports whether any cell is occupied in both grids.
func (g *Grid) Intersects(o *Grid) bool {
	for i, b := range g.cells {
		if b&o.cells[i] != 0 {
			return true
		}
	}
	return false
}

// ForEach calls fn for every occupied cell in x, y, z order. Iteration stops
// early when fn returns false.
func (g *Grid) ForEach(fn func(c model.Cell) bool) {
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for zb := 0; zb < zBytes; zb++ {
				b := g.cells[byteIndex(x, y, zb)]
				if b == 0 {
					continue
				}
				for bit := 0; bit < 8; bit++ {
					if b&(1<<uint(bit)) == 0 {
						continue
					}
					if !fn(model.Cell{X: x, Y: y, Z: zb*8 + bit}) {
						return
					}
				}
			}
		}
	}
}

// Layer calls fn for every occupied cell with the given Y coordinate.
func (g *Grid) Layer(y int, fn func(x, z int)) {
	if y < 0 || y >= size {
		return
	}
	for x := 0; x < size; x++ {
		for zb := 0; zb < zBytes; zb++ {
			b := g.cells[byteIndex(x, y, zb)]
			for b != 0 {
				bit := bits.TrailingZeros8(b)
				fn(x, zb*8+bit)
				b &^= 1 << uint(bit)
			}
		}
	}
}
