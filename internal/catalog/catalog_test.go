package catalog

import (
	"testing"

	"github.com/piwi3910/voxedit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootprint_UnknownIDFallsBackToOrigin(t *testing.T) {
	c := Default()
	assert.Equal(t, []model.Cell{{}}, c.Footprint(9999))

	var nilCat *Catalog
	assert.Equal(t, []model.Cell{{}}, nilCat.Footprint(PartBlock))
}

func TestFootprint_DoubleHeightUp(t *testing.T) {
	c := Default()
	assert.Equal(t, []model.Cell{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 0}}, c.Footprint(PartDoubleHeightUp))
}

func TestDefault_AllBuiltinsValid(t *testing.T) {
	c := Default()
	require.NotZero(t, c.Len())
	for _, e := range c.Entries() {
		assert.NoError(t, Validate(e), "entry %d (%s)", e.ID, e.Name)
	}
}

func TestBox(t *testing.T) {
	cells := box(3, 3, 3)
	assert.Len(t, cells, 27)
	assert.Equal(t, model.Cell{}, cells[0])
	assert.Equal(t, model.Cell{X: 2, Y: 2, Z: 2}, cells[26])
}

func TestIDsSorted(t *testing.T) {
	c := New(
		model.CatalogEntry{ID: 30, Name: "c"},
		model.CatalogEntry{ID: 10, Name: "a"},
		model.CatalogEntry{ID: 20, Name: "b"},
	)
	assert.Equal(t, []uint16{10, 20, 30}, c.IDs())
	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
}

func TestName(t *testing.T) {
	c := Default()
	assert.Equal(t, "Double Height Up", c.Name(PartDoubleHeightUp))
	assert.Equal(t, "Unknown part 500", c.Name(500))
}

func TestMerge(t *testing.T) {
	c := Default()
	before := c.Len()

	replaced := c.Merge([]model.CatalogEntry{
		{ID: PartBlock, Name: "Heavy Block", Footprint: []model.Cell{{}}},
		{ID: 200, Name: "Custom", Footprint: []model.Cell{{}, {X: 1, Y: 0, Z: 0}}},
	})

	assert.Equal(t, 1, replaced)
	assert.Equal(t, before+1, c.Len())
	assert.Equal(t, "Heavy Block", c.Name(PartBlock))
	assert.Len(t, c.Footprint(200), 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fp   []model.Cell
		err  error
	}{
		{"ok", []model.Cell{{}, {X: 1, Y: 0, Z: 0}}, nil},
		{"empty", nil, ErrEmptyFootprint},
		{"repeated anchor", []model.Cell{{}, {X: 1, Y: 0, Z: 0}, {}, {X: 2, Y: 0, Z: 0}}, ErrRepeatedAnchor},
		{"too wide", []model.Cell{{}, {X: 9, Y: 0, Z: 0}}, ErrFootprintTooWide},
		{"too wide diagonally", []model.Cell{{}, {X: 8, Y: 0, Z: 8}}, ErrFootprintTooWide},
		{"radius on the diagonal", []model.Cell{{}, {X: 4, Y: 4, Z: 4}, {X: 0, Y: 8, Z: 0}}, nil},
		{"too long", make([]model.Cell, model.MaxFootprint+1), ErrFootprintTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(model.CatalogEntry{ID: 1, Footprint: tt.fp})
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
