// Package catalog maps part type IDs to their footprints and display names.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/voxedit/internal/model"
)

var (
	ErrEmptyFootprint    = errors.New("footprint is empty")
	ErrFootprintTooLong  = errors.New("footprint exceeds maximum length")
	ErrRepeatedAnchor    = errors.New("footprint repeats its anchor cell")
	ErrFootprintTooWide  = errors.New("footprint cell outside maximum radius")
	defaultFootprint     = []model.Cell{{}}
	defaultEntryTemplate = "Unknown part %d"
)

// Catalog is a read-only lookup of part types.
type Catalog struct {
	entries map[uint16]model.CatalogEntry
}

// New builds a catalog from the given entries. Later entries with the same ID
// replace earlier ones.
func New(entries ...model.CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[uint16]model.CatalogEntry, len(entries))}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c
}

// Default returns a catalog holding the built-in part table.
func Default() *Catalog {
	return New(builtinEntries()...)
}

// Footprint returns the relative cells a part type occupies at identity
// rotation. Unknown IDs, and a nil catalog, yield the single origin cell.
// The returned slice is shared and must not be modified.
func (c *Catalog) Footprint(id uint16) []model.Cell {
	if c == nil {
		return defaultFootprint
	}
	e, ok := c.entries[id]
	if !ok || len(e.Footprint) == 0 {
		return defaultFootprint
	}
	return e.Footprint
}

// Entry returns the catalog entry for id.
func (c *Catalog) Entry(id uint16) (model.CatalogEntry, bool) {
	if c == nil {
		return model.CatalogEntry{}, false
	}
	e, ok := c.entries[id]
	return e, ok
}

// Name returns the display name for id, or a placeholder for unknown IDs.
func (c *Catalog) Name(id uint16) string {
	if e, ok := c.Entry(id); ok && e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf(defaultEntryTemplate, id)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// IDs returns all known IDs in ascending order.
func (c *Catalog) IDs() []uint16 {
	if c == nil {
		return nil
	}
	ids := make([]uint16, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entries returns all entries ordered by ID.
func (c *Catalog) Entries() []model.CatalogEntry {
	ids := c.IDs()
	out := make([]model.CatalogEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.entries[id])
	}
	return out
}

// Merge overlays entries onto the catalog and returns how many existing IDs
// were replaced.
func (c *Catalog) Merge(entries []model.CatalogEntry) int {
	if c.entries == nil {
		c.entries = make(map[uint16]model.CatalogEntry, len(entries))
	}
	replaced := 0
	for _, e := range entries {
		if _, ok := c.entries[e.ID]; ok {
			replaced++
		}
		c.entries[e.ID] = e
	}
	return replaced
}

// Validate checks a catalog entry for footprints the cell enumerator cannot
// represent faithfully.
//
// A footprint that lists its anchor cell (entry 0) a second time is rejected:
// the enumerator treats a repeated anchor as the end of the list, so any
// cells after it would be silently dropped.
//
// Every cell must lie within MaxFootprintRadius of the anchor by Euclidean
// length, so no rotation can carry it further than that on any axis.
func Validate(e model.CatalogEntry) error {
	if len(e.Footprint) == 0 {
		return ErrEmptyFootprint
	}
	if len(e.Footprint) > model.MaxFootprint {
		return fmt.Errorf("%w: %d cells (max %d)", ErrFootprintTooLong, len(e.Footprint), model.MaxFootprint)
	}
	anchor := e.Footprint[0]
	for i, c := range e.Footprint {
		if i > 0 && c == anchor {
			return fmt.Errorf("%w at index %d", ErrRepeatedAnchor, i)
		}
		if c.X*c.X+c.Y*c.Y+c.Z*c.Z > model.MaxFootprintRadius*model.MaxFootprintRadius {
			return fmt.Errorf("%w: %+v at index %d", ErrFootprintTooWide, c, i)
		}
	}
	return nil
}
