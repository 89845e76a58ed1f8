// Package partset holds the placed parts of a vehicle split into the
// selected and unselected subsets.
package partset

import "github.com/piwi3910/voxedit/internal/model"

// PartSet owns the placed parts of one assembly. Every part is a member of
// exactly one of the two sequences. Order only affects draw and enumeration
// order.
type PartSet struct {
	selected   []*model.PlacedPart
	unselected []*model.PlacedPart
}

// New returns a set holding parts, all unselected. Nil entries are skipped.
func New(parts []*model.PlacedPart) *PartSet {
	s := &PartSet{unselected: make([]*model.PlacedPart, 0, len(parts))}
	for _, p := range parts {
		if p != nil {
			s.unselected = append(s.unselected, p)
		}
	}
	return s
}

// Len returns the total number of parts.
func (s *PartSet) Len() int { return len(s.selected) + len(s.unselected) }

// SelectedLen returns the number of selected parts.
func (s *PartSet) SelectedLen() int { return len(s.selected) }

// UnselectedLen returns the number of unselected parts.
func (s *PartSet) UnselectedLen() int { return len(s.unselected) }

// Contains reports whether p is a member of either sequence.
func (s *PartSet) Contains(p *model.PlacedPart) bool {
	return indexOf(s.selected, p) >= 0 || indexOf(s.unselected, p) >= 0
}

// IsSelected reports whether p is in the selected sequence.
func (s *PartSet) IsSelected(p *model.PlacedPart) bool {
	return indexOf(s.selected, p) >= 0
}

// Select moves p from unselected to the end of selected. It returns false if
// p is not an unselected member.
func (s *PartSet) Select(p *model.PlacedPart) bool {
	i := indexOf(s.unselected, p)
	if i < 0 {
		return false
	}
	s.unselected = removeAt(s.unselected, i)
	s.selected = append(s.selected, p)
	return true
}

// Deselect moves p from selected to the end of unselected. It returns false
// if p is not a selected member.
func (s *PartSet) Deselect(p *model.PlacedPart) bool {
	i := indexOf(s.selected, p)
	if i < 0 {
		return false
	}
	s.selected = removeAt(s.selected, i)
	s.unselected = append(s.unselected, p)
	return true
}

// SelectAll moves every unselected part into the selection.
func (s *PartSet) SelectAll() {
	s.selected = append(s.selected, s.unselected...)
	s.unselected = s.unselected[:0]
}

// MergeSelection moves every selected part, in order, to the end of the
// unselected sequence.
func (s *PartSet) MergeSelection() {
	s.unselected = append(s.unselected, s.selected...)
	s.selected = nil
}

// AddSelected appends new parts to the selection.
func (s *PartSet) AddSelected(parts ...*model.PlacedPart) {
	for _, p := range parts {
		if p != nil && !s.Contains(p) {
			s.selected = append(s.selected, p)
		}
	}
}

// RemoveSelected drops every selected part from the set and returns them.
func (s *PartSet) RemoveSelected() []*model.PlacedPart {
	removed := s.selected
	s.selected = nil
	return removed
}

// Snapshot returns deep copies of both sequences.
func (s *PartSet) Snapshot() (selected, unselected []model.PlacedPart) {
	return copyParts(s.selected), copyParts(s.unselected)
}

// Restore replaces the contents with fresh parts built from a snapshot.
func (s *PartSet) Restore(selected, unselected []model.PlacedPart) {
	s.selected = toPointers(selected)
	s.unselected = toPointers(unselected)
}

func indexOf(parts []*model.PlacedPart, p *model.PlacedPart) int {
	if p == nil {
		return -1
	}
	for i, q := range parts {
		if q == p {
			return i
		}
	}
	return -1
}

// removeAt deletes index i preserving order.
func removeAt(parts []*model.PlacedPart, i int) []*model.PlacedPart {
	copy(parts[i:], parts[i+1:])
	parts[len(parts)-1] = nil
	return parts[:len(parts)-1]
}

func copyParts(parts []*model.PlacedPart) []model.PlacedPart {
	if parts == nil {
		return nil
	}
	cp := make([]model.PlacedPart, len(parts))
	for i, p := range parts {
		cp[i] = *p
	}
	return cp
}

func toPointers(parts []model.PlacedPart) []*model.PlacedPart {
	if parts == nil {
		return nil
	}
	out := make([]*model.PlacedPart, len(parts))
	for i := range parts {
		p := parts[i]
		out[i] = &p
	}
	return out
}
