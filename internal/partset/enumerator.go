package partset

import "github.com/piwi3910/voxedit/internal/model"

// Enumerator walks one or both subsets of a PartSet. It is single-pass; a
// fresh enumerator is needed to iterate again. Mutating the set while an
// enumerator is live gives unspecified (but memory safe) results.
type Enumerator struct {
	lists [2][]*model.PlacedPart
	list  int
	pos   int
}

// NewEnumerator prepares an enumeration over scope. For ScopeAll the
// unselected parts come first.
func NewEnumerator(s *PartSet, scope model.Scope) *Enumerator {
	e := &Enumerator{}
	switch scope {
	case model.ScopeSelected:
		e.lists[0] = s.selected
	case model.ScopeUnselected:
		e.lists[0] = s.unselected
	default:
		e.lists[0] = s.unselected
		e.lists[1] = s.selected
	}
	return e
}

// Next returns the next part, or false once exhausted.
func (e *Enumerator) Next() (*model.PlacedPart, bool) {
	for e.list < len(e.lists) {
		l := e.lists[e.list]
		if e.pos < len(l) {
			p := l[e.pos]
			e.pos++
			return p, true
		}
		e.list++
		e.pos = 0
	}
	return nil, false
}

// Collect drains an enumeration into a slice.
func Collect(s *PartSet, scope model.Scope) []*model.PlacedPart {
	var out []*model.PlacedPart
	e := NewEnumerator(s, scope)
	for p, ok := e.Next(); ok; p, ok = e.Next() {
		out = append(out, p)
	}
	return out
}
