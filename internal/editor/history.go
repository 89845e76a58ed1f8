package editor

import (
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

// Snapshot is a value copy of both part set sequences.
type Snapshot struct {
	Selected   []model.PlacedPart
	Unselected []model.PlacedPart
	Label      string // edit that was about to run, e.g. "Rotate"
}

// History records part set snapshots taken before each edit. The oldest
// snapshots are dropped once limit is reached.
type History struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

// NewHistory returns a History holding up to limit edits. A limit of zero or
// less records nothing.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records the part set as it was before an edit. Any redo steps are
// discarded since they no longer follow from the current part set.
func (h *History) Push(s Snapshot) {
	if h.limit <= 0 {
		return
	}
	h.undo = append(h.undo, s)
	if over := len(h.undo) - h.limit; over > 0 {
		h.undo = h.undo[over:]
	}
	h.redo = nil
}

// Undo swaps current for the last recorded snapshot. current becomes the
// next redo step.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	return step(&h.undo, &h.redo, current)
}

// Redo swaps current for the last undone snapshot.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	return step(&h.redo, &h.undo, current)
}

// step pops from, pushing current onto to.
func step(from, to *[]Snapshot, current Snapshot) (Snapshot, bool) {
	n := len(*from)
	if n == 0 {
		return Snapshot{}, false
	}
	s := (*from)[n-1]
	*from = (*from)[:n-1]
	*to = append(*to, current)
	return s, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear forgets every recorded edit.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// MakeSnapshot copies the current contents of set.
func MakeSnapshot(set *partset.PartSet, label string) Snapshot {
	sel, unsel := set.Snapshot()
	return Snapshot{Selected: sel, Unselected: unsel, Label: label}
}
