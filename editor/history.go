package editor

import (
	"reflect"

	"isoedit/diagram"
)

// DefaultHistoryDepth is the number of undo steps kept when none is
// configured.
const DefaultHistoryDepth = 50

// History keeps model snapshots for undo and redo. Snapshots are deep
// copies; nothing handed in or out aliases the stored models.
type History struct {
	past    []*diagram.Model // Oldest first
	present *diagram.Model
	future  []*diagram.Model // Next redo last
	max     int
}

// NewHistory creates a history keeping at most max undo steps.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistoryDepth
	}
	return &History{max: max}
}

// Reset discards all snapshots and starts over from m.
func (h *History) Reset(m *diagram.Model) {
	h.past = nil
	h.future = nil
	h.present = m.Clone()
}

// Push records m as the present state. It is a no-op when m equals the
// present state, otherwise the redo list is discarded.
func (h *History) Push(m *diagram.Model) bool {
	if m == nil {
		return false
	}
	if h.present != nil && reflect.DeepEqual(h.present, m) {
		return false
	}
	if h.present != nil {
		h.past = append(h.past, h.present)
		if len(h.past) > h.max {
			h.past = h.past[len(h.past)-h.max:]
		}
	}
	h.present = m.Clone()
	h.future = nil
	return true
}

// CanUndo returns true if we can undo
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo returns true if we can redo
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Undo steps back and returns a copy of the new present state.
func (h *History) Undo() (*diagram.Model, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	last := len(h.past) - 1
	h.future = append(h.future, h.present)
	h.present = h.past[last]
	h.past = h.past[:last]
	return h.present.Clone(), true
}

// Redo steps forward and returns a copy of the new present state.
func (h *History) Redo() (*diagram.Model, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	last := len(h.future) - 1
	h.past = append(h.past, h.present)
	h.present = h.future[last]
	h.future = h.future[:last]
	return h.present.Clone(), true
}

// Stats returns the number of undo and redo steps available.
func (h *History) Stats() (undo, redo int) {
	return len(h.past), len(h.future)
}
