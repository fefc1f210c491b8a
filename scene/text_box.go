package scene

import (
	"isoedit/diagram"
	"isoedit/geometry"
)

// TextBoxPatch is a partial update of a text box.
type TextBoxPatch struct {
	Tile        *geometry.Coords
	Content     *string
	FontSize    *float64
	Color       *string
	Orientation *diagram.Orientation
	IsBold      *bool
	IsItalic    *bool
}

func (p TextBoxPatch) apply(t *diagram.TextBox) {
	set(&t.Tile, p.Tile)
	set(&t.Content, p.Content)
	set(&t.FontSize, p.FontSize)
	set(&t.Color, p.Color)
	set(&t.Orientation, p.Orientation)
	set(&t.IsBold, p.IsBold)
	set(&t.IsItalic, p.IsItalic)
}

// CreateTextBox adds t at the front of the view's text boxes and caches
// its size.
func CreateTextBox(s State, viewID string, t diagram.TextBox) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	view.TextBoxes = prepend(view.TextBoxes, t)
	next, err = commitView(s, next, viewID)
	if err != nil {
		return s, err
	}
	syncTextBox(&next, viewID, t)
	return next, nil
}

// UpdateTextBox merges patch into the text box and recomputes its size.
func UpdateTextBox(s State, viewID, id string, patch TextBoxPatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	_, t, err := view.TextBoxByID(id)
	if err != nil {
		return s, err
	}
	patch.apply(t)
	updated := *t
	next, err = commitView(s, next, viewID)
	if err != nil {
		return s, err
	}
	syncTextBox(&next, viewID, updated)
	return next, nil
}

// DeleteTextBox removes the text box and its cached size.
func DeleteTextBox(s State, viewID, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	i, _, err := view.TextBoxByID(id)
	if err != nil {
		return s, err
	}
	view.TextBoxes = removeAt(view.TextBoxes, i)
	if next.tracks(viewID) {
		delete(next.Scene.TextBoxes, id)
	}
	return next, nil
}

func syncTextBox(st *State, viewID string, t diagram.TextBox) {
	if st.tracks(viewID) {
		st.Scene.TextBoxes[t.ID] = TextBoxState{Size: TextBoxSize(t)}
	}
}
