package scene

import (
	"isoedit/diagram"
	"isoedit/logging"
)

// ViewPatch is a partial update of a view's metadata.
type ViewPatch struct {
	Name        *string
	Description *string
}

// CreateView appends view to the model. Views keep page order, so they
// are not prepended like entities.
func CreateView(s State, view diagram.View) (State, error) {
	next := s.Clone()
	next.Model.Views = append(next.Model.Views, view.Clone())
	return commitModel(s, next)
}

// UpdateView merges patch into the view.
func UpdateView(s State, viewID string, patch ViewPatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	set(&view.Name, patch.Name)
	set(&view.Description, patch.Description)
	return next, nil
}

// DeleteView removes a view. The last view cannot be deleted. When the
// deleted view is the one the scene caches, the scene is rebuilt for the
// first remaining view.
func DeleteView(s State, viewID string) (State, error) {
	if s.Model == nil {
		return s, &diagram.NotFoundError{Kind: "View", ID: viewID}
	}
	i, _, err := s.Model.ViewByID(viewID)
	if err != nil {
		return s, err
	}
	if len(s.Model.Views) == 1 {
		return s, ErrLastView
	}
	next := s.Clone()
	next.Model.Views = removeAt(next.Model.Views, i)
	if next.tracks(viewID) {
		return Rebuild(next, next.Model.Views[0].ID)
	}
	return next, nil
}

// Rebuild recomputes the whole scene for viewID, for use after the model
// has been replaced wholesale. Links that fail structural validation are
// pruned from the returned model, and its empty collections become nil.
func Rebuild(s State, viewID string) (State, error) {
	if s.Model == nil {
		return s, &diagram.NotFoundError{Kind: "View", ID: viewID}
	}
	next := State{Model: s.Model.Clone(), Scene: NewScene(viewID)}
	next.Model.Compact()
	view, err := next.View(viewID)
	if err != nil {
		return s, err
	}

	repairLinks(&next, view, viewID)
	for _, kind := range linkKinds {
		ids := make([]string, 0, len(*kind.links(view)))
		for _, c := range *kind.links(view) {
			ids = append(ids, c.ID)
		}
		for _, id := range ids {
			syncLink(&next, view, viewID, kind, id)
		}
	}
	for _, tb := range view.TextBoxes {
		next.Scene.TextBoxes[tb.ID] = TextBoxState{Size: TextBoxSize(tb)}
	}
	logging.Logger().Debug("scene rebuilt", "view", viewID,
		"connectors", len(next.Scene.Connectors), "roads", len(next.Scene.Roads))
	return next, nil
}
