package scene

import (
	"isoedit/diagram"
	"isoedit/geometry"
)

// ViewItemPatch is a partial update of a view item.
type ViewItemPatch struct {
	Tile             *geometry.Coords
	LabelHeight      *int
	ScaleFactor      *float64
	Color            *string
	MirrorHorizontal *bool
	MirrorVertical   *bool
}

func (p ViewItemPatch) apply(item *diagram.ViewItem) {
	set(&item.Tile, p.Tile)
	set(&item.LabelHeight, p.LabelHeight)
	set(&item.ScaleFactor, p.ScaleFactor)
	set(&item.Color, p.Color)
	set(&item.MirrorHorizontal, p.MirrorHorizontal)
	set(&item.MirrorVertical, p.MirrorVertical)
}

// CreateViewItem places item at the front of the view's items. When the
// model has no item with the same id a stub model item is created with it.
func CreateViewItem(s State, viewID string, item diagram.ViewItem) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	if _, _, err := next.Model.ModelItemByID(item.ID); err != nil {
		next.Model.Items = prepend(next.Model.Items, diagram.ModelItem{
			ID:   item.ID,
			Name: diagram.StubName(item.ID),
		})
	}
	view.Items = prepend(view.Items, item)
	return commitView(s, next, viewID)
}

// UpdateViewItem merges patch into the view item. Every connector and road
// anchored to the item gets its path recomputed. The update is rejected
// with a *ValidationError if the view ends up with new issues.
func UpdateViewItem(s State, viewID, id string, patch ViewItemPatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	_, item, err := view.ItemByID(id)
	if err != nil {
		return s, err
	}
	patch.apply(item)

	if patch.Tile != nil {
		for _, ref := range ConnectorsByViewItem(view, id) {
			syncLink(&next, view, viewID, linkKindOf(ref.Type), ref.ID)
		}
	}
	return commitView(s, next, viewID)
}

// DeleteViewItem removes the view item. Anchors bound to it are removed;
// connectors and roads left with fewer than two anchors are deleted and
// the rest get new paths. The model item is kept.
func DeleteViewItem(s State, viewID, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	i, _, err := view.ItemByID(id)
	if err != nil {
		return s, err
	}
	view.Items = removeAt(view.Items, i)
	repairLinks(&next, view, viewID)
	return next, nil
}
