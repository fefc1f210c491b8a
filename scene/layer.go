package scene

import (
	"fmt"

	"isoedit/diagram"
)

// LayerAction moves an entity within the draw order of its collection.
// Index 0 of a collection is drawn on top.
type LayerAction string

const (
	BringToFront LayerAction = "BRING_TO_FRONT"
	BringForward LayerAction = "BRING_FORWARD"
	SendBackward LayerAction = "SEND_BACKWARD"
	SendToBack   LayerAction = "SEND_TO_BACK"
)

// ReorderLayer applies action to the entity ref points at.
func ReorderLayer(s State, viewID string, ref diagram.ItemReference, action LayerAction) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}

	switch ref.Type {
	case diagram.TypeItem:
		i, _, err := view.ItemByID(ref.ID)
		if err != nil {
			return s, err
		}
		view.Items, err = reorder(view.Items, i, action)
		if err != nil {
			return s, err
		}
	case diagram.TypeRectangle:
		i, _, err := view.RectangleByID(ref.ID)
		if err != nil {
			return s, err
		}
		view.Rectangles, err = reorder(view.Rectangles, i, action)
		if err != nil {
			return s, err
		}
	case diagram.TypeVolume:
		i, _, err := view.VolumeByID(ref.ID)
		if err != nil {
			return s, err
		}
		view.Volumes, err = reorder(view.Volumes, i, action)
		if err != nil {
			return s, err
		}
	case diagram.TypeTextBox:
		i, _, err := view.TextBoxByID(ref.ID)
		if err != nil {
			return s, err
		}
		view.TextBoxes, err = reorder(view.TextBoxes, i, action)
		if err != nil {
			return s, err
		}
	case diagram.TypeConnector, diagram.TypeRoad:
		kind := linkKindOf(ref.Type)
		i, _, err := kind.find(view, ref.ID)
		if err != nil {
			return s, err
		}
		links := kind.links(view)
		*links, err = reorder(*links, i, action)
		if err != nil {
			return s, err
		}
	default:
		return s, fmt.Errorf("isoedit: %s cannot be reordered", ref.Type)
	}
	return next, nil
}

func reorder[T any](items []T, i int, action LayerAction) ([]T, error) {
	target := i
	switch action {
	case BringToFront:
		target = 0
	case BringForward:
		target = i - 1
	case SendBackward:
		target = i + 1
	case SendToBack:
		target = len(items) - 1
	default:
		return items, fmt.Errorf("isoedit: unknown layer action %q", action)
	}
	if target < 0 || target >= len(items) || target == i {
		return items, nil
	}
	item := items[i]
	items = removeAt(items, i)
	items = append(items[:target:target], append([]T{item}, items[target:]...)...)
	return items, nil
}
