package editor

import (
	"fmt"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/scene"
)

// apply runs a reducer against the editor state. The state only changes
// when the reducer succeeds.
func (e *Editor) apply(op string, reduce func(scene.State) (scene.State, error)) error {
	if e.ui.EditorMode != Editable {
		return ErrReadOnly
	}
	next, err := reduce(e.state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	e.state = next
	e.markDirty()
	return nil
}

func (e *Editor) CreateModelItem(item diagram.ModelItem) error {
	return e.apply("create model item", func(s scene.State) (scene.State, error) {
		return scene.CreateModelItem(s, item)
	})
}

func (e *Editor) UpdateModelItem(id string, patch scene.ModelItemPatch) error {
	return e.apply("update model item", func(s scene.State) (scene.State, error) {
		return scene.UpdateModelItem(s, id, patch)
	})
}

func (e *Editor) DeleteModelItem(id string) error {
	return e.apply("delete model item", func(s scene.State) (scene.State, error) {
		return scene.DeleteModelItem(s, id)
	})
}

func (e *Editor) CreateViewItem(item diagram.ViewItem) error {
	return e.apply("create view item", func(s scene.State) (scene.State, error) {
		return scene.CreateViewItem(s, e.viewID, item)
	})
}

func (e *Editor) UpdateViewItem(id string, patch scene.ViewItemPatch) error {
	return e.apply("update view item", func(s scene.State) (scene.State, error) {
		return scene.UpdateViewItem(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteViewItem(id string) error {
	return e.apply("delete view item", func(s scene.State) (scene.State, error) {
		return scene.DeleteViewItem(s, e.viewID, id)
	})
}

func (e *Editor) CreateRectangle(r diagram.Rectangle) error {
	return e.apply("create rectangle", func(s scene.State) (scene.State, error) {
		return scene.CreateRectangle(s, e.viewID, r)
	})
}

func (e *Editor) UpdateRectangle(id string, patch scene.RectanglePatch) error {
	return e.apply("update rectangle", func(s scene.State) (scene.State, error) {
		return scene.UpdateRectangle(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteRectangle(id string) error {
	return e.apply("delete rectangle", func(s scene.State) (scene.State, error) {
		return scene.DeleteRectangle(s, e.viewID, id)
	})
}

func (e *Editor) CreateVolume(v diagram.Volume) error {
	return e.apply("create volume", func(s scene.State) (scene.State, error) {
		return scene.CreateVolume(s, e.viewID, v)
	})
}

func (e *Editor) UpdateVolume(id string, patch scene.VolumePatch) error {
	return e.apply("update volume", func(s scene.State) (scene.State, error) {
		return scene.UpdateVolume(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteVolume(id string) error {
	return e.apply("delete volume", func(s scene.State) (scene.State, error) {
		return scene.DeleteVolume(s, e.viewID, id)
	})
}

func (e *Editor) CreateConnector(c diagram.Connector) error {
	return e.apply("create connector", func(s scene.State) (scene.State, error) {
		return scene.CreateConnector(s, e.viewID, c)
	})
}

func (e *Editor) UpdateConnector(id string, patch scene.ConnectorPatch) error {
	return e.apply("update connector", func(s scene.State) (scene.State, error) {
		return scene.UpdateConnector(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteConnector(id string) error {
	return e.apply("delete connector", func(s scene.State) (scene.State, error) {
		return scene.DeleteConnector(s, e.viewID, id)
	})
}

func (e *Editor) CreateRoad(r diagram.Connector) error {
	return e.apply("create road", func(s scene.State) (scene.State, error) {
		return scene.CreateRoad(s, e.viewID, r)
	})
}

func (e *Editor) UpdateRoad(id string, patch scene.ConnectorPatch) error {
	return e.apply("update road", func(s scene.State) (scene.State, error) {
		return scene.UpdateRoad(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteRoad(id string) error {
	return e.apply("delete road", func(s scene.State) (scene.State, error) {
		return scene.DeleteRoad(s, e.viewID, id)
	})
}

func (e *Editor) CreateTextBox(t diagram.TextBox) error {
	return e.apply("create text box", func(s scene.State) (scene.State, error) {
		return scene.CreateTextBox(s, e.viewID, t)
	})
}

func (e *Editor) UpdateTextBox(id string, patch scene.TextBoxPatch) error {
	return e.apply("update text box", func(s scene.State) (scene.State, error) {
		return scene.UpdateTextBox(s, e.viewID, id, patch)
	})
}

func (e *Editor) DeleteTextBox(id string) error {
	return e.apply("delete text box", func(s scene.State) (scene.State, error) {
		return scene.DeleteTextBox(s, e.viewID, id)
	})
}

func (e *Editor) ReorderLayer(ref diagram.ItemReference, action scene.LayerAction) error {
	return e.apply("reorder", func(s scene.State) (scene.State, error) {
		return scene.ReorderLayer(s, e.viewID, ref, action)
	})
}

// Delete removes the entity ref points at. Deleting an anchor removes it
// from its link, and the link too when fewer than two anchors remain.
func (e *Editor) Delete(ref diagram.ItemReference) error {
	switch ref.Type {
	case diagram.TypeItem:
		return e.DeleteViewItem(ref.ID)
	case diagram.TypeRectangle:
		return e.DeleteRectangle(ref.ID)
	case diagram.TypeVolume:
		return e.DeleteVolume(ref.ID)
	case diagram.TypeConnector:
		return e.DeleteConnector(ref.ID)
	case diagram.TypeRoad:
		return e.DeleteRoad(ref.ID)
	case diagram.TypeTextBox:
		return e.DeleteTextBox(ref.ID)
	case diagram.TypeConnectorAnchor, diagram.TypeRoadAnchor:
		return e.deleteAnchor(ref)
	}
	return fmt.Errorf("isoedit: cannot delete %s", ref.Type)
}

func (e *Editor) deleteAnchor(ref diagram.ItemReference) error {
	view, err := e.state.View(e.viewID)
	if err != nil {
		return err
	}
	owner, _, err := view.AnchorByID(ref.ID)
	if err != nil {
		return err
	}
	road := ref.Type == diagram.TypeRoadAnchor
	var link *diagram.Connector
	if road {
		_, link, err = view.RoadByID(owner)
	} else {
		_, link, err = view.ConnectorByID(owner)
	}
	if err != nil {
		return err
	}

	var anchors []diagram.Anchor
	for _, a := range link.Anchors {
		if a.ID != ref.ID {
			anchors = append(anchors, a.Clone())
		}
	}
	switch {
	case len(anchors) < 2 && road:
		return e.DeleteRoad(owner)
	case len(anchors) < 2:
		return e.DeleteConnector(owner)
	case road:
		return e.UpdateRoad(owner, scene.ConnectorPatch{Anchors: anchors})
	default:
		return e.UpdateConnector(owner, scene.ConnectorPatch{Anchors: anchors})
	}
}

// DeleteSelected deletes the entity whose controls are open.
func (e *Editor) DeleteSelected() error {
	c := e.ui.ItemControls
	if c == nil || c.Type == AddItem {
		return ErrNothingSelected
	}
	if err := e.Delete(c.Ref()); err != nil {
		return err
	}
	e.ui.ItemControls = nil
	return nil
}

// StartTextBox creates a text box under the pointer and enters TEXTBOX
// mode so it follows the pointer until placed.
func (e *Editor) StartTextBox() (string, error) {
	tb := diagram.TextBox{
		ID:      diagram.NewID(),
		Tile:    e.ui.Mouse.Position.Tile,
		Content: "Text",
	}
	if err := e.CreateTextBox(tb); err != nil {
		return "", err
	}
	e.SetMode(TextBoxMode{ID: tb.ID})
	return tb.ID, nil
}

// BeginTransform enters the transform mode for a rectangle or volume with
// corner as the dragged handle.
func (e *Editor) BeginTransform(ref diagram.ItemReference, corner Corner) error {
	if e.ui.EditorMode != Editable {
		return ErrReadOnly
	}
	view, err := e.state.View(e.viewID)
	if err != nil {
		return err
	}
	switch ref.Type {
	case diagram.TypeRectangle:
		if _, _, err := view.RectangleByID(ref.ID); err != nil {
			return err
		}
		e.SetMode(TransformRectangleMode{ID: ref.ID, SelectedCorner: corner})
	case diagram.TypeVolume:
		if _, _, err := view.VolumeByID(ref.ID); err != nil {
			return err
		}
		e.SetMode(TransformVolumeMode{ID: ref.ID, SelectedCorner: corner})
	default:
		return fmt.Errorf("isoedit: %s cannot be transformed", ref.Type)
	}
	return nil
}

// CompleteImagePlacement answers a file placement request: the image is
// added as an icon and a node using it is placed on tile.
func (e *Editor) CompleteImagePlacement(tile geometry.Coords, name, url string) (string, error) {
	if e.ui.EditorMode != Editable {
		return "", ErrReadOnly
	}
	icon := diagram.Icon{ID: diagram.NewID(), Name: name, URL: url, Collection: "imported"}
	id := diagram.NewID()

	// e.state only changes if all three steps succeed.
	st, err := scene.CreateIcon(e.state, icon)
	if err == nil {
		st, err = scene.CreateModelItem(st, diagram.ModelItem{ID: id, Name: name, Icon: icon.ID})
	}
	if err == nil {
		st, err = scene.CreateViewItem(st, e.viewID, diagram.ViewItem{ID: id, Tile: tile})
	}
	if err != nil {
		return "", fmt.Errorf("place image: %w", err)
	}
	e.state = st
	e.markDirty()
	e.ui.ItemControls = &ItemControls{Type: diagram.TypeItem, ID: id}
	return id, nil
}
