package editor

import (
	"fmt"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/logging"
	"isoedit/scene"
)

type dragItemsHandler struct{ NopHandler }

func (dragItemsHandler) Entry(ctx *ModeContext) {
	ctx.UIActions.SetCursor(CursorGrabbing)
}

func (dragItemsHandler) Exit(ctx *ModeContext) {
	ctx.UIActions.SetCursor(CursorDefault)
}

func (dragItemsHandler) MouseMove(ctx *ModeContext) {
	mode, ok := ctx.UI.Mode.(DragItemsMode)
	mouse := ctx.UI.Mouse
	if !ok || mouse.Mousedown == nil {
		return
	}

	var delta geometry.Coords
	switch {
	case mode.IsInitialMovement:
		// The move that started the drag was never applied.
		delta = mouse.Position.Tile.Sub(mouse.Mousedown.Tile)
	case HasMovedTile(mouse):
		delta = mouse.Delta.Tile
	default:
		return
	}

	for _, item := range mode.Items {
		if err := moveItem(ctx, item, delta); err != nil {
			logging.Logger().Warn("drag rejected", "type", item.Type, "id", item.ID, "err", err)
		}
	}

	if mode.IsInitialMovement {
		ctx.UIActions.SetMode(DragItemsMode{Items: mode.Items})
	}
}

func (dragItemsHandler) MouseUp(ctx *ModeContext) {
	ctx.UIActions.SetMode(CursorMode{})
}

// moveItem translates one dragged entity by delta. Anchors are not
// translated; they are rebound to whatever is under the pointer.
func moveItem(ctx *ModeContext, item diagram.ItemReference, delta geometry.Coords) error {
	view := ctx.View
	switch item.Type {
	case diagram.TypeItem:
		_, vi, err := view.ItemByID(item.ID)
		if err != nil {
			return err
		}
		tile := vi.Tile.Add(delta)
		return ctx.SceneActions.UpdateViewItem(item.ID, scene.ViewItemPatch{Tile: &tile})

	case diagram.TypeRectangle:
		_, r, err := view.RectangleByID(item.ID)
		if err != nil {
			return err
		}
		from, to := r.From.Add(delta), r.To.Add(delta)
		return ctx.SceneActions.UpdateRectangle(item.ID, scene.RectanglePatch{From: &from, To: &to})

	case diagram.TypeVolume:
		_, v, err := view.VolumeByID(item.ID)
		if err != nil {
			return err
		}
		from, to := v.From.Add(delta), v.To.Add(delta)
		return ctx.SceneActions.UpdateVolume(item.ID, scene.VolumePatch{
			RectanglePatch: scene.RectanglePatch{From: &from, To: &to},
		})

	case diagram.TypeTextBox:
		_, tb, err := view.TextBoxByID(item.ID)
		if err != nil {
			return err
		}
		tile := tb.Tile.Add(delta)
		return ctx.SceneActions.UpdateTextBox(item.ID, scene.TextBoxPatch{Tile: &tile})

	case diagram.TypeConnectorAnchor, diagram.TypeRoadAnchor:
		return rebindAnchor(ctx, item, anchorRefAt(view, ctx.UI.Mouse.Position.Tile))
	}
	return fmt.Errorf("%s cannot be dragged", item.Type)
}

// rebindAnchor points anchor item at ref and updates the owning link.
func rebindAnchor(ctx *ModeContext, item diagram.ItemReference, ref diagram.AnchorRef) error {
	owner, _, err := ctx.View.AnchorByID(item.ID)
	if err != nil {
		return err
	}

	var link *diagram.Connector
	if item.Type == diagram.TypeRoadAnchor {
		_, link, err = ctx.View.RoadByID(owner)
	} else {
		_, link, err = ctx.View.ConnectorByID(owner)
	}
	if err != nil {
		return err
	}

	anchors := make([]diagram.Anchor, len(link.Anchors))
	for i, a := range link.Anchors {
		anchors[i] = a.Clone()
		if a.ID == item.ID {
			anchors[i].Ref = ref
		}
	}
	patch := scene.ConnectorPatch{Anchors: anchors}
	if item.Type == diagram.TypeRoadAnchor {
		return ctx.SceneActions.UpdateRoad(owner, patch)
	}
	return ctx.SceneActions.UpdateConnector(owner, patch)
}
