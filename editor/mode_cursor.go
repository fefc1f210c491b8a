package editor

import (
	"isoedit/diagram"
	"isoedit/logging"
	"isoedit/scene"
)

type cursorHandler struct{ NopHandler }

func (cursorHandler) MouseDown(ctx *ModeContext) {
	if ctx.UI.EditorMode != Editable {
		return
	}
	tile := ctx.UI.Mouse.Position.Tile
	if ref, ok := scene.ItemAtTile(ctx.View, ctx.Scene, tile); ok {
		ctx.UIActions.SetMode(CursorMode{MousedownItem: &ref})
		return
	}
	// Empty canvas: pan until mouseup, then come back here.
	ctx.UIActions.SetMode(PanMode{PreviousMode: ctx.UI.Mode})
	ctx.UIActions.SetItemControls(nil)
}

func (cursorHandler) MouseMove(ctx *ModeContext) {
	mode, ok := ctx.UI.Mode.(CursorMode)
	mouse := ctx.UI.Mouse
	if !ok || mode.MousedownItem == nil || mouse.Mousedown == nil || !HasMovedTile(mouse) {
		return
	}

	item := *mode.MousedownItem
	if item.Type == diagram.TypeConnector || item.Type == diagram.TypeRoad {
		ref, ok := grabAnchor(ctx, item)
		if !ok {
			return
		}
		item = ref
	}
	ctx.UIActions.SetMode(DragItemsMode{
		Items:             []diagram.ItemReference{item},
		IsInitialMovement: true,
	})
}

// grabAnchor returns the anchor of link under the mousedown tile, adding a
// new one in path order when there is none.
func grabAnchor(ctx *ModeContext, link diagram.ItemReference) (diagram.ItemReference, bool) {
	anchorType := diagram.TypeConnectorAnchor
	if link.Type == diagram.TypeRoad {
		anchorType = diagram.TypeRoadAnchor
	}
	tile := ctx.UI.Mouse.Mousedown.Tile

	if a, ok := scene.AnchorAtTile(ctx.View, link.Type, link.ID, tile); ok {
		return diagram.ItemReference{Type: anchorType, ID: a.ID}, true
	}

	anchor := diagram.Anchor{ID: diagram.NewID(), Ref: diagram.TileRef(tile)}
	anchors, err := scene.InsertAnchorInPathOrder(ctx.View, ctx.Scene, link.Type, link.ID, anchor)
	if err == nil {
		patch := scene.ConnectorPatch{Anchors: anchors}
		if link.Type == diagram.TypeRoad {
			err = ctx.SceneActions.UpdateRoad(link.ID, patch)
		} else {
			err = ctx.SceneActions.UpdateConnector(link.ID, patch)
		}
	}
	if err != nil {
		logging.Logger().Warn("could not add anchor", "link", link.ID, "err", err)
		return diagram.ItemReference{}, false
	}
	return diagram.ItemReference{Type: anchorType, ID: anchor.ID}, true
}

func (cursorHandler) MouseUp(ctx *ModeContext) {
	mode, _ := ctx.UI.Mode.(CursorMode)
	if mode.MousedownItem != nil {
		ctx.UIActions.SetItemControls(&ItemControls{Type: mode.MousedownItem.Type, ID: mode.MousedownItem.ID})
	} else {
		ctx.UIActions.SetItemControls(nil)
	}
	ctx.UIActions.SetMode(CursorMode{})
}
