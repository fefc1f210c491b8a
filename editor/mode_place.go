package editor

import (
	"isoedit/diagram"
	"isoedit/logging"
)

type placeIconHandler struct{ crosshairCursor }

func (placeIconHandler) MouseDown(ctx *ModeContext) {
	if mode, _ := ctx.UI.Mode.(PlaceIconMode); mode.ID == "" {
		ctx.UIActions.SetMode(CursorMode{})
		ctx.UIActions.SetItemControls(nil)
	}
}

func (placeIconHandler) MouseUp(ctx *ModeContext) {
	mode, _ := ctx.UI.Mode.(PlaceIconMode)
	if mode.ID == "" {
		return
	}
	tile := ctx.UI.Mouse.Position.Tile
	if _, taken := viewItemAt(ctx.View, tile); taken {
		logging.Logger().Debug("tile already holds an item", "tile", tile)
		return
	}

	id := diagram.NewID()
	if err := ctx.SceneActions.CreateModelItem(diagram.ModelItem{ID: id, Name: "Untitled", Icon: mode.ID}); err != nil {
		logging.Logger().Warn("could not place icon", "icon", mode.ID, "err", err)
		return
	}
	if err := ctx.SceneActions.CreateViewItem(diagram.ViewItem{ID: id, Tile: tile}); err != nil {
		logging.Logger().Warn("could not place icon", "icon", mode.ID, "err", err)
		_ = ctx.SceneActions.DeleteModelItem(id)
		return
	}
	ctx.UIActions.SetMode(CursorMode{})
	ctx.UIActions.SetItemControls(&ItemControls{Type: diagram.TypeItem, ID: id})
}

type placeImageHandler struct{ crosshairCursor }

func (placeImageHandler) MouseUp(ctx *ModeContext) {
	ctx.UIActions.RequestFilePlacement(ctx.UI.Mouse.Position.Tile)
	ctx.UIActions.SetMode(CursorMode{})
}
