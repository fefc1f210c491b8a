package editor

import (
	"isoedit/diagram"
	"isoedit/logging"
	"isoedit/scene"
)

// textBoxHandler carries a new text box with the pointer until the next
// click drops it.
type textBoxHandler struct{ crosshairCursor }

func (textBoxHandler) MouseMove(ctx *ModeContext) {
	mode, _ := ctx.UI.Mode.(TextBoxMode)
	if mode.ID == "" {
		return
	}
	_, tb, err := ctx.View.TextBoxByID(mode.ID)
	if err != nil {
		return
	}
	tile := ctx.UI.Mouse.Position.Tile
	if tb.Tile == tile {
		return
	}
	if err := ctx.SceneActions.UpdateTextBox(mode.ID, scene.TextBoxPatch{Tile: &tile}); err != nil {
		logging.Logger().Warn("text box move rejected", "id", mode.ID, "err", err)
	}
}

func (textBoxHandler) MouseUp(ctx *ModeContext) {
	mode, _ := ctx.UI.Mode.(TextBoxMode)
	if mode.ID == "" {
		return
	}
	ctx.UIActions.SetMode(CursorMode{})
	ctx.UIActions.SetItemControls(&ItemControls{Type: diagram.TypeTextBox, ID: mode.ID})
}
