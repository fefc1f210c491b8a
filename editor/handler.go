package editor

import (
	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/scene"
)

// SceneActions is the part of the action surface that edits the model of
// the editor's current view. Every method either applies the edit or
// returns an error and leaves the model untouched.
type SceneActions interface {
	CreateModelItem(diagram.ModelItem) error
	UpdateModelItem(id string, patch scene.ModelItemPatch) error
	DeleteModelItem(id string) error
	CreateViewItem(diagram.ViewItem) error
	UpdateViewItem(id string, patch scene.ViewItemPatch) error
	DeleteViewItem(id string) error

	CreateRectangle(diagram.Rectangle) error
	UpdateRectangle(id string, patch scene.RectanglePatch) error
	DeleteRectangle(id string) error

	CreateVolume(diagram.Volume) error
	UpdateVolume(id string, patch scene.VolumePatch) error
	DeleteVolume(id string) error

	CreateConnector(diagram.Connector) error
	UpdateConnector(id string, patch scene.ConnectorPatch) error
	DeleteConnector(id string) error

	CreateRoad(diagram.Connector) error
	UpdateRoad(id string, patch scene.ConnectorPatch) error
	DeleteRoad(id string) error

	CreateTextBox(diagram.TextBox) error
	UpdateTextBox(id string, patch scene.TextBoxPatch) error
	DeleteTextBox(id string) error

	ReorderLayer(ref diagram.ItemReference, action scene.LayerAction) error
}

// ModeContext is what a mode handler sees of the editor: a snapshot of
// the UI state, read-only access to the current view and its scene, and
// the two action surfaces. Handlers supplied through Options.Handlers get
// private copies of Model, View and Scene, so the action surfaces are
// their only way to change the diagram.
type ModeContext struct {
	UI    UIState
	Model *diagram.Model
	View  *diagram.View
	Scene *scene.Scene

	UIActions    UIActions
	SceneActions SceneActions
}

// ModeHandler reacts to the pointer while its mode is active. Entry and
// Exit run once per mode transition, before the event that observed it.
type ModeHandler interface {
	Entry(ctx *ModeContext)
	Exit(ctx *ModeContext)
	MouseMove(ctx *ModeContext)
	MouseDown(ctx *ModeContext)
	MouseUp(ctx *ModeContext)
}

// NopHandler implements ModeHandler with no-ops. Handlers embed it and
// override what they need.
type NopHandler struct{}

func (NopHandler) Entry(*ModeContext)     {}
func (NopHandler) Exit(*ModeContext)      {}
func (NopHandler) MouseMove(*ModeContext) {}
func (NopHandler) MouseDown(*ModeContext) {}
func (NopHandler) MouseUp(*ModeContext)   {}

// isolated runs an injected handler against copies of the editor's model
// and scene.
type isolated struct{ h ModeHandler }

func (i isolated) Entry(ctx *ModeContext)     { i.h.Entry(detach(ctx)) }
func (i isolated) Exit(ctx *ModeContext)      { i.h.Exit(detach(ctx)) }
func (i isolated) MouseMove(ctx *ModeContext) { i.h.MouseMove(detach(ctx)) }
func (i isolated) MouseDown(ctx *ModeContext) { i.h.MouseDown(detach(ctx)) }
func (i isolated) MouseUp(ctx *ModeContext)   { i.h.MouseUp(detach(ctx)) }

func detach(ctx *ModeContext) *ModeContext {
	c := *ctx
	c.Model = ctx.Model.Clone()
	c.View = nil
	if c.Model != nil && ctx.View != nil {
		_, c.View, _ = c.Model.ViewByID(ctx.View.ID)
	}
	c.Scene = ctx.Scene.Clone()
	return &c
}

// DefaultHandlers returns a fresh handler for every mode type.
func DefaultHandlers() map[ModeType]ModeHandler {
	return map[ModeType]ModeHandler{
		ModeCursor:               cursorHandler{},
		ModePan:                  panHandler{},
		ModeDragItems:            dragItemsHandler{},
		ModePlaceIcon:            placeIconHandler{},
		ModePlaceImage:           placeImageHandler{},
		ModeRectangleDraw:        drawHandler{volume: false},
		ModeVolumeDraw:           drawHandler{volume: true},
		ModeRectangleTransform:   transformHandler{volume: false},
		ModeVolumeTransform:      transformHandler{volume: true},
		ModeConnector:            linkHandler{road: false},
		ModeRoad:                 linkHandler{road: true},
		ModeTextBox:              textBoxHandler{},
		ModeInteractionsDisabled: NopHandler{},
	}
}

// crosshairCursor is shared by the drawing and placing modes.
type crosshairCursor struct{ NopHandler }

func (crosshairCursor) Entry(ctx *ModeContext) { ctx.UIActions.SetCursor(CursorCrosshair) }
func (crosshairCursor) Exit(ctx *ModeContext)  { ctx.UIActions.SetCursor(CursorDefault) }

// viewItemAt returns the id of the view item on tile.
func viewItemAt(view *diagram.View, tile geometry.Coords) (string, bool) {
	for _, item := range view.Items {
		if item.Tile == tile {
			return item.ID, true
		}
	}
	return "", false
}

// anchorRefAt binds to the view item on tile, or to the tile itself.
func anchorRefAt(view *diagram.View, tile geometry.Coords) diagram.AnchorRef {
	if id, ok := viewItemAt(view, tile); ok {
		return diagram.ItemRef(id)
	}
	return diagram.TileRef(tile)
}
