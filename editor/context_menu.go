package editor

import (
	"fmt"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/scene"
)

// ContextMenuAction is what a context menu entry does.
type ContextMenuAction string

const (
	ActionBringToFront ContextMenuAction = "BRING_TO_FRONT"
	ActionBringForward ContextMenuAction = "BRING_FORWARD"
	ActionSendBackward ContextMenuAction = "SEND_BACKWARD"
	ActionSendToBack   ContextMenuAction = "SEND_TO_BACK"
	ActionDelete       ContextMenuAction = "DELETE"
	ActionAddNode      ContextMenuAction = "ADD_NODE"
	ActionAddRectangle ContextMenuAction = "ADD_RECTANGLE"
	ActionAddTextBox   ContextMenuAction = "ADD_TEXTBOX"
)

// ContextMenuItem is one entry of a context menu.
type ContextMenuItem struct {
	Label  string
	Action ContextMenuAction
}

// ContextMenu is an open context menu. Item is the entity it was opened
// on, or nil for empty canvas.
type ContextMenu struct {
	Tile  geometry.Coords
	Item  *diagram.ItemReference
	Items []ContextMenuItem
}

var itemMenu = []ContextMenuItem{
	{Label: "Bring to front", Action: ActionBringToFront},
	{Label: "Bring forward", Action: ActionBringForward},
	{Label: "Send backward", Action: ActionSendBackward},
	{Label: "Send to back", Action: ActionSendToBack},
	{Label: "Delete", Action: ActionDelete},
}

var emptyMenu = []ContextMenuItem{
	{Label: "Add node", Action: ActionAddNode},
	{Label: "Add rectangle", Action: ActionAddRectangle},
	{Label: "Add text", Action: ActionAddTextBox},
}

var layerActions = map[ContextMenuAction]scene.LayerAction{
	ActionBringToFront: scene.BringToFront,
	ActionBringForward: scene.BringForward,
	ActionSendBackward: scene.SendBackward,
	ActionSendToBack:   scene.SendToBack,
}

// openContextMenu opens the item menu over an entity and the creation
// menu over empty canvas. Read-only editors get no menu.
func (e *Editor) openContextMenu(pos geometry.Point) {
	if e.ui.EditorMode != Editable {
		return
	}
	tile := geometry.ScreenToIso(pos, e.ui.Zoom, e.ui.Scroll, e.ui.RendererSize)
	menu := &ContextMenu{Tile: tile}

	view, err := e.state.View(e.viewID)
	if err != nil {
		return
	}
	if ref, ok := scene.ItemAtTile(view, e.state.Scene, tile); ok {
		menu.Item = &ref
		menu.Items = append([]ContextMenuItem(nil), itemMenu...)
	} else {
		menu.Items = append([]ContextMenuItem(nil), emptyMenu...)
	}
	e.ui.ContextMenu = menu
}

// ApplyContextMenuAction runs action against the open context menu and
// closes it.
func (e *Editor) ApplyContextMenuAction(action ContextMenuAction) error {
	menu := e.ui.ContextMenu
	if menu == nil {
		return fmt.Errorf("isoedit: no context menu is open")
	}
	e.ui.ContextMenu = nil

	if layer, ok := layerActions[action]; ok && menu.Item != nil {
		return e.ReorderLayer(*menu.Item, layer)
	}

	switch {
	case action == ActionDelete && menu.Item != nil:
		if err := e.Delete(*menu.Item); err != nil {
			return err
		}
		if c := e.ui.ItemControls; c != nil && c.Ref() == *menu.Item {
			e.ui.ItemControls = nil
		}
		return nil

	case action == ActionAddNode && menu.Item == nil:
		id := diagram.NewID()
		icon := ""
		if len(e.state.Model.Icons) > 0 {
			icon = e.state.Model.Icons[0].ID
		}
		if err := e.CreateModelItem(diagram.ModelItem{ID: id, Name: "Untitled", Icon: icon}); err != nil {
			return err
		}
		if err := e.CreateViewItem(diagram.ViewItem{ID: id, Tile: menu.Tile}); err != nil {
			return err
		}
		e.ui.ItemControls = &ItemControls{Type: diagram.TypeItem, ID: id}
		return nil

	case action == ActionAddRectangle && menu.Item == nil:
		r := diagram.Rectangle{
			ID:    diagram.NewID(),
			From:  menu.Tile,
			To:    menu.Tile.Add(geometry.Coords{X: 1, Y: 1}),
			Color: e.state.Model.DefaultColorID(),
		}
		if err := e.CreateRectangle(r); err != nil {
			return err
		}
		e.ui.ItemControls = &ItemControls{Type: diagram.TypeRectangle, ID: r.ID}
		return nil

	case action == ActionAddTextBox && menu.Item == nil:
		tb := diagram.TextBox{ID: diagram.NewID(), Tile: menu.Tile, Content: "Text"}
		if err := e.CreateTextBox(tb); err != nil {
			return err
		}
		e.ui.ItemControls = &ItemControls{Type: diagram.TypeTextBox, ID: tb.ID}
		return nil
	}
	return fmt.Errorf("isoedit: %s is not available here", action)
}
