package editor

import (
	"fmt"
	"strings"

	"isoedit/diagram"
	"isoedit/geometry"
)

// EditorMode controls how much of the editor is interactive.
type EditorMode string

const (
	Editable           EditorMode = "EDITABLE"
	ExplorableReadonly EditorMode = "EXPLORABLE_READONLY"
	NonInteractive     EditorMode = "NON_INTERACTIVE"
)

// ParseEditorMode accepts an editor mode name in any case.
func ParseEditorMode(s string) (EditorMode, error) {
	switch m := EditorMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case Editable, ExplorableReadonly, NonInteractive:
		return m, nil
	}
	return "", fmt.Errorf("unknown editor mode %q", s)
}

// CursorStyle is the pointer shape a front-end should show.
type CursorStyle string

const (
	CursorDefault   CursorStyle = "default"
	CursorGrab      CursorStyle = "grab"
	CursorGrabbing  CursorStyle = "grabbing"
	CursorCrosshair CursorStyle = "crosshair"
)

// AddItem is the item controls type of the icon picker.
const AddItem diagram.ItemType = "ADD_ITEM"

// ItemControls is the entity whose controls panel is open. It doubles as
// the selection.
type ItemControls struct {
	Type diagram.ItemType
	ID   string
}

// Ref returns the controlled entity as an item reference.
func (c ItemControls) Ref() diagram.ItemReference {
	return diagram.ItemReference{Type: c.Type, ID: c.ID}
}

// MousePosition is a pointer position in screen pixels and in tiles.
type MousePosition struct {
	Screen geometry.Point
	Tile   geometry.Coords
}

// Mousedown records where and with which button a drag started.
type Mousedown struct {
	Screen geometry.Point
	Tile   geometry.Coords
	Button Button
}

// Delta is the movement since the previous pointer event.
type Delta struct {
	Screen geometry.Point
	Tile   geometry.Coords
}

// MouseState is the normalised pointer state. Mousedown is nil when no
// button is held and Delta is only set while one is.
type MouseState struct {
	Position  MousePosition
	Mousedown *Mousedown
	Delta     *Delta
}

// HasMovedTile reports whether the last event crossed into another tile
// during a drag.
func HasMovedTile(m MouseState) bool {
	return m.Delta != nil && !m.Delta.Tile.IsZero()
}

// UIState is everything about the editor that is not persisted.
type UIState struct {
	Mode         Mode
	EditorMode   EditorMode
	Mouse        MouseState
	Zoom         float64
	Scroll       geometry.Scroll
	RendererSize geometry.Size
	ItemControls *ItemControls
	ContextMenu  *ContextMenu
	Cursor       CursorStyle
}

// Clone copies the state so the copy shares no pointers with s.
func (s UIState) Clone() UIState {
	c := s
	c.Mode = cloneMode(s.Mode)
	if s.ItemControls != nil {
		ic := *s.ItemControls
		c.ItemControls = &ic
	}
	if s.ContextMenu != nil {
		cm := *s.ContextMenu
		cm.Items = append([]ContextMenuItem(nil), s.ContextMenu.Items...)
		c.ContextMenu = &cm
	}
	if s.Mouse.Mousedown != nil {
		md := *s.Mouse.Mousedown
		c.Mouse.Mousedown = &md
	}
	if s.Mouse.Delta != nil {
		d := *s.Mouse.Delta
		c.Mouse.Delta = &d
	}
	return c
}

// defaultMode is the mode an editor mode starts in.
func defaultMode(m EditorMode) Mode {
	switch m {
	case ExplorableReadonly:
		return PanMode{}
	case NonInteractive:
		return InteractionsDisabledMode{}
	default:
		return CursorMode{}
	}
}

// UIActions is the part of the action surface that changes UI state.
type UIActions interface {
	SetMode(Mode)
	SetItemControls(*ItemControls)
	SetContextMenu(*ContextMenu)
	SetCursor(CursorStyle)
	SetZoom(float64)
	SetScroll(geometry.Scroll)
	RequestFilePlacement(tile geometry.Coords)
}
