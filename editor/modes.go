package editor

import (
	"isoedit/diagram"
)

// ModeType identifies an interaction mode.
type ModeType int

const (
	ModeCursor ModeType = iota
	ModePan
	ModeDragItems
	ModePlaceIcon
	ModePlaceImage
	ModeRectangleDraw
	ModeRectangleTransform
	ModeVolumeDraw
	ModeVolumeTransform
	ModeConnector
	ModeRoad
	ModeTextBox
	ModeInteractionsDisabled
)

// String returns the mode name for display
func (t ModeType) String() string {
	switch t {
	case ModeCursor:
		return "CURSOR"
	case ModePan:
		return "PAN"
	case ModeDragItems:
		return "DRAG_ITEMS"
	case ModePlaceIcon:
		return "PLACE_ICON"
	case ModePlaceImage:
		return "PLACE_IMAGE"
	case ModeRectangleDraw:
		return "RECTANGLE.DRAW"
	case ModeRectangleTransform:
		return "RECTANGLE.TRANSFORM"
	case ModeVolumeDraw:
		return "VOLUME.DRAW"
	case ModeVolumeTransform:
		return "VOLUME.TRANSFORM"
	case ModeConnector:
		return "CONNECTOR"
	case ModeRoad:
		return "ROAD"
	case ModeTextBox:
		return "TEXTBOX"
	case ModeInteractionsDisabled:
		return "INTERACTIONS_DISABLED"
	default:
		return "UNKNOWN"
	}
}

// Mode is the active interaction mode together with its fields. The set
// of implementations is closed: only the types in this file satisfy it.
type Mode interface {
	Type() ModeType
	isMode()
}

// CursorMode is the default select and drag-initiate mode.
type CursorMode struct {
	MousedownItem *diagram.ItemReference
}

// PanMode scrolls the viewport. PreviousMode is set when panning started
// from a click on empty canvas and is restored on mouseup.
type PanMode struct {
	PreviousMode Mode
}

// DragItemsMode translates Items with the pointer.
type DragItemsMode struct {
	Items             []diagram.ItemReference
	IsInitialMovement bool
}

// PlaceIconMode places a new node using icon ID on click.
type PlaceIconMode struct {
	ID string
}

// PlaceImageMode asks the file placement callback for an image on click.
type PlaceImageMode struct{}

// DrawRectangleMode drags out a new rectangle. ID is empty until the
// first mousedown creates it.
type DrawRectangleMode struct {
	ID string
}

// DrawVolumeMode drags out a new volume.
type DrawVolumeMode struct {
	ID string
}

// Corner names a corner handle of a rectangle's tile bounding box.
type Corner string

const (
	CornerTop    Corner = "TOP"
	CornerRight  Corner = "RIGHT"
	CornerBottom Corner = "BOTTOM"
	CornerLeft   Corner = "LEFT"
)

// TransformRectangleMode resizes rectangle ID by SelectedCorner.
type TransformRectangleMode struct {
	ID             string
	SelectedCorner Corner
}

// TransformVolumeMode resizes the base of volume ID by SelectedCorner.
type TransformVolumeMode struct {
	ID             string
	SelectedCorner Corner
}

// ConnectorMode draws connectors. ID is the connector being drawn.
type ConnectorMode struct {
	ID string
}

// RoadMode draws roads.
type RoadMode struct {
	ID string
}

// TextBoxMode follows the pointer with text box ID until it is placed.
type TextBoxMode struct {
	ID string
}

// InteractionsDisabledMode ignores all pointer input.
type InteractionsDisabledMode struct{}

func (CursorMode) Type() ModeType               { return ModeCursor }
func (PanMode) Type() ModeType                  { return ModePan }
func (DragItemsMode) Type() ModeType            { return ModeDragItems }
func (PlaceIconMode) Type() ModeType            { return ModePlaceIcon }
func (PlaceImageMode) Type() ModeType           { return ModePlaceImage }
func (DrawRectangleMode) Type() ModeType        { return ModeRectangleDraw }
func (DrawVolumeMode) Type() ModeType           { return ModeVolumeDraw }
func (TransformRectangleMode) Type() ModeType   { return ModeRectangleTransform }
func (TransformVolumeMode) Type() ModeType      { return ModeVolumeTransform }
func (ConnectorMode) Type() ModeType            { return ModeConnector }
func (RoadMode) Type() ModeType                 { return ModeRoad }
func (TextBoxMode) Type() ModeType              { return ModeTextBox }
func (InteractionsDisabledMode) Type() ModeType { return ModeInteractionsDisabled }

func (CursorMode) isMode()               {}
func (PanMode) isMode()                  {}
func (DragItemsMode) isMode()            {}
func (PlaceIconMode) isMode()            {}
func (PlaceImageMode) isMode()           {}
func (DrawRectangleMode) isMode()        {}
func (DrawVolumeMode) isMode()           {}
func (TransformRectangleMode) isMode()   {}
func (TransformVolumeMode) isMode()      {}
func (ConnectorMode) isMode()            {}
func (RoadMode) isMode()                 {}
func (TextBoxMode) isMode()              {}
func (InteractionsDisabledMode) isMode() {}

// cloneMode copies m together with the references and items it holds.
func cloneMode(m Mode) Mode {
	switch m := m.(type) {
	case CursorMode:
		if m.MousedownItem != nil {
			ref := *m.MousedownItem
			m.MousedownItem = &ref
		}
		return m
	case PanMode:
		m.PreviousMode = cloneMode(m.PreviousMode)
		return m
	case DragItemsMode:
		m.Items = append([]diagram.ItemReference(nil), m.Items...)
		return m
	}
	return m
}
