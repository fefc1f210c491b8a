package editor

import (
	"fmt"
	"unicode"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/logging"
)

// KeyName identifies keys that do not produce a rune.
type KeyName int

const (
	KeyRune KeyName = iota
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// arrowSteps maps arrow keys to the tile step they nudge the selection by.
var arrowSteps = map[KeyName]geometry.Coords{
	KeyArrowUp:    {X: 0, Y: -1},
	KeyArrowDown:  {X: 0, Y: 1},
	KeyArrowLeft:  {X: -1, Y: 0},
	KeyArrowRight: {X: 1, Y: 0},
}

// Key is one key press. Meta is the Cmd key and acts like Ctrl.
type Key struct {
	Name  KeyName
	Rune  rune
	Ctrl  bool
	Shift bool
	Meta  bool
}

// HandleKey runs the shortcut bound to k and reports whether there was
// one. Shortcuts are ignored unless the editor is editable.
func (e *Editor) HandleKey(k Key) bool {
	if e.ui.EditorMode != Editable {
		return false
	}

	switch k.Name {
	case KeyEscape:
		e.SetMode(CursorMode{})
		e.SetItemControls(nil)
		e.SetContextMenu(nil)
		return true
	case KeyDelete, KeyBackspace:
		if err := e.DeleteSelected(); err != nil && err != ErrNothingSelected {
			logging.Logger().Warn("delete failed", "err", err)
		}
		return true
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		if err := e.Nudge(arrowSteps[k.Name]); err != nil && err != ErrNothingSelected {
			logging.Logger().Warn("nudge rejected", "err", err)
		}
		return true
	}

	if k.Ctrl || k.Meta {
		return e.handleCommandKey(k)
	}

	switch k.Rune {
	case '1':
		e.SetMode(CursorMode{})
	case '2':
		e.SetMode(PanMode{})
	case '3':
		e.SetMode(PlaceIconMode{})
		e.SetItemControls(&ItemControls{Type: AddItem})
	case '4':
		e.SetMode(DrawRectangleMode{})
	case '5':
		e.SetMode(ConnectorMode{})
	case '6':
		if _, err := e.StartTextBox(); err != nil {
			logging.Logger().Warn("could not add text", "err", err)
		}
	case '7':
		e.SetMode(DrawVolumeMode{})
	case '8':
		e.SetMode(RoadMode{})
	default:
		return false
	}
	return true
}

// handleCommandKey processes Ctrl and Cmd shortcuts
func (e *Editor) handleCommandKey(k Key) bool {
	var err error
	switch unicode.ToLower(k.Rune) {
	case 'z':
		if k.Shift || unicode.IsUpper(k.Rune) {
			_, err = e.Redo()
		} else {
			_, err = e.Undo()
		}
	case 'y':
		_, err = e.Redo()
	case 'c':
		err = e.Copy()
	case 'v':
		err = e.Paste()
	default:
		return false
	}
	if err != nil && err != ErrNothingSelected {
		logging.Logger().Warn("shortcut failed", "key", string(k.Rune), "err", err)
	}
	return true
}

// Nudge moves the selected node, rectangle, volume or text box by delta.
func (e *Editor) Nudge(delta geometry.Coords) error {
	c := e.ui.ItemControls
	if c == nil || c.Type == AddItem {
		return ErrNothingSelected
	}
	switch c.Type {
	case diagram.TypeItem, diagram.TypeRectangle, diagram.TypeVolume, diagram.TypeTextBox:
		return moveItem(e.modeContext(), c.Ref(), delta)
	}
	return fmt.Errorf("isoedit: %s cannot be nudged", c.Type)
}
