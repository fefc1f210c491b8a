package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/importer"
)

// Clipboard reads and writes text on a clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

const selectionFormat = "isoedit/selection"

// selection is the clipboard form of one copied entity.
type selection struct {
	Format    string             `json:"format"`
	ModelItem *diagram.ModelItem `json:"modelItem,omitempty"`
	ViewItem  *diagram.ViewItem  `json:"viewItem,omitempty"`
	Rectangle *diagram.Rectangle `json:"rectangle,omitempty"`
	Volume    *diagram.Volume    `json:"volume,omitempty"`
	TextBox   *diagram.TextBox   `json:"textBox,omitempty"`
}

// Copy writes the selected entity to the clipboard.
func (e *Editor) Copy() error {
	c := e.ui.ItemControls
	if c == nil || c.Type == AddItem {
		return ErrNothingSelected
	}
	view, err := e.state.View(e.viewID)
	if err != nil {
		return err
	}

	sel := selection{Format: selectionFormat}
	switch c.Type {
	case diagram.TypeItem:
		_, vi, err := view.ItemByID(c.ID)
		if err != nil {
			return err
		}
		_, mi, err := e.state.Model.ModelItemByID(c.ID)
		if err != nil {
			return err
		}
		sel.ViewItem, sel.ModelItem = vi, mi
	case diagram.TypeRectangle:
		_, r, err := view.RectangleByID(c.ID)
		if err != nil {
			return err
		}
		sel.Rectangle = r
	case diagram.TypeVolume:
		_, v, err := view.VolumeByID(c.ID)
		if err != nil {
			return err
		}
		sel.Volume = v
	case diagram.TypeTextBox:
		_, tb, err := view.TextBoxByID(c.ID)
		if err != nil {
			return err
		}
		sel.TextBox = tb
	default:
		return fmt.Errorf("isoedit: %s cannot be copied", c.Type)
	}

	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	return e.clipboard.WriteAll(string(data))
}

// Paste places a copied entity under the pointer with fresh ids. Anything
// else on the clipboard replaces the whole model as one undoable edit.
func (e *Editor) Paste() error {
	if e.ui.EditorMode != Editable {
		return ErrReadOnly
	}
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}

	var sel selection
	if json.Unmarshal([]byte(text), &sel) != nil || sel.Format != selectionFormat {
		m, err := importer.Load([]byte(text))
		if err != nil {
			return err
		}
		if err := e.SetModel(m); err != nil {
			return err
		}
		e.ui.ItemControls = nil
		e.ui.ContextMenu = nil
		return nil
	}

	tile := e.ui.Mouse.Position.Tile
	id := diagram.NewID()
	var controls ItemControls

	switch {
	case sel.ViewItem != nil:
		item := diagram.ModelItem{ID: id, Name: diagram.StubName(id)}
		if sel.ModelItem != nil {
			item = *sel.ModelItem
			item.ID = id
		}
		if err := e.CreateModelItem(item); err != nil {
			return err
		}
		vi := *sel.ViewItem
		vi.ID, vi.Tile = id, tile
		if err := e.CreateViewItem(vi); err != nil {
			_ = e.DeleteModelItem(id)
			return err
		}
		controls = ItemControls{Type: diagram.TypeItem, ID: id}

	case sel.Rectangle != nil:
		r := sel.Rectangle.Clone()
		r.ID = id
		r.From, r.To = moveRange(r.From, r.To, tile)
		if err := e.CreateRectangle(r); err != nil {
			return err
		}
		controls = ItemControls{Type: diagram.TypeRectangle, ID: id}

	case sel.Volume != nil:
		v := sel.Volume.Clone()
		v.ID = id
		v.From, v.To = moveRange(v.From, v.To, tile)
		if err := e.CreateVolume(v); err != nil {
			return err
		}
		controls = ItemControls{Type: diagram.TypeVolume, ID: id}

	case sel.TextBox != nil:
		tb := *sel.TextBox
		tb.ID, tb.Tile = id, tile
		if err := e.CreateTextBox(tb); err != nil {
			return err
		}
		controls = ItemControls{Type: diagram.TypeTextBox, ID: id}

	default:
		return errors.New("isoedit: clipboard selection is empty")
	}

	e.ui.ItemControls = &controls
	return nil
}

// moveRange translates from/to so that from lands on tile.
func moveRange(from, to, tile geometry.Coords) (geometry.Coords, geometry.Coords) {
	delta := tile.Sub(from)
	return from.Add(delta), to.Add(delta)
}
