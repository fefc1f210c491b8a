package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"isoedit/diagram"
	"isoedit/editor"
	"isoedit/geometry"
)

var (
	styleBase     = tcell.StyleDefault
	styleGridEven = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleGridOdd  = tcell.StyleDefault.Background(tcell.NewRGBColor(24, 24, 28))
	styleRoad     = tcell.StyleDefault.Background(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleMenu     = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
)

// frame is the per-draw lookup of what occupies each tile, front-most
// entity first.
type frame struct {
	model  *diagram.Model
	view   *diagram.View
	items  map[geometry.Coords]*diagram.ViewItem
	paths  map[geometry.Coords]tcell.Color
	roads  map[geometry.Coords]bool
	texts  map[geometry.Coords]*diagram.TextBox
	labels map[geometry.Coords]string
}

func (a *App) newFrame() *frame {
	m := a.ed.Model()
	_, view, err := m.ViewByID(a.ed.ViewID())
	if err != nil {
		return nil
	}
	sc := a.ed.Scene()
	f := &frame{
		model:  m,
		view:   view,
		items:  make(map[geometry.Coords]*diagram.ViewItem),
		paths:  make(map[geometry.Coords]tcell.Color),
		roads:  make(map[geometry.Coords]bool),
		texts:  make(map[geometry.Coords]*diagram.TextBox),
		labels: make(map[geometry.Coords]string),
	}
	for i := len(view.Items) - 1; i >= 0; i-- {
		it := &view.Items[i]
		f.items[it.Tile] = it
		name := it.ID
		if _, mi, err := m.ModelItemByID(it.ID); err == nil && mi.Name != "" {
			name = mi.Name
		}
		f.labels[it.Tile] = name
	}
	for _, c := range view.Connectors {
		color := f.color(c.Color)
		for _, t := range sc.Connectors[c.ID].Path.Tiles {
			f.paths[t] = color
		}
	}
	for _, r := range view.Roads {
		for _, t := range sc.Roads[r.ID].Path.Tiles {
			f.roads[t] = true
		}
	}
	for i := range view.TextBoxes {
		tb := &view.TextBoxes[i]
		f.texts[tb.Tile] = tb
	}
	return f
}

func (f *frame) color(id string) tcell.Color {
	return tcell.GetColor(f.model.ColorOrDefault(id).Value)
}

// style returns the cell style for tile, checking entities front to back.
func (f *frame) style(tile geometry.Coords) tcell.Style {
	if it, ok := f.items[tile]; ok {
		return styleBase.Background(f.color(it.Color)).Foreground(tcell.ColorBlack)
	}
	if c, ok := f.paths[tile]; ok {
		return styleBase.Background(c)
	}
	if f.roads[tile] {
		return styleRoad
	}
	for _, v := range f.view.Volumes {
		if v.Bounds().Contains(tile) {
			return styleBase.Background(f.color(v.Color)).Bold(true)
		}
	}
	for _, r := range f.view.Rectangles {
		if r.Bounds().Contains(tile) {
			return styleBase.Background(f.color(r.Color)).Dim(true)
		}
	}
	if (tile.X+tile.Y)%2 == 0 {
		return styleGridEven
	}
	return styleGridOdd
}

// selected reports whether tile belongs to the entity with open controls.
func (f *frame) selected(tile geometry.Coords, c *editor.ItemControls) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case diagram.TypeItem:
		it, ok := f.items[tile]
		return ok && it.ID == c.ID
	case diagram.TypeRectangle:
		_, r, err := f.view.RectangleByID(c.ID)
		return err == nil && r.Bounds().Contains(tile)
	case diagram.TypeVolume:
		_, v, err := f.view.VolumeByID(c.ID)
		return err == nil && v.Bounds().Contains(tile)
	case diagram.TypeTextBox:
		tb, ok := f.texts[tile]
		return ok && tb.ID == c.ID
	}
	return false
}

// Draw renders the current view, context menu and status line.
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	ui := a.ed.UI()

	f := a.newFrame()
	if f != nil {
		for y := 0; y < h-1; y++ {
			for x := 0; x < w; x++ {
				tile := geometry.ScreenToIso(cellCenter(x, y), ui.Zoom, ui.Scroll, ui.RendererSize)
				st := f.style(tile)
				if f.selected(tile, ui.ItemControls) {
					st = st.Reverse(true)
				}
				s.SetContent(x, y, ' ', nil, st)
			}
		}
		for tile, name := range f.labels {
			a.drawLabel(tile, name, f.style(tile))
		}
		for tile, tb := range f.texts {
			a.drawLabel(tile, tb.Content, f.style(tile).Foreground(f.color(tb.Color)).Bold(tb.IsBold).Italic(tb.IsItalic))
		}
	}

	if ui.ContextMenu != nil {
		a.drawMenu(ui.ContextMenu)
	}
	a.drawStatus(ui, w, h)
	s.Show()
}

// labelCell returns the cell under the centre of tile.
func (a *App) labelCell(tile geometry.Coords) (int, int) {
	ui := a.ed.UI()
	p := geometry.IsoToScreen(tile, ui.Zoom, ui.Scroll, ui.RendererSize)
	return int(p.X / CellSize.Width), int(p.Y / CellSize.Height)
}

func (a *App) drawLabel(tile geometry.Coords, text string, st tcell.Style) {
	cx, cy := a.labelCell(tile)
	x := cx - runewidth.StringWidth(text)/2
	drawText(a.screen, x, cy, text, st)
}

// menuBox returns the top left cell and width of the context menu.
func (a *App) menuBox(menu *editor.ContextMenu) (left, top, width int) {
	for _, it := range menu.Items {
		width = max(width, runewidth.StringWidth(it.Label)+2)
	}
	left, top = a.labelCell(menu.Tile)
	sw, sh := a.screen.Size()
	left = min(max(left, 0), max(sw-width, 0))
	top = min(max(top, 0), max(sh-1-len(menu.Items), 0))
	return left, top, width
}

func (a *App) drawMenu(menu *editor.ContextMenu) {
	left, top, width := a.menuBox(menu)
	for i, it := range menu.Items {
		for x := left; x < left+width; x++ {
			a.screen.SetContent(x, top+i, ' ', nil, styleMenu)
		}
		drawText(a.screen, left+1, top+i, it.Label, styleMenu)
	}
}

func (a *App) drawStatus(ui editor.UIState, w, h int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	line := fmt.Sprintf(" %s | %s | zoom %.2f | tile %d,%d",
		ui.Mode.Type(), ui.EditorMode, ui.Zoom, ui.Mouse.Position.Tile.X, ui.Mouse.Position.Tile.Y)
	if a.status != "" {
		line += " | " + a.status
	}
	drawText(a.screen, 0, h-1, line, styleStatus)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}
