// Package terminal is a tcell front-end for the editor. Every cell stands
// for a small block of virtual screen pixels, so the editor projects and
// hit-tests exactly as it would for a graphical renderer.
package terminal

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"isoedit/diagram"
	"isoedit/editor"
	"isoedit/geometry"
	"isoedit/logging"
)

// CellSize is the number of virtual pixels one terminal cell covers.
var CellSize = geometry.Size{Width: 8, Height: 16}

// DefaultTickInterval drives history snapshots and redraws.
const DefaultTickInterval = 50 * time.Millisecond

// Options configures the terminal front-end.
type Options struct {
	TickInterval time.Duration
	// OnSave is called with the current model on Ctrl+S.
	OnSave func(m *diagram.Model) error
	// Now defaults to time.Now and is passed to Editor.Tick.
	Now func() time.Time
}

// App feeds tcell events to an editor and draws its current view.
type App struct {
	screen  tcell.Screen
	ed      *editor.Editor
	opts    Options
	buttons tcell.ButtonMask
	lastPos geometry.Point
	status  string
}

// NewApp wires screen to ed. The screen must already be initialised.
func NewApp(screen tcell.Screen, ed *editor.Editor, opts Options) *App {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &App{screen: screen, ed: ed, opts: opts}
	screen.EnableMouse()
	a.resize(screen.Size())
	return a
}

// Run processes events until Ctrl+Q or until ctx is done.
func Run(ctx context.Context, screen tcell.Screen, ed *editor.Editor, opts Options) error {
	a := NewApp(screen, ed, opts)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(a.opts.TickInterval)
	defer ticker.Stop()

	for {
		a.Draw()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.ed.Tick(a.opts.Now())
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.Handle(ev) {
				return nil
			}
		}
	}
}

// Handle applies one event and reports whether the user asked to quit.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize(ev.Size())
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return false
}

func (a *App) resize(w, h int) {
	a.ed.SetRendererSize(geometry.Size{
		Width:  float64(w) * CellSize.Width,
		Height: float64(h) * CellSize.Height,
	})
}

// cellCenter returns the virtual pixel at the middle of a cell.
func cellCenter(x, y int) geometry.Point {
	return geometry.Pt((float64(x)+0.5)*CellSize.Width, (float64(y)+0.5)*CellSize.Height)
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		a.save()
		return false
	case tcell.KeyCtrlZ:
		a.ed.HandleKey(editor.Key{Rune: 'z', Ctrl: true, Shift: mod&tcell.ModShift != 0})
		return false
	case tcell.KeyCtrlY:
		a.ed.HandleKey(editor.Key{Rune: 'y', Ctrl: true})
		return false
	case tcell.KeyCtrlC:
		a.ed.HandleKey(editor.Key{Rune: 'c', Ctrl: true})
		return false
	case tcell.KeyCtrlV:
		a.ed.HandleKey(editor.Key{Rune: 'v', Ctrl: true})
		return false
	}

	k, ok := translateKey(ev)
	if ok {
		a.ed.HandleKey(k)
	}
	return false
}

// translateKey maps a tcell key to an editor key. Cmd is reported as Meta
// by some terminals and as Alt by others; both count as the command key.
func translateKey(ev *tcell.EventKey) (editor.Key, bool) {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyEscape:
		return editor.Key{Name: editor.KeyEscape}, true
	case tcell.KeyDelete:
		return editor.Key{Name: editor.KeyDelete}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.Key{Name: editor.KeyBackspace}, true
	case tcell.KeyUp:
		return editor.Key{Name: editor.KeyArrowUp}, true
	case tcell.KeyDown:
		return editor.Key{Name: editor.KeyArrowDown}, true
	case tcell.KeyLeft:
		return editor.Key{Name: editor.KeyArrowLeft}, true
	case tcell.KeyRight:
		return editor.Key{Name: editor.KeyArrowRight}, true
	case tcell.KeyRune:
		return editor.Key{
			Rune:  ev.Rune(),
			Meta:  mod&(tcell.ModMeta|tcell.ModAlt) != 0,
			Shift: mod&tcell.ModShift != 0 || unicode.IsUpper(ev.Rune()),
		}, true
	}
	return editor.Key{}, false
}

func (a *App) save() {
	if a.opts.OnSave == nil {
		a.status = "no save target"
		return
	}
	if err := a.opts.OnSave(a.ed.Model()); err != nil {
		logging.Logger().Warn("save failed", "err", err)
		a.status = "save failed: " + err.Error()
		return
	}
	a.status = "saved"
}

// handleMouse turns tcell's button state snapshots into press, move and
// release events.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := cellCenter(x, y)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.ed.Dispatch(editor.InputEvent{Type: editor.EventWheel, Position: pos, WheelDelta: -1})
		return
	case buttons&tcell.WheelDown != 0:
		a.ed.Dispatch(editor.InputEvent{Type: editor.EventWheel, Position: pos, WheelDelta: 1})
		return
	}

	prev := a.buttons
	a.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := a.buttons &^ prev
	released := prev &^ a.buttons

	if pressed&tcell.Button2 != 0 {
		a.ed.Dispatch(editor.InputEvent{Type: editor.EventContextMenu, Position: pos})
		return
	}
	if pressed&tcell.Button1 != 0 && a.clickMenu(x, y) {
		return
	}

	if pos != a.lastPos {
		a.ed.Dispatch(editor.InputEvent{Type: editor.EventMouseMove, Position: pos})
		a.lastPos = pos
	}
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button editor.Button
	}{
		{tcell.Button1, editor.ButtonLeft},
		{tcell.Button3, editor.ButtonMiddle},
	} {
		switch {
		case pressed&b.mask != 0:
			a.ed.Dispatch(editor.InputEvent{Type: editor.EventMouseDown, Position: pos, Button: b.button})
		case released&b.mask != 0:
			a.ed.Dispatch(editor.InputEvent{Type: editor.EventMouseUp, Position: pos, Button: b.button})
		}
	}
}

// clickMenu runs the context menu entry under the cell, if any.
func (a *App) clickMenu(x, y int) bool {
	menu := a.ed.UI().ContextMenu
	if menu == nil {
		return false
	}
	left, top, width := a.menuBox(menu)
	row := y - top
	if x < left || x >= left+width || row < 0 || row >= len(menu.Items) {
		return false
	}
	action := menu.Items[row].Action
	if err := a.ed.ApplyContextMenuAction(action); err != nil {
		a.status = fmt.Sprintf("%s: %v", action, err)
	}
	return true
}
