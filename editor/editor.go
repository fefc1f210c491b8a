// Package editor is the interactive core of isoedit: it owns the model and
// scene of one open diagram together with the UI state, routes normalised
// pointer and keyboard input through the active interaction mode and keeps
// undo history.
//
// An Editor is not safe for concurrent use. Front-ends call Dispatch,
// HandleKey and Tick from a single event loop.
package editor

import (
	"errors"
	"fmt"
	"time"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/importer"
	"isoedit/logging"
	"isoedit/scene"
)

// DefaultHistoryDebounce is how long the model must stay unchanged before
// an edit becomes an undo step.
const DefaultHistoryDebounce = 300 * time.Millisecond

// ErrReadOnly is returned by edits while the editor is not EDITABLE.
var ErrReadOnly = errors.New("isoedit: editor is read-only")

// ErrNothingSelected is returned by actions on the selection when nothing
// is selected.
var ErrNothingSelected = errors.New("isoedit: nothing selected")

// Options configures a new Editor. Zero values select the defaults.
type Options struct {
	ViewID          string
	EditorMode      EditorMode
	ZoomLimits      geometry.ZoomLimits
	HistoryDepth    int
	HistoryDebounce time.Duration
	RendererSize    geometry.Size

	// Clipboard backs Copy and Paste. Defaults to the system clipboard.
	Clipboard Clipboard
	// OnRequestFilePlacement is called when PLACE_IMAGE is clicked. The
	// front-end answers with CompleteImagePlacement.
	OnRequestFilePlacement func(tile geometry.Coords)
	// Now is the clock used to time history snapshots.
	Now func() time.Time
	// Handlers replaces the handlers of individual mode types.
	Handlers map[ModeType]ModeHandler
}

// Editor holds one open diagram.
type Editor struct {
	state  scene.State
	viewID string
	ui     UIState

	history  *History
	debounce time.Duration
	dirty    bool
	dirtyAt  time.Time

	handlers     map[ModeType]ModeHandler
	lastModeType ModeType
	middleDrag   bool

	limits      geometry.ZoomLimits
	clipboard   Clipboard
	onPlaceFile func(tile geometry.Coords)
	now         func() time.Time
}

// New opens m in a new editor.
func New(m *diagram.Model, opts Options) (*Editor, error) {
	if opts.EditorMode == "" {
		opts.EditorMode = Editable
	}
	if opts.ZoomLimits == (geometry.ZoomLimits{}) {
		opts.ZoomLimits = geometry.DefaultZoomLimits
	}
	if opts.HistoryDebounce <= 0 {
		opts.HistoryDebounce = DefaultHistoryDebounce
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Editor{
		viewID:      opts.ViewID,
		history:     NewHistory(opts.HistoryDepth),
		debounce:    opts.HistoryDebounce,
		handlers:    DefaultHandlers(),
		limits:      opts.ZoomLimits,
		clipboard:   opts.Clipboard,
		onPlaceFile: opts.OnRequestFilePlacement,
		now:         opts.Now,
		ui: UIState{
			EditorMode:   opts.EditorMode,
			Zoom:         1,
			RendererSize: opts.RendererSize,
		},
	}
	for t, h := range opts.Handlers {
		if h != nil {
			h = isolated{h}
		}
		e.handlers[t] = h
	}
	if err := e.LoadModel(m); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadModel replaces the open diagram with m and clears history. It is
// atomic: on error the editor is left exactly as it was.
func (e *Editor) LoadModel(m *diagram.Model) error {
	st, err := e.rebuild(m)
	if err != nil {
		return err
	}
	e.state = st
	e.history.Reset(st.Model)
	e.dirty = false
	e.resetUI()
	logging.Logger().Info("model loaded", "title", st.Model.Title, "view", e.viewID)
	return nil
}

// LoadJSON loads a serialised model. Malformed input is rejected as a
// whole and leaves the open diagram untouched.
func (e *Editor) LoadJSON(raw []byte) error {
	m, err := importer.Load(raw)
	if err != nil {
		return err
	}
	return e.LoadModel(m)
}

// SetModel replaces the model wholesale as a single undoable edit.
func (e *Editor) SetModel(m *diagram.Model) error {
	if e.ui.EditorMode != Editable {
		return ErrReadOnly
	}
	st, err := e.rebuild(m)
	if err != nil {
		return err
	}
	if e.dirty {
		e.flushHistory()
	}
	e.state = st
	e.markDirty()
	return nil
}

// rebuild computes the state for m on the current view, or on its first
// view when the current one no longer exists.
func (e *Editor) rebuild(m *diagram.Model) (scene.State, error) {
	if m == nil || len(m.Views) == 0 {
		return scene.State{}, errors.New("isoedit: model has no views")
	}
	viewID := e.viewID
	if _, _, err := m.ViewByID(viewID); err != nil {
		viewID = m.Views[0].ID
	}
	st, err := scene.NewState(m, viewID)
	if err != nil {
		return scene.State{}, err
	}
	e.viewID = viewID
	return st, nil
}

// SetView switches the editor to another view of the model.
func (e *Editor) SetView(viewID string) error {
	st, err := scene.Rebuild(e.state, viewID)
	if err != nil {
		return err
	}
	e.state = st
	e.viewID = viewID
	e.ui.ItemControls = nil
	e.ui.ContextMenu = nil
	return nil
}

func (e *Editor) resetUI() {
	e.ui.Mode = defaultMode(e.ui.EditorMode)
	e.lastModeType = e.ui.Mode.Type()
	e.ui.ItemControls = nil
	e.ui.ContextMenu = nil
	e.ui.Mouse = MouseState{}
	e.middleDrag = false
	e.ui.Cursor = CursorDefault
	if e.ui.EditorMode == ExplorableReadonly {
		e.ui.Cursor = CursorGrab
	}
}

// Model returns a copy of the current model, as it would be persisted.
func (e *Editor) Model() *diagram.Model {
	return e.state.Model.Clone()
}

// Scene returns a copy of the scene of the current view.
func (e *Editor) Scene() *scene.Scene {
	return e.state.Scene.Clone()
}

// ViewID returns the id of the current view.
func (e *Editor) ViewID() string {
	return e.viewID
}

// UI returns a copy of the UI state.
func (e *Editor) UI() UIState {
	return e.ui.Clone()
}

// SetEditorMode switches between editable, read-only and non-interactive
// operation and resets the mode and selection accordingly.
func (e *Editor) SetEditorMode(m EditorMode) {
	e.ui.EditorMode = m
	e.ui.Mode = defaultMode(m)
	e.ui.ItemControls = nil
	e.ui.ContextMenu = nil
}

// SetRendererSize records the viewport size used to map screen positions
// to tiles.
func (e *Editor) SetRendererSize(size geometry.Size) {
	e.ui.RendererSize = size
}

// UIActions

func (e *Editor) SetMode(m Mode) {
	if m == nil {
		m = defaultMode(e.ui.EditorMode)
	}
	if m.Type() != e.ui.Mode.Type() {
		logging.Logger().Debug("mode", "from", e.ui.Mode.Type(), "to", m.Type())
	}
	e.ui.Mode = m
}

func (e *Editor) SetItemControls(c *ItemControls) {
	e.ui.ItemControls = c
}

func (e *Editor) SetContextMenu(m *ContextMenu) {
	e.ui.ContextMenu = m
}

func (e *Editor) SetCursor(c CursorStyle) {
	e.ui.Cursor = c
}

// SetZoom sets the zoom, clamped to the configured limits.
func (e *Editor) SetZoom(zoom float64) {
	e.ui.Zoom = e.limits.Clamp(zoom)
}

func (e *Editor) SetScroll(s geometry.Scroll) {
	e.ui.Scroll = s
}

func (e *Editor) RequestFilePlacement(tile geometry.Coords) {
	if e.onPlaceFile != nil {
		e.onPlaceFile(tile)
	}
}

// ZoomIn zooms one step around the screen position mouse.
func (e *Editor) ZoomIn(mouse geometry.Point) {
	e.ui.Zoom, e.ui.Scroll = geometry.IncrementZoomAtPosition(mouse, e.ui.RendererSize, e.ui.Zoom, e.ui.Scroll, e.limits)
}

// ZoomOut zooms out one step around the screen position mouse.
func (e *Editor) ZoomOut(mouse geometry.Point) {
	e.ui.Zoom, e.ui.Scroll = geometry.DecrementZoomAtPosition(mouse, e.ui.RendererSize, e.ui.Zoom, e.ui.Scroll, e.limits)
}

// History

func (e *Editor) markDirty() {
	e.dirty = true
	e.dirtyAt = e.now()
}

// Tick records a pending edit as an undo step once it has been stable for
// the debounce interval.
func (e *Editor) Tick(now time.Time) {
	if e.dirty && now.Sub(e.dirtyAt) >= e.debounce {
		e.flushHistory()
	}
}

func (e *Editor) flushHistory() {
	if e.history.Push(e.state.Model) {
		undo, _ := e.history.Stats()
		logging.Logger().Debug("history snapshot", "undo", undo)
	}
	e.dirty = false
}

// CanUndo reports whether Undo would change the model.
func (e *Editor) CanUndo() bool {
	return e.dirty || e.history.CanUndo()
}

// CanRedo reports whether Redo would change the model.
func (e *Editor) CanRedo() bool {
	return !e.dirty && e.history.CanRedo()
}

// Undo restores the previous snapshot. It reports whether anything was
// undone.
func (e *Editor) Undo() (bool, error) {
	if e.ui.EditorMode != Editable {
		return false, ErrReadOnly
	}
	if e.dirty {
		e.flushHistory()
	}
	m, ok := e.history.Undo()
	if !ok {
		return false, nil
	}
	return true, e.restore(m)
}

// Redo re-applies the next snapshot.
func (e *Editor) Redo() (bool, error) {
	if e.ui.EditorMode != Editable {
		return false, ErrReadOnly
	}
	if e.dirty {
		e.flushHistory()
	}
	m, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	return true, e.restore(m)
}

// restore replaces the model with a snapshot without recording history.
func (e *Editor) restore(m *diagram.Model) error {
	st, err := e.rebuild(m)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	e.state = st
	e.ui.Mode = defaultMode(e.ui.EditorMode)
	e.ui.ItemControls = nil
	e.ui.ContextMenu = nil
	return nil
}
