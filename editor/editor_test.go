package editor

import (
	"errors"
	"testing"
	"time"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/scene"
)

var renderer = geometry.Size{Width: 800, Height: 600}

func at(x, y int) geometry.Coords {
	return geometry.Coords{X: x, Y: y}
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, nil }
func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// harness drives an Editor with a fake clock and clipboard.
type harness struct {
	t      *testing.T
	e      *Editor
	now    time.Time
	clip   *fakeClipboard
	placed []geometry.Coords
}

func newHarness(t *testing.T, m *diagram.Model, configure ...func(*Options)) *harness {
	t.Helper()
	h := &harness{t: t, now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), clip: &fakeClipboard{}}
	opts := Options{
		RendererSize: renderer,
		Clipboard:    h.clip,
		Now:          func() time.Time { return h.now },
		OnRequestFilePlacement: func(tile geometry.Coords) {
			h.placed = append(h.placed, tile)
		},
	}
	for _, c := range configure {
		c(&opts)
	}
	e, err := New(m, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.e = e
	return h
}

// fixtureModel has item "a" at (2,2) and item "b" at (6,2).
func fixtureModel() *diagram.Model {
	m := diagram.NewModel("editor")
	m.Items = []diagram.ModelItem{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	m.Views[0].Items = []diagram.ViewItem{{ID: "a", Tile: at(2, 2)}, {ID: "b", Tile: at(6, 2)}}
	return m
}

// withConnector adds connector "c" from item "a" to tile (5,5).
func withConnector(m *diagram.Model) *diagram.Model {
	m.Views[0].Connectors = []diagram.Connector{{
		ID: "c",
		Anchors: []diagram.Anchor{
			{ID: "c1", Ref: diagram.ItemRef("a")},
			{ID: "c2", Ref: diagram.TileRef(at(5, 5))},
		},
	}}
	return m
}

func (h *harness) screen(tile geometry.Coords) geometry.Point {
	ui := h.e.UI()
	return geometry.IsoToScreen(tile, ui.Zoom, ui.Scroll, ui.RendererSize)
}

func (h *harness) pointer(typ EventType, tile geometry.Coords, button Button) {
	h.e.Dispatch(InputEvent{Type: typ, Position: h.screen(tile), Button: button})
}

func (h *harness) press(tile geometry.Coords)   { h.pointer(EventMouseDown, tile, ButtonLeft) }
func (h *harness) move(tile geometry.Coords)    { h.pointer(EventMouseMove, tile, ButtonLeft) }
func (h *harness) release(tile geometry.Coords) { h.pointer(EventMouseUp, tile, ButtonLeft) }

func (h *harness) click(tile geometry.Coords) {
	h.press(tile)
	h.release(tile)
}

func (h *harness) view() *diagram.View {
	h.t.Helper()
	_, v, err := h.e.Model().ViewByID(h.e.ViewID())
	if err != nil {
		h.t.Fatal(err)
	}
	return v
}

func (h *harness) mode() Mode {
	return h.e.UI().Mode
}

// countingHandler counts entry and exit calls of the handler it wraps.
type countingHandler struct {
	ModeHandler
	entries, exits int
}

func (c *countingHandler) Entry(ctx *ModeContext) {
	c.entries++
	c.ModeHandler.Entry(ctx)
}

func (c *countingHandler) Exit(ctx *ModeContext) {
	c.exits++
	c.ModeHandler.Exit(ctx)
}

// meddler writes straight into what its context exposes and deletes item
// "b" through the action surface.
type meddler struct{ NopHandler }

func (meddler) MouseDown(ctx *ModeContext) {
	ctx.Model.Title = "meddled"
	ctx.View.Items[0].Tile = at(9, 9)
	delete(ctx.Scene.Connectors, "c")
	if m, ok := ctx.UI.Mode.(CursorMode); ok && m.MousedownItem != nil {
		m.MousedownItem.ID = "meddled"
	}
}

func (meddler) MouseUp(ctx *ModeContext) {
	_ = ctx.SceneActions.DeleteViewItem("b")
}

func TestInjectedHandlerCannotMutateEditor(t *testing.T) {
	h := newHarness(t, withConnector(fixtureModel()), func(o *Options) {
		o.Handlers = map[ModeType]ModeHandler{ModeCursor: meddler{}}
	})
	ref := diagram.ItemReference{Type: diagram.TypeItem, ID: "a"}
	h.e.SetMode(CursorMode{MousedownItem: &ref})

	h.press(at(0, 0))
	m := h.e.Model()
	if m.Title != "editor" {
		t.Errorf("title = %q", m.Title)
	}
	if _, a, _ := h.view().ItemByID("a"); a.Tile != at(2, 2) {
		t.Errorf("item a moved to %v", a.Tile)
	}
	if _, ok := h.e.Scene().Connectors["c"]; !ok {
		t.Error("connector state removed from the scene")
	}
	if ref.ID != "a" {
		t.Errorf("mode reference changed to %q", ref.ID)
	}

	h.release(at(0, 0))
	if _, _, err := h.view().ItemByID("b"); err == nil {
		t.Error("action surface edit was not applied")
	}
}

func TestUIStateCloneCopiesMode(t *testing.T) {
	ref := diagram.ItemReference{Type: diagram.TypeItem, ID: "a"}
	items := []diagram.ItemReference{{Type: diagram.TypeItem, ID: "b"}}
	tests := []struct {
		name   string
		mode   Mode
		mutate func(Mode)
	}{
		{"cursor", CursorMode{MousedownItem: &ref}, func(m Mode) {
			m.(CursorMode).MousedownItem.ID = "x"
		}},
		{"drag", DragItemsMode{Items: items}, func(m Mode) {
			m.(DragItemsMode).Items[0].ID = "x"
		}},
		{"pan over drag", PanMode{PreviousMode: DragItemsMode{Items: items}}, func(m Mode) {
			m.(PanMode).PreviousMode.(DragItemsMode).Items[0].ID = "x"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := UIState{Mode: tt.mode}
			tt.mutate(ui.Clone().Mode)
			if ref.ID != "a" || items[0].ID != "b" {
				t.Errorf("clone shares state with the original: ref=%q item=%q", ref.ID, items[0].ID)
			}
		})
	}

	if (UIState{}).Clone().Mode != nil {
		t.Error("nil mode should stay nil")
	}
}

func TestNewRejectsModelWithoutViews(t *testing.T) {
	if _, err := New(&diagram.Model{Title: "empty"}, Options{}); err == nil {
		t.Error("expected error for a model without views")
	}
}

func TestEveryModeHasAHandler(t *testing.T) {
	handlers := DefaultHandlers()
	for typ := ModeCursor; typ <= ModeInteractionsDisabled; typ++ {
		if typ.String() == "UNKNOWN" {
			t.Errorf("mode %d has no name", typ)
		}
		if _, ok := handlers[typ]; !ok {
			t.Errorf("mode %s has no handler", typ)
		}
	}
}

func TestPanExitEntryPairing(t *testing.T) {
	t.Run("manual pan", func(t *testing.T) {
		pan := &countingHandler{ModeHandler: panHandler{}}
		h := newHarness(t, fixtureModel(), func(o *Options) {
			o.Handlers = map[ModeType]ModeHandler{ModePan: pan}
		})
		empty := at(-4, -4)

		h.e.SetMode(PanMode{})
		h.press(empty)
		h.move(at(-3, -4))
		h.release(at(-3, -4))
		if pan.entries != 1 || pan.exits != 0 {
			t.Fatalf("after first pan: entries=%d exits=%d", pan.entries, pan.exits)
		}
		if h.mode().Type() != ModePan {
			t.Fatalf("manual pan should stay active after mouseup, got %s", h.mode().Type())
		}
		if h.e.UI().Cursor != CursorGrab {
			t.Errorf("cursor = %s, want grab", h.e.UI().Cursor)
		}

		h.e.SetMode(CursorMode{})
		h.move(empty)
		if pan.entries != 1 || pan.exits != 1 {
			t.Fatalf("after switching to cursor: entries=%d exits=%d", pan.entries, pan.exits)
		}
		if h.e.UI().Cursor != CursorDefault {
			t.Errorf("cursor = %s, want default", h.e.UI().Cursor)
		}

		h.e.SetMode(PanMode{})
		h.press(empty)
		h.move(at(-5, -4))
		h.move(at(-6, -4))
		h.release(at(-6, -4))
		h.e.SetMode(CursorMode{})
		h.move(empty)
		h.move(at(0, 0))
		if pan.entries != 2 || pan.exits != 2 {
			t.Errorf("after round trip: entries=%d exits=%d, want 2 and 2", pan.entries, pan.exits)
		}
	})

	t.Run("pan from empty canvas", func(t *testing.T) {
		pan := &countingHandler{ModeHandler: panHandler{}}
		cursor := &countingHandler{ModeHandler: cursorHandler{}}
		h := newHarness(t, fixtureModel(), func(o *Options) {
			o.Handlers = map[ModeType]ModeHandler{ModePan: pan, ModeCursor: cursor}
		})

		h.press(at(-4, -4))
		if mode, ok := h.mode().(PanMode); !ok || mode.PreviousMode == nil {
			t.Fatalf("mousedown on empty canvas should pan with a previous mode, got %#v", h.mode())
		}
		h.move(at(-3, -4))
		h.move(at(-2, -4))
		h.release(at(-2, -4))
		if h.mode().Type() != ModeCursor {
			t.Fatalf("mouseup should restore cursor, got %s", h.mode().Type())
		}
		h.move(at(0, 0))

		if pan.entries != 1 || pan.exits != 1 {
			t.Errorf("pan entries=%d exits=%d, want 1 and 1", pan.entries, pan.exits)
		}
		if cursor.entries != 1 || cursor.exits != 1 {
			t.Errorf("cursor entries=%d exits=%d, want 1 and 1", cursor.entries, cursor.exits)
		}
	})
}

func TestPanScrollsByScreenDelta(t *testing.T) {
	h := newHarness(t, fixtureModel())
	h.e.SetMode(PanMode{})

	h.e.Dispatch(InputEvent{Type: EventMouseDown, Position: geometry.Pt(400, 300)})
	h.e.Dispatch(InputEvent{Type: EventMouseMove, Position: geometry.Pt(450, 320)})
	h.e.Dispatch(InputEvent{Type: EventMouseMove, Position: geometry.Pt(460, 330)})
	h.e.Dispatch(InputEvent{Type: EventMouseUp, Position: geometry.Pt(460, 330)})

	if got := h.e.UI().Scroll.Position; got != geometry.Pt(60, 30) {
		t.Errorf("scroll = %v, want (60,30)", got)
	}
}

func TestMouseStateDelta(t *testing.T) {
	h := newHarness(t, fixtureModel())

	h.e.Dispatch(InputEvent{Type: EventMouseMove, Position: geometry.Pt(10, 10)})
	if ui := h.e.UI(); ui.Mouse.Delta != nil || ui.Mouse.Mousedown != nil {
		t.Errorf("hover should carry no delta: %+v", ui.Mouse)
	}

	h.e.SetMode(PanMode{})
	h.e.Dispatch(InputEvent{Type: EventTouchStart, Position: geometry.Pt(400, 300)})
	h.e.Dispatch(InputEvent{Type: EventTouchMove, Position: geometry.Pt(410, 305)})
	ui := h.e.UI()
	if ui.Mouse.Mousedown == nil || ui.Mouse.Mousedown.Button != ButtonLeft {
		t.Fatalf("touch should press the left button: %+v", ui.Mouse)
	}
	if ui.Mouse.Delta == nil || ui.Mouse.Delta.Screen != geometry.Pt(10, 5) {
		t.Errorf("delta = %+v, want (10,5)", ui.Mouse.Delta)
	}

	h.e.Dispatch(InputEvent{Type: EventTouchEnd, Position: geometry.Pt(410, 305)})
	if ui := h.e.UI(); ui.Mouse.Mousedown != nil || ui.Mouse.Delta != nil {
		t.Errorf("touch end should release: %+v", ui.Mouse)
	}
}

func TestWheelZoomKeepsTileUnderPointer(t *testing.T) {
	h := newHarness(t, fixtureModel())
	pointer := geometry.Pt(530, 380)
	before := geometry.ScreenToIso(pointer, 1, geometry.Scroll{}, renderer)

	h.e.Dispatch(InputEvent{Type: EventWheel, Position: pointer, WheelDelta: -1})
	ui := h.e.UI()
	if ui.Zoom <= 1 {
		t.Fatalf("zoom = %v, want > 1", ui.Zoom)
	}
	if after := geometry.ScreenToIso(pointer, ui.Zoom, ui.Scroll, renderer); after != before {
		t.Errorf("tile under pointer moved from %v to %v", before, after)
	}

	h.e.Dispatch(InputEvent{Type: EventWheel, Position: pointer, WheelDelta: 1})
	if got := h.e.UI().Zoom; got < 0.999 || got > 1.001 {
		t.Errorf("zoom after out = %v, want 1", got)
	}
}

func TestClickSelectsAndEmptyClickClears(t *testing.T) {
	h := newHarness(t, fixtureModel())

	h.click(at(2, 2))
	ui := h.e.UI()
	if ui.ItemControls == nil || *ui.ItemControls != (ItemControls{Type: diagram.TypeItem, ID: "a"}) {
		t.Fatalf("item controls = %+v", ui.ItemControls)
	}
	if mode, ok := ui.Mode.(CursorMode); !ok || mode.MousedownItem != nil {
		t.Errorf("mode = %#v, want plain cursor", ui.Mode)
	}

	h.click(at(-3, -3))
	if ui := h.e.UI(); ui.ItemControls != nil || ui.Mode.Type() != ModeCursor {
		t.Errorf("empty click: controls=%+v mode=%s", ui.ItemControls, ui.Mode.Type())
	}
}

func TestDragItemCascadesConnectorPath(t *testing.T) {
	h := newHarness(t, withConnector(fixtureModel()))

	h.press(at(2, 2))
	h.move(at(3, 2))
	if mode, ok := h.mode().(DragItemsMode); !ok || !mode.IsInitialMovement {
		t.Fatalf("mode = %#v, want initial DRAG_ITEMS", h.mode())
	}
	h.move(at(4, 2))
	h.release(at(4, 2))

	_, a, err := h.view().ItemByID("a")
	if err != nil {
		t.Fatal(err)
	}
	if a.Tile != at(4, 2) {
		t.Errorf("item a at %v, want (4,2)", a.Tile)
	}
	path := h.e.Scene().Connectors["c"].Path
	if path.Tiles[0] != at(4, 2) {
		t.Errorf("connector path starts at %v, want (4,2)", path.Tiles[0])
	}
	if h.mode().Type() != ModeCursor {
		t.Errorf("mode after drop = %s", h.mode().Type())
	}
}

func TestDragConnectorAddsAnchor(t *testing.T) {
	h := newHarness(t, withConnector(fixtureModel()))
	mid := h.e.Scene().Connectors["c"].Path.Tiles[3]
	target := at(9, 0)

	h.press(mid)
	h.move(target)
	mode, ok := h.mode().(DragItemsMode)
	if !ok || len(mode.Items) != 1 || mode.Items[0].Type != diagram.TypeConnectorAnchor {
		t.Fatalf("mode = %#v, want an anchor drag", h.mode())
	}
	h.move(target)
	h.release(target)

	_, c, err := h.view().ConnectorByID("c")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Anchors) != 3 {
		t.Fatalf("anchors = %d, want 3", len(c.Anchors))
	}
	if c.Anchors[1].Ref.Tile == nil || *c.Anchors[1].Ref.Tile != target {
		t.Errorf("new anchor ref = %+v, want tile %v", c.Anchors[1].Ref, target)
	}
	if !h.e.Scene().Connectors["c"].Path.Contains(target) {
		t.Error("path does not pass through the dragged anchor")
	}
}

func TestDrawThenAbandonConnector(t *testing.T) {
	h := newHarness(t, diagram.NewModel("blank"))
	h.e.SetMode(ConnectorMode{})

	h.press(at(0, 0))
	view := h.view()
	if len(view.Connectors) != 1 {
		t.Fatalf("connectors after mousedown = %d, want 1", len(view.Connectors))
	}
	for _, a := range view.Connectors[0].Anchors {
		if a.Ref.Tile == nil || *a.Ref.Tile != at(0, 0) {
			t.Errorf("anchor %s not on (0,0): %+v", a.ID, a.Ref)
		}
	}

	h.release(at(0, 0))
	if n := len(h.e.Scene().Connectors); n != 0 {
		t.Errorf("scene connectors = %d, want 0", n)
	}
	if n := len(h.view().Connectors); n != 0 {
		t.Errorf("view connectors = %d, want 0", n)
	}
	if mode, ok := h.mode().(ConnectorMode); !ok || mode.ID != "" {
		t.Errorf("mode = %#v, want idle CONNECTOR", h.mode())
	}
}

func TestDrawConnectorBetweenItems(t *testing.T) {
	h := newHarness(t, fixtureModel())
	h.e.SetMode(ConnectorMode{})

	h.press(at(2, 2))
	h.move(at(4, 2))
	h.move(at(6, 2))
	h.release(at(6, 2))

	view := h.view()
	if len(view.Connectors) != 1 {
		t.Fatalf("connectors = %d, want 1", len(view.Connectors))
	}
	anchors := view.Connectors[0].Anchors
	if anchors[0].Ref.Item != "a" || anchors[1].Ref.Item != "b" {
		t.Errorf("anchors = %+v, want a to b", anchors)
	}
	if got := h.e.Scene().Connectors[view.Connectors[0].ID].Path.Len(); got != 5 {
		t.Errorf("path length = %d, want 5", got)
	}
}

func TestConnectorFromItemToEmptyTileIsDiscarded(t *testing.T) {
	h := newHarness(t, fixtureModel())
	h.e.SetMode(ConnectorMode{})

	h.press(at(2, 2))
	h.move(at(2, 5))
	h.release(at(2, 5))

	if n := len(h.view().Connectors); n != 0 {
		t.Errorf("connectors = %d, want 0", n)
	}
}

func TestDrawRoad(t *testing.T) {
	h := newHarness(t, diagram.NewModel("roads"))
	h.e.SetMode(RoadMode{})

	h.press(at(0, 0))
	h.move(at(3, 0))
	h.release(at(3, 0))

	view := h.view()
	if len(view.Roads) != 1 || len(view.Connectors) != 0 {
		t.Fatalf("roads=%d connectors=%d", len(view.Roads), len(view.Connectors))
	}
	if got := h.e.Scene().Roads[view.Roads[0].ID].Path.Len(); got != 4 {
		t.Errorf("road length = %d, want 4", got)
	}
}

func TestDrawRectangleAndVolume(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		typ  diagram.ItemType
	}{
		{"rectangle", DrawRectangleMode{}, diagram.TypeRectangle},
		{"volume", DrawVolumeMode{}, diagram.TypeVolume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, diagram.NewModel("shapes"))
			h.e.SetMode(tt.mode)
			if h.press(at(0, 0)); h.e.UI().Cursor != CursorCrosshair {
				t.Errorf("cursor = %s, want crosshair", h.e.UI().Cursor)
			}
			h.move(at(2, 1))
			h.release(at(2, 1))

			view := h.view()
			var r diagram.Rectangle
			switch tt.typ {
			case diagram.TypeRectangle:
				if len(view.Rectangles) != 1 {
					t.Fatalf("rectangles = %d", len(view.Rectangles))
				}
				r = view.Rectangles[0]
			case diagram.TypeVolume:
				if len(view.Volumes) != 1 {
					t.Fatalf("volumes = %d", len(view.Volumes))
				}
				r = view.Volumes[0].Rectangle
			}
			if r.From != at(0, 0) || r.To != at(2, 1) {
				t.Errorf("from %v to %v, want (0,0) to (2,1)", r.From, r.To)
			}
			ui := h.e.UI()
			if ui.Mode.Type() != ModeCursor || ui.ItemControls == nil || ui.ItemControls.Type != tt.typ {
				t.Errorf("mode=%s controls=%+v", ui.Mode.Type(), ui.ItemControls)
			}
		})
	}
}

func TestTransformRectangle(t *testing.T) {
	m := diagram.NewModel("transform")
	m.Views[0].Rectangles = []diagram.Rectangle{{ID: "r", From: at(0, 0), To: at(2, 2)}}
	h := newHarness(t, m)
	ref := diagram.ItemReference{Type: diagram.TypeRectangle, ID: "r"}

	if err := h.e.BeginTransform(ref, CornerBottom); err != nil {
		t.Fatal(err)
	}
	h.press(at(2, 2))
	h.move(at(4, 3))
	h.release(at(4, 3))

	r := h.view().Rectangles[0]
	if r.From != at(0, 0) || r.To != at(4, 3) {
		t.Errorf("from %v to %v, want (0,0) to (4,3)", r.From, r.To)
	}

	if err := h.e.BeginTransform(ref, CornerTop); err != nil {
		t.Fatal(err)
	}
	h.press(at(0, 0))
	h.move(at(1, -1))
	h.release(at(1, -1))
	r = h.view().Rectangles[0]
	if r.From != at(1, -1) || r.To != at(4, 3) {
		t.Errorf("from %v to %v, want (1,-1) to (4,3)", r.From, r.To)
	}

	if err := h.e.BeginTransform(diagram.ItemReference{Type: diagram.TypeItem, ID: "x"}, CornerTop); err == nil {
		t.Error("expected error transforming a view item")
	}
}

func TestPlaceIcon(t *testing.T) {
	h := newHarness(t, fixtureModel())
	h.e.SetMode(PlaceIconMode{ID: "server"})
	h.click(at(1, 1))

	view := h.view()
	if len(view.Items) != 3 || view.Items[0].Tile != at(1, 1) {
		t.Fatalf("items = %+v", view.Items)
	}
	_, item, err := h.e.Model().ModelItemByID(view.Items[0].ID)
	if err != nil || item.Icon != "server" {
		t.Errorf("model item = %+v, %v", item, err)
	}
	if h.mode().Type() != ModeCursor {
		t.Errorf("mode = %s", h.mode().Type())
	}

	// Without a chosen icon a click just leaves the mode.
	h.e.SetMode(PlaceIconMode{})
	h.click(at(-1, -1))
	if len(h.view().Items) != 3 || h.mode().Type() != ModeCursor {
		t.Errorf("items=%d mode=%s", len(h.view().Items), h.mode().Type())
	}
}

func TestPlaceImage(t *testing.T) {
	h := newHarness(t, fixtureModel())
	h.e.SetMode(PlaceImageMode{})
	h.click(at(3, 4))

	if len(h.placed) != 1 || h.placed[0] != at(3, 4) {
		t.Fatalf("placement requests = %v", h.placed)
	}
	id, err := h.e.CompleteImagePlacement(h.placed[0], "photo", "data:image/png;base64,AA==")
	if err != nil {
		t.Fatal(err)
	}
	_, vi, err := h.view().ItemByID(id)
	if err != nil || vi.Tile != at(3, 4) {
		t.Fatalf("view item = %+v, %v", vi, err)
	}
	m := h.e.Model()
	_, item, _ := m.ModelItemByID(id)
	if !m.HasIcon(item.Icon) {
		t.Errorf("icon %q was not added", item.Icon)
	}
}

func TestTextBoxFollowsPointer(t *testing.T) {
	h := newHarness(t, diagram.NewModel("text"))
	h.move(at(0, 0))
	if !h.e.HandleKey(Key{Rune: '6'}) {
		t.Fatal("6 should start a text box")
	}
	mode, ok := h.mode().(TextBoxMode)
	if !ok || mode.ID == "" {
		t.Fatalf("mode = %#v", h.mode())
	}

	h.move(at(3, 3))
	h.click(at(3, 3))
	_, tb, err := h.view().TextBoxByID(mode.ID)
	if err != nil || tb.Tile != at(3, 3) {
		t.Fatalf("text box = %+v, %v", tb, err)
	}
	ui := h.e.UI()
	if ui.Mode.Type() != ModeCursor || ui.ItemControls == nil || ui.ItemControls.ID != mode.ID {
		t.Errorf("mode=%s controls=%+v", ui.Mode.Type(), ui.ItemControls)
	}
}

func TestMiddleMousePansInAnyMode(t *testing.T) {
	h := newHarness(t, fixtureModel())

	start := h.screen(at(2, 2))
	h.e.Dispatch(InputEvent{Type: EventMouseDown, Position: start, Button: ButtonMiddle})
	h.e.Dispatch(InputEvent{Type: EventMouseMove, Position: start.Add(geometry.Pt(30, 10))})
	h.e.Dispatch(InputEvent{Type: EventMouseUp, Position: start.Add(geometry.Pt(30, 10)), Button: ButtonMiddle})

	ui := h.e.UI()
	if ui.Scroll.Position != geometry.Pt(30, 10) {
		t.Errorf("scroll = %v, want (30,10)", ui.Scroll.Position)
	}
	if ui.Mode.Type() != ModeCursor || ui.ItemControls != nil {
		t.Errorf("middle drag changed mode or selection: %s %+v", ui.Mode.Type(), ui.ItemControls)
	}
	if _, a, _ := h.view().ItemByID("a"); a.Tile != at(2, 2) {
		t.Errorf("item a moved to %v", a.Tile)
	}
}

func TestMiddleDragEndsAcrossModeSwitch(t *testing.T) {
	h := newHarness(t, fixtureModel())

	start := h.screen(at(6, 6))
	h.e.Dispatch(InputEvent{Type: EventMouseDown, Position: start, Button: ButtonMiddle})
	h.e.Dispatch(InputEvent{Type: EventMouseMove, Position: start.Add(geometry.Pt(20, 0))})
	h.e.HandleKey(Key{Rune: '2'})
	h.e.Dispatch(InputEvent{Type: EventMouseUp, Position: start.Add(geometry.Pt(20, 0)), Button: ButtonMiddle})
	h.e.HandleKey(Key{Rune: '1'})
	if h.mode().Type() != ModeCursor {
		t.Fatalf("mode = %s, want CURSOR", h.mode().Type())
	}

	scroll := h.e.UI().Scroll
	h.press(at(2, 2))
	h.move(at(3, 2))
	h.move(at(4, 2))
	h.release(at(4, 2))

	if _, a, _ := h.view().ItemByID("a"); a.Tile != at(4, 2) {
		t.Errorf("item a at %v, want (4,2)", a.Tile)
	}
	if h.e.UI().Scroll != scroll {
		t.Errorf("left drag panned to %v", h.e.UI().Scroll.Position)
	}
}

func TestReadOnly(t *testing.T) {
	h := newHarness(t, fixtureModel(), func(o *Options) {
		o.EditorMode = ExplorableReadonly
	})
	if h.mode().Type() != ModePan {
		t.Fatalf("read-only editor starts in %s, want PAN", h.mode().Type())
	}

	h.press(at(2, 2))
	h.move(at(4, 4))
	h.release(at(4, 4))
	ui := h.e.UI()
	if ui.Mode.Type() != ModePan || ui.ItemControls != nil {
		t.Errorf("mode=%s controls=%+v", ui.Mode.Type(), ui.ItemControls)
	}
	if ui.Scroll.Position == (geometry.Point{}) {
		t.Error("read-only drag should still pan")
	}

	// A pan that remembers a previous mode must not restore it here.
	h.e.SetMode(PanMode{PreviousMode: CursorMode{}})
	h.click(at(0, 0))
	if h.mode().Type() != ModePan {
		t.Errorf("mode after mouseup = %s, want PAN", h.mode().Type())
	}

	h.e.Dispatch(InputEvent{Type: EventContextMenu, Position: h.screen(at(2, 2))})
	if h.e.UI().ContextMenu != nil {
		t.Error("context menu opened in read-only mode")
	}
	if h.e.HandleKey(Key{Rune: '4'}) {
		t.Error("shortcut handled in read-only mode")
	}
	if err := h.e.DeleteViewItem("a"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("DeleteViewItem() error = %v, want ErrReadOnly", err)
	}
}

func TestNonInteractiveIgnoresInput(t *testing.T) {
	h := newHarness(t, fixtureModel(), func(o *Options) {
		o.EditorMode = NonInteractive
	})
	if h.mode().Type() != ModeInteractionsDisabled {
		t.Fatalf("mode = %s", h.mode().Type())
	}
	before := h.e.UI()
	h.click(at(2, 2))
	h.e.Dispatch(InputEvent{Type: EventWheel, Position: geometry.Pt(400, 300), WheelDelta: -1})
	after := h.e.UI()
	if after.Zoom != before.Zoom || after.Mouse != before.Mouse {
		t.Errorf("UI changed: %+v -> %+v", before, after)
	}
}

func TestRejectedEditLeavesStateUnchanged(t *testing.T) {
	h := newHarness(t, fixtureModel())
	bad := "no-such-color"
	before := h.e.Model()
	if err := h.e.UpdateViewItem("a", scene.ViewItemPatch{Color: &bad}); err == nil {
		t.Fatal("expected rejection")
	}
	if _, a, _ := h.view().ItemByID("a"); a.Color != before.Views[0].Items[0].Color {
		t.Errorf("color changed to %q", a.Color)
	}
	if h.e.CanUndo() {
		t.Error("rejected edit should not be undoable")
	}
}

func TestLoadJSONIsAtomic(t *testing.T) {
	h := newHarness(t, fixtureModel())
	before := h.e.Model()

	err := h.e.LoadJSON([]byte(`{"title": "broken", "views": [{"id": "v", "items": []}]}`))
	if err == nil {
		t.Fatal("expected error for a model without items")
	}
	after := h.e.Model()
	if after.Title != before.Title || len(after.Items) != len(before.Items) {
		t.Errorf("model changed by a failed load: %+v", after)
	}
}

func TestSetView(t *testing.T) {
	m := fixtureModel()
	m.Views = append(m.Views, diagram.View{ID: "second", Name: "Second", Items: []diagram.ViewItem{}})
	h := newHarness(t, m)

	if err := h.e.SetView("second"); err != nil {
		t.Fatal(err)
	}
	if h.e.ViewID() != "second" || h.e.Scene().ViewID != "second" {
		t.Errorf("view = %s, scene view = %s", h.e.ViewID(), h.e.Scene().ViewID)
	}
	h.click(at(2, 2))
	if h.e.UI().ItemControls != nil {
		t.Error("item a is not on the second view")
	}
	if err := h.e.SetView("ghost"); err == nil {
		t.Error("expected error for unknown view")
	}
}
