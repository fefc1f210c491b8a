package editor

import (
	"isoedit/geometry"
	"isoedit/scene"
)

// EventType is the kind of a raw input event.
type EventType int

const (
	EventMouseDown EventType = iota
	EventMouseMove
	EventMouseUp
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventWheel
	EventContextMenu
)

// Button is a pointer button. Touches are reported as ButtonLeft.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// InputEvent is one raw pointer event from a front-end. Position is in
// screen pixels relative to the renderer's top left corner. WheelDelta is
// negative when scrolling up (zoom in).
type InputEvent struct {
	Type       EventType
	Position   geometry.Point
	Button     Button
	WheelDelta float64
}

// normalize maps touch events onto mouse events.
func normalize(ev InputEvent) (EventType, Button) {
	switch ev.Type {
	case EventTouchStart:
		return EventMouseDown, ButtonLeft
	case EventTouchMove:
		return EventMouseMove, ButtonLeft
	case EventTouchEnd:
		return EventMouseUp, ButtonLeft
	}
	return ev.Type, ev.Button
}

// Dispatch feeds one input event through the editor. Wheel and context
// menu events are handled globally; pointer events go to the handler of
// the active mode, after any pending exit and entry of a mode change.
func (e *Editor) Dispatch(ev InputEvent) {
	if e.ui.EditorMode == NonInteractive {
		return
	}

	switch ev.Type {
	case EventWheel:
		e.wheel(ev)
		return
	case EventContextMenu:
		e.openContextMenu(ev.Position)
		return
	}

	kind, button := normalize(ev)
	if button == ButtonRight && kind != EventMouseMove {
		return
	}
	e.ui.Mouse = e.nextMouse(kind, ev.Position, button)
	if kind == EventMouseDown {
		e.ui.ContextMenu = nil
	}

	current := e.ui.Mode.Type()
	handler := e.handler(current)
	if current != e.lastModeType {
		e.handler(e.lastModeType).Exit(e.modeContext())
		handler.Entry(e.modeContext())
		e.lastModeType = current
	}

	// Middle button drags pan in every mode. The drag ends on any release,
	// even one the PAN handler receives after a mode switch.
	if kind == EventMouseUp && e.middleDrag {
		e.middleDrag = false
		if current != ModePan {
			return
		}
	}
	if current != ModePan {
		switch {
		case kind == EventMouseDown && button == ButtonMiddle:
			e.middleDrag = true
			e.handler(ModePan).MouseDown(e.modeContext())
			return
		case kind == EventMouseMove && e.middleDrag:
			e.handler(ModePan).MouseMove(e.modeContext())
			return
		}
	}

	ctx := e.modeContext()
	switch kind {
	case EventMouseDown:
		handler.MouseDown(ctx)
	case EventMouseMove:
		handler.MouseMove(ctx)
	case EventMouseUp:
		handler.MouseUp(ctx)
	}
}

// nextMouse derives the pointer state for an event from the previous one.
// Delta is the movement since the previous event and only exists while a
// button is held.
func (e *Editor) nextMouse(kind EventType, pos geometry.Point, button Button) MouseState {
	tile := geometry.ScreenToIso(pos, e.ui.Zoom, e.ui.Scroll, e.ui.RendererSize)
	prev := e.ui.Mouse
	next := MouseState{Position: MousePosition{Screen: pos, Tile: tile}}

	switch kind {
	case EventMouseDown:
		next.Mousedown = &Mousedown{Screen: pos, Tile: tile, Button: button}
	case EventMouseMove:
		if prev.Mousedown != nil {
			md := *prev.Mousedown
			next.Mousedown = &md
			next.Delta = &Delta{
				Screen: pos.Sub(prev.Position.Screen),
				Tile:   tile.Sub(prev.Position.Tile),
			}
		}
	}
	return next
}

func (e *Editor) wheel(ev InputEvent) {
	switch {
	case ev.WheelDelta < 0:
		e.ZoomIn(ev.Position)
	case ev.WheelDelta > 0:
		e.ZoomOut(ev.Position)
	}
}

func (e *Editor) handler(t ModeType) ModeHandler {
	if h, ok := e.handlers[t]; ok && h != nil {
		return h
	}
	return NopHandler{}
}

func (e *Editor) modeContext() *ModeContext {
	view, _ := e.state.View(e.viewID)
	return &ModeContext{
		UI:           e.ui.Clone(),
		Model:        e.state.Model,
		View:         view,
		Scene:        e.sceneOrEmpty(),
		UIActions:    e,
		SceneActions: e,
	}
}

func (e *Editor) sceneOrEmpty() *scene.Scene {
	if e.state.Scene == nil {
		return scene.NewScene(e.viewID)
	}
	return e.state.Scene
}
