package editor

import "isoedit/geometry"

// panHandler also serves middle button drags in every other mode, so it
// only touches the cursor when PAN is the active mode.
type panHandler struct{ NopHandler }

func (panHandler) Entry(ctx *ModeContext) {
	ctx.UIActions.SetCursor(CursorGrab)
}

func (panHandler) Exit(ctx *ModeContext) {
	ctx.UIActions.SetCursor(CursorDefault)
}

func (panHandler) MouseDown(ctx *ModeContext) {
	if ctx.UI.Mode.Type() == ModePan {
		ctx.UIActions.SetCursor(CursorGrabbing)
	}
}

func (panHandler) MouseMove(ctx *ModeContext) {
	mouse := ctx.UI.Mouse
	if mouse.Mousedown == nil || mouse.Delta == nil {
		return
	}
	ctx.UIActions.SetScroll(geometry.Scroll{
		Position: ctx.UI.Scroll.Position.Add(mouse.Delta.Screen),
	})
}

func (panHandler) MouseUp(ctx *ModeContext) {
	mode, ok := ctx.UI.Mode.(PanMode)
	if !ok {
		return
	}
	ctx.UIActions.SetCursor(CursorGrab)
	if mode.PreviousMode != nil && ctx.UI.EditorMode == Editable {
		ctx.UIActions.SetMode(mode.PreviousMode)
	}
}
