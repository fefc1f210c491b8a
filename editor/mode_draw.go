package editor

import (
	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/logging"
	"isoedit/scene"
)

// drawHandler drags out a new rectangle, or a volume when volume is set.
type drawHandler struct {
	crosshairCursor
	volume bool
}

func (h drawHandler) drawing(ctx *ModeContext) string {
	switch mode := ctx.UI.Mode.(type) {
	case DrawRectangleMode:
		return mode.ID
	case DrawVolumeMode:
		return mode.ID
	}
	return ""
}

func (h drawHandler) MouseDown(ctx *ModeContext) {
	tile := ctx.UI.Mouse.Position.Tile
	rect := diagram.Rectangle{
		ID:    diagram.NewID(),
		From:  tile,
		To:    tile,
		Color: ctx.Model.DefaultColorID(),
	}

	var err error
	if h.volume {
		err = ctx.SceneActions.CreateVolume(diagram.Volume{Rectangle: rect, Height: 1})
	} else {
		err = ctx.SceneActions.CreateRectangle(rect)
	}
	if err != nil {
		logging.Logger().Warn("could not start drawing", "err", err)
		return
	}

	if h.volume {
		ctx.UIActions.SetMode(DrawVolumeMode{ID: rect.ID})
	} else {
		ctx.UIActions.SetMode(DrawRectangleMode{ID: rect.ID})
	}
}

func (h drawHandler) MouseMove(ctx *ModeContext) {
	id := h.drawing(ctx)
	if id == "" || ctx.UI.Mouse.Mousedown == nil || !HasMovedTile(ctx.UI.Mouse) {
		return
	}
	to := ctx.UI.Mouse.Position.Tile
	patch := scene.RectanglePatch{To: &to}

	var err error
	if h.volume {
		err = ctx.SceneActions.UpdateVolume(id, scene.VolumePatch{RectanglePatch: patch})
	} else {
		err = ctx.SceneActions.UpdateRectangle(id, patch)
	}
	if err != nil {
		logging.Logger().Warn("resize rejected", "id", id, "err", err)
	}
}

func (h drawHandler) MouseUp(ctx *ModeContext) {
	id := h.drawing(ctx)
	if id == "" {
		return
	}
	typ := diagram.TypeRectangle
	if h.volume {
		typ = diagram.TypeVolume
	}
	ctx.UIActions.SetMode(CursorMode{})
	ctx.UIActions.SetItemControls(&ItemControls{Type: typ, ID: id})
}

// transformHandler moves one corner of a rectangle or volume base while
// the opposite corner stays put.
type transformHandler struct {
	crosshairCursor
	volume bool
}

func (h transformHandler) target(ctx *ModeContext) (string, Corner) {
	switch mode := ctx.UI.Mode.(type) {
	case TransformRectangleMode:
		return mode.ID, mode.SelectedCorner
	case TransformVolumeMode:
		return mode.ID, mode.SelectedCorner
	}
	return "", ""
}

// opposite returns the corner of bounds facing corner.
func opposite(bounds geometry.Rect, corner Corner) geometry.Coords {
	switch corner {
	case CornerTop:
		return bounds.Bottom()
	case CornerBottom:
		return bounds.Top()
	case CornerLeft:
		return bounds.Right()
	default:
		return bounds.Left()
	}
}

func (h transformHandler) MouseMove(ctx *ModeContext) {
	id, corner := h.target(ctx)
	mouse := ctx.UI.Mouse
	if id == "" || mouse.Mousedown == nil || !HasMovedTile(mouse) {
		return
	}

	var bounds geometry.Rect
	if h.volume {
		_, v, err := ctx.View.VolumeByID(id)
		if err != nil {
			return
		}
		bounds = v.Bounds()
	} else {
		_, r, err := ctx.View.RectangleByID(id)
		if err != nil {
			return
		}
		bounds = r.Bounds()
	}

	next := geometry.BoundingBox([]geometry.Coords{mouse.Position.Tile, opposite(bounds, corner)}, geometry.Coords{})
	from, to := next.Top(), next.Bottom()
	patch := scene.RectanglePatch{From: &from, To: &to}

	var err error
	if h.volume {
		err = ctx.SceneActions.UpdateVolume(id, scene.VolumePatch{RectanglePatch: patch})
	} else {
		err = ctx.SceneActions.UpdateRectangle(id, patch)
	}
	if err != nil {
		logging.Logger().Warn("transform rejected", "id", id, "err", err)
	}
}

func (h transformHandler) MouseUp(ctx *ModeContext) {
	id, _ := h.target(ctx)
	typ := diagram.TypeRectangle
	if h.volume {
		typ = diagram.TypeVolume
	}
	ctx.UIActions.SetMode(CursorMode{})
	if id != "" {
		ctx.UIActions.SetItemControls(&ItemControls{Type: typ, ID: id})
	}
}
