package editor

import (
	"isoedit/diagram"
	"isoedit/logging"
	"isoedit/scene"
)

// linkHandler draws connectors, or roads when road is set. Mousedown
// creates the link with both anchors on the pressed tile, mousemove moves
// the last anchor and mouseup keeps the link only if it is drawable.
type linkHandler struct {
	crosshairCursor
	road bool
}

func (h linkHandler) drawing(ctx *ModeContext) string {
	switch mode := ctx.UI.Mode.(type) {
	case ConnectorMode:
		return mode.ID
	case RoadMode:
		return mode.ID
	}
	return ""
}

func (h linkHandler) setDrawing(ctx *ModeContext, id string) {
	if h.road {
		ctx.UIActions.SetMode(RoadMode{ID: id})
	} else {
		ctx.UIActions.SetMode(ConnectorMode{ID: id})
	}
}

func (h linkHandler) find(ctx *ModeContext, id string) (*diagram.Connector, scene.ConnectorState, bool) {
	var (
		link  *diagram.Connector
		err   error
		cache map[string]scene.ConnectorState
	)
	if h.road {
		_, link, err = ctx.View.RoadByID(id)
		cache = ctx.Scene.Roads
	} else {
		_, link, err = ctx.View.ConnectorByID(id)
		cache = ctx.Scene.Connectors
	}
	if err != nil {
		return nil, scene.ConnectorState{}, false
	}
	state, ok := cache[id]
	return link, state, ok
}

func (h linkHandler) update(ctx *ModeContext, id string, patch scene.ConnectorPatch) error {
	if h.road {
		return ctx.SceneActions.UpdateRoad(id, patch)
	}
	return ctx.SceneActions.UpdateConnector(id, patch)
}

func (h linkHandler) remove(ctx *ModeContext, id string) error {
	if h.road {
		return ctx.SceneActions.DeleteRoad(id)
	}
	return ctx.SceneActions.DeleteConnector(id)
}

func (h linkHandler) MouseDown(ctx *ModeContext) {
	if h.drawing(ctx) != "" {
		return
	}
	ref := anchorRefAt(ctx.View, ctx.UI.Mouse.Position.Tile)
	link := diagram.Connector{
		ID:    diagram.NewID(),
		Color: ctx.Model.DefaultColorID(),
		Anchors: []diagram.Anchor{
			{ID: diagram.NewID(), Ref: ref},
			{ID: diagram.NewID(), Ref: ref},
		},
	}

	var err error
	if h.road {
		err = ctx.SceneActions.CreateRoad(link)
	} else {
		err = ctx.SceneActions.CreateConnector(link)
	}
	if err != nil {
		logging.Logger().Warn("could not start link", "road", h.road, "err", err)
		return
	}
	h.setDrawing(ctx, link.ID)
}

func (h linkHandler) MouseMove(ctx *ModeContext) {
	id := h.drawing(ctx)
	if id == "" || ctx.UI.Mouse.Mousedown == nil || !HasMovedTile(ctx.UI.Mouse) {
		return
	}
	link, _, ok := h.find(ctx, id)
	if !ok {
		return
	}
	anchors := make([]diagram.Anchor, len(link.Anchors))
	for i, a := range link.Anchors {
		anchors[i] = a.Clone()
	}
	anchors[len(anchors)-1].Ref = anchorRefAt(ctx.View, ctx.UI.Mouse.Position.Tile)
	if err := h.update(ctx, id, scene.ConnectorPatch{Anchors: anchors}); err != nil {
		logging.Logger().Warn("link update rejected", "id", id, "err", err)
	}
}

func (h linkHandler) MouseUp(ctx *ModeContext) {
	id := h.drawing(ctx)
	if id == "" {
		return
	}
	link, state, ok := h.find(ctx, id)
	if ok && !drawable(link, state) {
		logging.Logger().Debug("discarding link", "id", id, "tiles", state.Path.Len())
		if err := h.remove(ctx, id); err != nil {
			logging.Logger().Warn("could not discard link", "id", id, "err", err)
		}
	}
	h.setDrawing(ctx, "")
}

// drawable reports whether a freshly drawn link spans at least two tiles
// and, when it was started on an item, also ends on one.
func drawable(link *diagram.Connector, state scene.ConnectorState) bool {
	if state.Path.Len() < 2 || len(link.Anchors) < 2 {
		return false
	}
	first, last := link.Anchors[0].Ref, link.Anchors[len(link.Anchors)-1].Ref
	if first.Item != "" && last.Item == "" {
		return false
	}
	return true
}
