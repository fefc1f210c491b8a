package scene

import (
	"fmt"

	"isoedit/diagram"
	"isoedit/geometry"
)

// maxAnchorDepth bounds anchor to anchor resolution.
const maxAnchorDepth = 64

// AnchorTile resolves the tile an anchor sits on: the tile of the view
// item it references, the resolved tile of the anchor it references, or
// its own tile.
func AnchorTile(view *diagram.View, anchor diagram.Anchor) (geometry.Coords, error) {
	for depth := 0; depth < maxAnchorDepth; depth++ {
		switch {
		case anchor.Ref.Count() != 1:
			return geometry.Coords{}, fmt.Errorf("anchor %s sets %d references", anchor.ID, anchor.Ref.Count())
		case anchor.Ref.Tile != nil:
			return *anchor.Ref.Tile, nil
		case anchor.Ref.Item != "":
			_, item, err := view.ItemByID(anchor.Ref.Item)
			if err != nil {
				return geometry.Coords{}, fmt.Errorf("anchor %s: %w", anchor.ID, err)
			}
			return item.Tile, nil
		default:
			_, next, err := view.AnchorByID(anchor.Ref.Anchor)
			if err != nil {
				return geometry.Coords{}, fmt.Errorf("anchor %s: %w", anchor.ID, err)
			}
			anchor = *next
		}
	}
	return geometry.Coords{}, fmt.Errorf("anchor %s: reference chain too deep", anchor.ID)
}

// anchorTiles resolves every anchor of a link in order.
func anchorTiles(view *diagram.View, anchors []diagram.Anchor) ([]geometry.Coords, error) {
	tiles := make([]geometry.Coords, len(anchors))
	for i, a := range anchors {
		t, err := AnchorTile(view, a)
		if err != nil {
			return nil, err
		}
		tiles[i] = t
	}
	return tiles, nil
}

// dependsOnItem reports whether anchor resolves through the view item.
func dependsOnItem(view *diagram.View, anchor diagram.Anchor, itemID string) bool {
	for depth := 0; depth < maxAnchorDepth; depth++ {
		switch {
		case anchor.Ref.Item != "":
			return anchor.Ref.Item == itemID
		case anchor.Ref.Anchor != "":
			_, next, err := view.AnchorByID(anchor.Ref.Anchor)
			if err != nil {
				return false
			}
			anchor = *next
		default:
			return false
		}
	}
	return false
}

// ConnectorsByViewItem returns the connectors and roads with at least one
// anchor that resolves through the view item, connectors first.
func ConnectorsByViewItem(view *diagram.View, itemID string) []diagram.ItemReference {
	var refs []diagram.ItemReference
	for _, kind := range linkKinds {
		for _, c := range *kind.links(view) {
			for _, a := range c.Anchors {
				if dependsOnItem(view, a, itemID) {
					refs = append(refs, diagram.ItemReference{Type: kind.typ, ID: c.ID})
					break
				}
			}
		}
	}
	return refs
}

// TextBoxTiles returns the tile range a text box occupies given its
// cached size.
func TextBoxTiles(tb diagram.TextBox, size geometry.TileSize) geometry.Rect {
	w := geometry.Max(size.Width, 1)
	to := tb.Tile
	if tb.Orientation == diagram.OrientationY {
		to.Y += w - 1
	} else {
		to.X += w - 1
	}
	return geometry.RectFrom(tb.Tile, to)
}

// ItemAtTile returns the topmost entity under tile. Entities are checked
// in the order view items, text boxes, connectors, roads, volumes,
// rectangles; within a collection index 0 is on top.
func ItemAtTile(view *diagram.View, sc *Scene, tile geometry.Coords) (diagram.ItemReference, bool) {
	for _, item := range view.Items {
		if item.Tile == tile {
			return diagram.ItemReference{Type: diagram.TypeItem, ID: item.ID}, true
		}
	}
	for _, tb := range view.TextBoxes {
		size := geometry.TileSize{Width: 1, Height: 1}
		if sc != nil {
			if cached, ok := sc.TextBoxes[tb.ID]; ok {
				size = cached.Size
			}
		}
		if TextBoxTiles(tb, size).Contains(tile) {
			return diagram.ItemReference{Type: diagram.TypeTextBox, ID: tb.ID}, true
		}
	}
	if sc != nil {
		for _, kind := range linkKinds {
			cache := kind.cache(sc)
			for _, c := range *kind.links(view) {
				if state, ok := cache[c.ID]; ok && state.Path.Contains(tile) {
					return diagram.ItemReference{Type: kind.typ, ID: c.ID}, true
				}
			}
		}
	}
	for _, vol := range view.Volumes {
		if vol.Bounds().Contains(tile) {
			return diagram.ItemReference{Type: diagram.TypeVolume, ID: vol.ID}, true
		}
	}
	for _, r := range view.Rectangles {
		if r.Bounds().Contains(tile) {
			return diagram.ItemReference{Type: diagram.TypeRectangle, ID: r.ID}, true
		}
	}
	return diagram.ItemReference{}, false
}

// AnchorAtTile returns the first anchor of link (kind TypeConnector or
// TypeRoad) that resolves to tile.
func AnchorAtTile(view *diagram.View, kind diagram.ItemType, linkID string, tile geometry.Coords) (*diagram.Anchor, bool) {
	lk := linkKindOf(kind)
	_, c, err := lk.find(view, linkID)
	if err != nil {
		return nil, false
	}
	for i := range c.Anchors {
		if t, err := AnchorTile(view, c.Anchors[i]); err == nil && t == tile {
			return &c.Anchors[i], true
		}
	}
	return nil, false
}

// InsertAnchorInPathOrder returns a copy of the link's anchors with anchor
// inserted so the anchors stay in the order their tiles appear along the
// cached path. An anchor whose tile is not on the path is appended.
func InsertAnchorInPathOrder(view *diagram.View, sc *Scene, kind diagram.ItemType, linkID string, anchor diagram.Anchor) ([]diagram.Anchor, error) {
	lk := linkKindOf(kind)
	_, c, err := lk.find(view, linkID)
	if err != nil {
		return nil, err
	}
	anchors := make([]diagram.Anchor, 0, len(c.Anchors)+1)
	for _, a := range c.Anchors {
		anchors = append(anchors, a.Clone())
	}

	state, ok := lk.cache(sc)[linkID]
	if !ok {
		return append(anchors, anchor), nil
	}
	tile, err := AnchorTile(view, anchor)
	if err != nil {
		return nil, err
	}
	target := state.Path.IndexOf(tile)
	if target < 0 {
		return append(anchors, anchor), nil
	}

	for i, a := range anchors {
		t, err := AnchorTile(view, a)
		if err != nil {
			continue
		}
		if idx := state.Path.IndexOf(t); idx > target {
			return append(anchors[:i], append([]diagram.Anchor{anchor}, anchors[i:]...)...), nil
		}
	}
	return append(anchors, anchor), nil
}
