package diagram

import "isoedit/geometry"

// Clone creates a deep copy of the model. The result shares no slices,
// pointers or maps with m.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	clone := &Model{
		Version:     m.Version,
		Title:       m.Title,
		Description: m.Description,
		Items:       cloneSlice(m.Items),
		Icons:       cloneSlice(m.Icons),
		Colors:      cloneSlice(m.Colors),
	}
	if m.Views != nil {
		clone.Views = make([]View, len(m.Views))
		for i := range m.Views {
			clone.Views[i] = m.Views[i].Clone()
		}
	}
	return clone
}

// Clone creates a deep copy of the view.
func (v View) Clone() View {
	clone := v
	clone.Items = cloneSlice(v.Items)
	clone.TextBoxes = cloneSlice(v.TextBoxes)
	if v.Rectangles != nil {
		clone.Rectangles = make([]Rectangle, len(v.Rectangles))
		for i, r := range v.Rectangles {
			clone.Rectangles[i] = r.Clone()
		}
	}
	if v.Volumes != nil {
		clone.Volumes = make([]Volume, len(v.Volumes))
		for i, vol := range v.Volumes {
			clone.Volumes[i] = vol.Clone()
		}
	}
	clone.Connectors = cloneConnectors(v.Connectors)
	clone.Roads = cloneConnectors(v.Roads)
	return clone
}

// Clone copies the rectangle including its isometric flag pointer.
func (r Rectangle) Clone() Rectangle {
	if r.Isometric != nil {
		iso := *r.Isometric
		r.Isometric = &iso
	}
	return r
}

// Clone copies the volume including its isometric flag pointer.
func (v Volume) Clone() Volume {
	v.Rectangle = v.Rectangle.Clone()
	return v
}

// Clone copies the connector and all of its anchors.
func (c Connector) Clone() Connector {
	if c.Anchors != nil {
		anchors := make([]Anchor, len(c.Anchors))
		for i, a := range c.Anchors {
			anchors[i] = a.Clone()
		}
		c.Anchors = anchors
	}
	return c
}

// Clone copies the anchor, duplicating its tile pointer.
func (a Anchor) Clone() Anchor {
	a.Ref.Tile = CloneCoords(a.Ref.Tile)
	return a
}

func cloneConnectors(src []Connector) []Connector {
	if src == nil {
		return nil
	}
	dst := make([]Connector, len(src))
	for i, c := range src {
		dst[i] = c.Clone()
	}
	return dst
}

// cloneSlice copies a slice of plain values, preserving nil.
func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}

// CloneCoords copies a tile pointer.
func CloneCoords(c *geometry.Coords) *geometry.Coords {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
