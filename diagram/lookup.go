package diagram

// indexOf returns the position of the element whose id matches, or -1.
func indexOf[T any](items []T, id string, idOf func(*T) string) int {
	for i := range items {
		if idOf(&items[i]) == id {
			return i
		}
	}
	return -1
}

func find[T any](kind string, items []T, id string, idOf func(*T) string) (int, *T, error) {
	i := indexOf(items, id, idOf)
	if i < 0 {
		return -1, nil, &NotFoundError{Kind: kind, ID: id}
	}
	return i, &items[i], nil
}

func modelItemID(i *ModelItem) string { return i.ID }
func viewID(v *View) string           { return v.ID }
func viewItemID(i *ViewItem) string   { return i.ID }
func rectangleID(r *Rectangle) string { return r.ID }
func volumeID(v *Volume) string       { return v.ID }
func connectorID(c *Connector) string { return c.ID }
func textBoxID(t *TextBox) string     { return t.ID }
func colorID(c *Color) string         { return c.ID }
func iconID(i *Icon) string           { return i.ID }

// ModelItemByID returns the model item with id. The pointer aliases m.
func (m *Model) ModelItemByID(id string) (int, *ModelItem, error) {
	return find("ModelItem", m.Items, id, modelItemID)
}

// ViewByID returns the view with id. The pointer aliases m.
func (m *Model) ViewByID(id string) (int, *View, error) {
	return find("View", m.Views, id, viewID)
}

// ColorByID returns the palette color with id.
func (m *Model) ColorByID(id string) (int, *Color, error) {
	return find("Color", m.Colors, id, colorID)
}

// IconByID returns the icon with id.
func (m *Model) IconByID(id string) (int, *Icon, error) {
	return find("Icon", m.Icons, id, iconID)
}

// HasColor reports whether id names a palette color.
func (m *Model) HasColor(id string) bool {
	return indexOf(m.Colors, id, colorID) >= 0
}

// HasIcon reports whether id names an icon.
func (m *Model) HasIcon(id string) bool {
	return indexOf(m.Icons, id, iconID) >= 0
}

// ColorOrDefault looks up a color, falling back to the first palette entry
// and then to the first built-in color.
func (m *Model) ColorOrDefault(id string) Color {
	if _, c, err := m.ColorByID(id); err == nil {
		return *c
	}
	if len(m.Colors) > 0 {
		return m.Colors[0]
	}
	return DefaultColors[0]
}

// DefaultColorID returns the id new entities are colored with.
func (m *Model) DefaultColorID() string {
	return m.ColorOrDefault("").ID
}

// IconOrDefault looks up an icon, falling back to the built-in block icon.
func (m *Model) IconOrDefault(id string) Icon {
	if _, ic, err := m.IconByID(id); err == nil {
		return *ic
	}
	return DefaultIcon
}

// ItemByID returns the view item with id.
func (v *View) ItemByID(id string) (int, *ViewItem, error) {
	return find("ViewItem", v.Items, id, viewItemID)
}

// RectangleByID returns the rectangle with id.
func (v *View) RectangleByID(id string) (int, *Rectangle, error) {
	return find("Rectangle", v.Rectangles, id, rectangleID)
}

// VolumeByID returns the volume with id.
func (v *View) VolumeByID(id string) (int, *Volume, error) {
	return find("Volume", v.Volumes, id, volumeID)
}

// ConnectorByID returns the connector with id.
func (v *View) ConnectorByID(id string) (int, *Connector, error) {
	return find("Connector", v.Connectors, id, connectorID)
}

// RoadByID returns the road with id.
func (v *View) RoadByID(id string) (int, *Connector, error) {
	return find("Road", v.Roads, id, connectorID)
}

// TextBoxByID returns the text box with id.
func (v *View) TextBoxByID(id string) (int, *TextBox, error) {
	return find("TextBox", v.TextBoxes, id, textBoxID)
}

// AnchorByID searches connectors and roads for the anchor with id and
// returns it with the id of the link that owns it.
func (v *View) AnchorByID(id string) (owner string, anchor *Anchor, err error) {
	for _, links := range [][]Connector{v.Connectors, v.Roads} {
		for i := range links {
			for j := range links[i].Anchors {
				if links[i].Anchors[j].ID == id {
					return links[i].ID, &links[i].Anchors[j], nil
				}
			}
		}
	}
	return "", nil, &NotFoundError{Kind: "Anchor", ID: id}
}

// AllAnchors returns every anchor of every connector and road in the view.
func (v *View) AllAnchors() []Anchor {
	var anchors []Anchor
	for _, c := range v.Connectors {
		anchors = append(anchors, c.Anchors...)
	}
	for _, r := range v.Roads {
		anchors = append(anchors, r.Anchors...)
	}
	return anchors
}
