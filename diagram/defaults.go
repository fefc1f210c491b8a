package diagram

// DefaultColors is the palette applied to models that bring none.
var DefaultColors = []Color{
	{ID: "color1", Value: "#a5b8f3"},
	{ID: "color2", Value: "#bbadfb"},
	{ID: "color3", Value: "#f4eb8e"},
	{ID: "color4", Value: "#f0aca9"},
	{ID: "color5", Value: "#fad6ac"},
	{ID: "color6", Value: "#a8dc9d"},
	{ID: "color7", Value: "#b3e5e3"},
}

// DefaultIcon is returned for items whose icon reference is missing.
var DefaultIcon = Icon{
	ID:          "block",
	Name:        "Block",
	Collection:  "isoedit",
	IsIsometric: true,
}

// DefaultIcons is the icon set applied to models that bring none.
var DefaultIcons = []Icon{
	DefaultIcon,
	{ID: "server", Name: "Server", Collection: "isoedit", IsIsometric: true},
	{ID: "storage", Name: "Storage", Collection: "isoedit", IsIsometric: true},
	{ID: "cloud", Name: "Cloud", Collection: "isoedit", IsIsometric: true},
	{ID: "user", Name: "User", Collection: "isoedit", IsIsometric: true},
	{ID: "laptop", Name: "Laptop", Collection: "isoedit", IsIsometric: true},
}

// DefaultViewID names the view created for empty models.
const DefaultViewID = "view1"

// NewModel returns an empty model with one view and the default palette.
func NewModel(title string) *Model {
	return &Model{
		Title:  title,
		Views:  []View{{ID: DefaultViewID, Name: "Untitled view"}},
		Icons:  append([]Icon(nil), DefaultIcons...),
		Colors: append([]Color(nil), DefaultColors...),
	}
}

// Compact replaces empty collections with nil, the form a collection takes
// again once its last entity is deleted.
func (m *Model) Compact() {
	m.Items = compact(m.Items)
	m.Views = compact(m.Views)
	m.Icons = compact(m.Icons)
	m.Colors = compact(m.Colors)
	for i := range m.Views {
		v := &m.Views[i]
		v.Items = compact(v.Items)
		v.Rectangles = compact(v.Rectangles)
		v.Volumes = compact(v.Volumes)
		v.Connectors = compact(v.Connectors)
		v.Roads = compact(v.Roads)
		v.TextBoxes = compact(v.TextBoxes)
	}
}

func compact[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	return items
}
