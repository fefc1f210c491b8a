// Package diagram contains the persisted document types of an isometric
// diagram: the model, its views and the entities placed on them.
package diagram

import "isoedit/geometry"

// Model is the persisted document. ModelItems carry identity only; their
// placement lives in each View.
type Model struct {
	Version     string      `json:"version,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Items       []ModelItem `json:"items"`
	Views       []View      `json:"views"`
	Icons       []Icon      `json:"icons,omitempty"`
	Colors      []Color     `json:"colors,omitempty"`
}

// ModelItem is the identity and content of a node, shared across views.
type ModelItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Icon is an image that can be attached to a ModelItem.
type Icon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Collection  string `json:"collection,omitempty"`
	IsIsometric bool   `json:"isIsometric,omitempty"`
}

// Color is a named palette entry referenced by id.
type Color struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// View is one diagram page.
type View struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Items       []ViewItem  `json:"items"`
	Rectangles  []Rectangle `json:"rectangles,omitempty"`
	Volumes     []Volume    `json:"volumes,omitempty"`
	Connectors  []Connector `json:"connectors,omitempty"`
	Roads       []Connector `json:"roads,omitempty"`
	TextBoxes   []TextBox   `json:"textBoxes,omitempty"`
}

// ViewItem places a ModelItem (same id) on a tile of one view.
type ViewItem struct {
	ID               string          `json:"id"`
	Tile             geometry.Coords `json:"tile"`
	LabelHeight      int             `json:"labelHeight,omitempty"`
	ScaleFactor      float64         `json:"scaleFactor,omitempty"`
	Color            string          `json:"color,omitempty"`
	MirrorHorizontal bool            `json:"mirrorHorizontal,omitempty"`
	MirrorVertical   bool            `json:"mirrorVertical,omitempty"`
}

// LineStyle is the stroke style of outlines and connectors.
type LineStyle string

const (
	StyleNone   LineStyle = "NONE"
	StyleSolid  LineStyle = "SOLID"
	StyleDashed LineStyle = "DASHED"
	StyleDotted LineStyle = "DOTTED"
)

// Valid reports whether s is a known style. The empty style means SOLID.
func (s LineStyle) Valid() bool {
	switch s {
	case "", StyleNone, StyleSolid, StyleDashed, StyleDotted:
		return true
	}
	return false
}

// Rectangle is a flat tile area.
type Rectangle struct {
	ID               string          `json:"id"`
	From             geometry.Coords `json:"from"`
	To               geometry.Coords `json:"to"`
	Color            string          `json:"color,omitempty"`
	Style            LineStyle       `json:"style,omitempty"`
	Width            int             `json:"width,omitempty"`
	Radius           int             `json:"radius,omitempty"`
	ImageData        string          `json:"imageData,omitempty"`
	MirrorHorizontal bool            `json:"mirrorHorizontal,omitempty"`
	MirrorVertical   bool            `json:"mirrorVertical,omitempty"`
	RotationAngle    float64         `json:"rotationAngle,omitempty"`
	Isometric        *bool           `json:"isometric,omitempty"`
}

// IsIsometric defaults to true when the flag is unset.
func (r Rectangle) IsIsometric() bool {
	return r.Isometric == nil || *r.Isometric
}

// Bounds returns the tile bounding box of the rectangle.
func (r Rectangle) Bounds() geometry.Rect {
	return geometry.RectFrom(r.From, r.To)
}

// Volume is a rectangle extruded Height tiles upwards.
type Volume struct {
	Rectangle
	Height  int  `json:"height"`
	HasRoof bool `json:"hasRoof,omitempty"`
}

// Connector joins two or more anchors. Roads share the same shape.
type Connector struct {
	ID          string    `json:"id"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Width       int       `json:"width,omitempty"`
	Style       LineStyle `json:"style,omitempty"`
	Anchors     []Anchor  `json:"anchors"`
}

// Anchor is an endpoint or waypoint of a connector.
type Anchor struct {
	ID  string    `json:"id"`
	Ref AnchorRef `json:"ref"`
}

// AnchorRef binds an anchor to exactly one of a view item, another anchor
// or a raw tile.
type AnchorRef struct {
	Item   string           `json:"item,omitempty"`
	Anchor string           `json:"anchor,omitempty"`
	Tile   *geometry.Coords `json:"tile,omitempty"`
}

// Count returns how many reference keys are set. Valid refs have exactly one.
func (r AnchorRef) Count() int {
	n := 0
	if r.Item != "" {
		n++
	}
	if r.Anchor != "" {
		n++
	}
	if r.Tile != nil {
		n++
	}
	return n
}

// ItemRef returns an AnchorRef bound to a view item.
func ItemRef(id string) AnchorRef {
	return AnchorRef{Item: id}
}

// AnchorIDRef returns an AnchorRef bound to another anchor.
func AnchorIDRef(id string) AnchorRef {
	return AnchorRef{Anchor: id}
}

// TileRef returns an AnchorRef bound to a tile.
func TileRef(tile geometry.Coords) AnchorRef {
	return AnchorRef{Tile: &tile}
}

// Orientation is the axis a text box is written along.
type Orientation string

const (
	OrientationX Orientation = "X"
	OrientationY Orientation = "Y"
)

// TextBox is a single-tile anchored label.
type TextBox struct {
	ID          string          `json:"id"`
	Tile        geometry.Coords `json:"tile"`
	Content     string          `json:"content"`
	FontSize    float64         `json:"fontSize,omitempty"`
	Color       string          `json:"color,omitempty"`
	Orientation Orientation     `json:"orientation,omitempty"`
	IsBold      bool            `json:"isBold,omitempty"`
	IsItalic    bool            `json:"isItalic,omitempty"`
}

// DefaultFontSize is the text box font size in tile units.
const DefaultFontSize = 0.6

// EffectiveFontSize returns FontSize or the default when unset.
func (t TextBox) EffectiveFontSize() float64 {
	if t.FontSize <= 0 {
		return DefaultFontSize
	}
	return t.FontSize
}

// ItemType names the kind of entity an ItemReference points at.
type ItemType string

const (
	TypeItem            ItemType = "ITEM"
	TypeRectangle       ItemType = "RECTANGLE"
	TypeVolume          ItemType = "VOLUME"
	TypeConnector       ItemType = "CONNECTOR"
	TypeConnectorAnchor ItemType = "CONNECTOR_ANCHOR"
	TypeRoad            ItemType = "ROAD"
	TypeRoadAnchor      ItemType = "ROAD_ANCHOR"
	TypeTextBox         ItemType = "TEXTBOX"
)

// ItemReference identifies one entity inside a view.
type ItemReference struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`
}
