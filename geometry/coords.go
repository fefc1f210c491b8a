// Package geometry maps between the integer tile grid and screen pixels
// under isometric and flat projection.
package geometry

// Coords is a position on the tile grid.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c + o.
func (c Coords) Add(o Coords) Coords {
	return Coords{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Coords) Sub(o Coords) Coords {
	return Coords{X: c.X - o.X, Y: c.Y - o.Y}
}

// IsZero reports whether c is the origin tile.
func (c Coords) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Point is a screen position or vector in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div divides p by s. A zero divisor returns p unchanged.
func (p Point) Div(s float64) Point {
	if s == 0 {
		return p
	}
	return Point{X: p.X / s, Y: p.Y / s}
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of a box of this size anchored at the origin.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// TileSize is a width and height measured in tiles.
type TileSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect holds the four corners of an axis-aligned tile range in the fixed
// order top, right, bottom, left. Index 3 (min x, max y) is the projection
// origin for tile-area entities.
type Rect [4]Coords

// Top is the (min x, min y) corner.
func (r Rect) Top() Coords { return r[0] }

// Right is the (max x, min y) corner.
func (r Rect) Right() Coords { return r[1] }

// Bottom is the (max x, max y) corner.
func (r Rect) Bottom() Coords { return r[2] }

// Left is the (min x, max y) corner.
func (r Rect) Left() Coords { return r[3] }

// Contains reports whether tile lies inside the rectangle, edges included.
func (r Rect) Contains(tile Coords) bool {
	return tile.X >= r[0].X && tile.X <= r[2].X &&
		tile.Y >= r[0].Y && tile.Y <= r[2].Y
}

// Size returns the number of tiles spanned on each axis.
func (r Rect) Size() TileSize {
	return TileSize{
		Width:  r[2].X - r[0].X + 1,
		Height: r[2].Y - r[0].Y + 1,
	}
}

// BoundingBox returns the axis-aligned bounding box of coords, grown by
// offset on every side. An empty list yields a box around the origin.
func BoundingBox(coords []Coords, offset Coords) Rect {
	if len(coords) == 0 {
		coords = []Coords{{}}
	}
	lowX, lowY := coords[0].X, coords[0].Y
	highX, highY := lowX, lowY
	for _, c := range coords[1:] {
		lowX = Min(lowX, c.X)
		lowY = Min(lowY, c.Y)
		highX = Max(highX, c.X)
		highY = Max(highY, c.Y)
	}
	return Rect{
		{X: lowX - offset.X, Y: lowY - offset.Y},
		{X: highX + offset.X, Y: lowY - offset.Y},
		{X: highX + offset.X, Y: highY + offset.Y},
		{X: lowX - offset.X, Y: highY + offset.Y},
	}
}

// RectFrom is the bounding box of a from/to pair. from == to gives a 1x1
// tile box.
func RectFrom(from, to Coords) Rect {
	return BoundingBox([]Coords{from, to}, Coords{})
}
