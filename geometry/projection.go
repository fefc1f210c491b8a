package geometry

import "math"

// UnprojectedTileSize is the edge length in pixels of a tile before any
// projection is applied.
const UnprojectedTileSize = 100

// ProjectedTileSize is the bounding box of one isometric tile diamond at
// zoom 1.
var ProjectedTileSize = Size{
	Width:  UnprojectedTileSize * 1.415,
	Height: UnprojectedTileSize * 1.415 * 0.571,
}

// Origin selects which point of a tile a projection returns.
type Origin int

const (
	OriginCenter Origin = iota
	OriginTop
	OriginBottom
	OriginLeft
	OriginRight
)

// Scroll is the viewport pan offset in screen pixels.
type Scroll struct {
	Position Point `json:"position"`
}

// Projection converts tiles to pixels for one projected tile size. The zero
// value is usable and degenerates every tile to the origin.
type Projection struct {
	Tile Size
}

// Default is the projection used by the package level functions.
var Default = Projection{Tile: ProjectedTileSize}

func (p Projection) half() (float64, float64) {
	return p.Tile.Width / 2, p.Tile.Height / 2
}

// TilePosition returns the unzoomed pixel position of a tile's chosen point.
func (p Projection) TilePosition(tile Coords, origin Origin) Point {
	halfW, halfH := p.half()
	pos := Point{
		X: float64(tile.X-tile.Y) * halfW,
		Y: float64(tile.X+tile.Y) * halfH,
	}
	switch origin {
	case OriginTop:
		pos.Y -= halfH
	case OriginBottom:
		pos.Y += halfH
	case OriginLeft:
		pos.X -= halfW
	case OriginRight:
		pos.X += halfW
	}
	return pos
}

// IsometricProject returns the zoomed pixel position of a tile's center.
func (p Projection) IsometricProject(tile Coords, zoom float64) Point {
	return p.TilePosition(tile, OriginCenter).Mul(zoom)
}

// Fractional inverts IsometricProject for an arbitrary pixel, returning
// continuous tile coordinates where integer values are tile centers.
func (p Projection) Fractional(pixel Point, zoom float64) (float64, float64) {
	halfW, halfH := p.half()
	if halfW == 0 || halfH == 0 {
		return 0, 0
	}
	if zoom <= 0 {
		zoom = DefaultZoomLimits.Min
	}
	u := pixel.X / zoom / halfW
	v := pixel.Y / zoom / halfH
	return (u + v) / 2, (v - u) / 2
}

// ScreenToIso converts a screen pixel inside the renderer viewport to the
// tile under it. The renderer center plus scroll is the screen position of
// tile (0,0).
func (p Projection) ScreenToIso(mouse Point, zoom float64, scroll Scroll, renderer Size) Coords {
	local := mouse.Sub(renderer.Center()).Sub(scroll.Position)
	fx, fy := p.Fractional(local, zoom)
	// Shift by half a tile so each diamond floors to a single cell.
	return Coords{
		X: int(math.Floor(fx + 0.5)),
		Y: int(math.Floor(fy + 0.5)),
	}
}

// IsoToScreen returns the screen position of a tile's center.
func (p Projection) IsoToScreen(tile Coords, zoom float64, scroll Scroll, renderer Size) Point {
	return renderer.Center().Add(scroll.Position).Add(p.IsometricProject(tile, zoom))
}

// IsometricProject projects a tile center with the default projection.
func IsometricProject(tile Coords, zoom float64) Point {
	return Default.IsometricProject(tile, zoom)
}

// FlatProject maps a tile to its top-left pixel without skew.
func FlatProject(tile Coords, zoom float64) Point {
	return Point{
		X: float64(tile.X * UnprojectedTileSize),
		Y: float64(tile.Y * UnprojectedTileSize),
	}.Mul(zoom)
}

// TilePosition returns a tile's pixel position with the default projection.
func TilePosition(tile Coords, origin Origin) Point {
	return Default.TilePosition(tile, origin)
}

// ScreenToIso converts a screen pixel to a tile with the default projection.
func ScreenToIso(mouse Point, zoom float64, scroll Scroll, renderer Size) Coords {
	return Default.ScreenToIso(mouse, zoom, scroll, renderer)
}

// IsoToScreen returns a tile center in screen pixels with the default
// projection.
func IsoToScreen(tile Coords, zoom float64, scroll Scroll, renderer Size) Point {
	return Default.IsoToScreen(tile, zoom, scroll, renderer)
}

// Matrix is a 2D affine transform:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// TransformPoint applies m to p.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TileRange describes how a renderer should paint a tile-area entity: draw
// an unprojected box of Size pixels and map it through Transform.
type TileRange struct {
	Origin    Point
	Size      Size
	Transform Matrix
}

// ProjectTileRange computes the placement of the from/to tile range. For
// isometric ranges the box's x axis runs along tile +x from the Left corner
// and its y axis runs from the bottom row towards the top row.
func ProjectTileRange(from, to Coords, isometric bool, zoom float64) TileRange {
	return Default.ProjectTileRange(from, to, isometric, zoom)
}

// ProjectTileRange is the Projection form of the package level function.
func (p Projection) ProjectTileRange(from, to Coords, isometric bool, zoom float64) TileRange {
	bounds := RectFrom(from, to)
	tiles := bounds.Size()
	size := Size{
		Width:  float64(tiles.Width * UnprojectedTileSize),
		Height: float64(tiles.Height * UnprojectedTileSize),
	}
	if !isometric {
		origin := FlatProject(bounds.Top(), zoom)
		return TileRange{
			Origin:    origin,
			Size:      size,
			Transform: Matrix{A: zoom, C: origin.X, E: zoom, F: origin.Y},
		}
	}
	halfW, halfH := p.half()
	sx := halfW / UnprojectedTileSize * zoom
	sy := halfH / UnprojectedTileSize * zoom
	origin := p.TilePosition(bounds.Left(), OriginLeft).Mul(zoom)
	return TileRange{
		Origin: origin,
		Size:   size,
		Transform: Matrix{
			A: sx, B: sx, C: origin.X,
			D: sy, E: -sy, F: origin.Y,
		},
	}
}
