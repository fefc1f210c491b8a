package pathfinding

import (
	"isoedit/geometry"
	"isoedit/logging"
)

// SearchOffset pads the anchors' bounding box to give walks room to turn.
var SearchOffset = geometry.Coords{X: 1, Y: 1}

// Path is the walk a connector or road occupies. Tiles are absolute grid
// positions in anchor order. Rectangle is the search area the walk was
// confined to. Turns holds the indices into Tiles where the direction of
// travel changes.
type Path struct {
	Tiles     []geometry.Coords `json:"tiles"`
	Rectangle geometry.Rect     `json:"rectangle"`
	Turns     []int             `json:"turns,omitempty"`
}

// Len returns the number of tiles in the path.
func (p Path) Len() int {
	return len(p.Tiles)
}

// IndexOf returns the position of tile in the path, or -1.
func (p Path) IndexOf(tile geometry.Coords) int {
	for i, t := range p.Tiles {
		if t == tile {
			return i
		}
	}
	return -1
}

// Contains reports whether the path passes through tile.
func (p Path) Contains(tile geometry.Coords) bool {
	return p.IndexOf(tile) >= 0
}

// Walker joins anchor tiles into paths.
type Walker struct {
	finder *AStarPathFinder
}

// NewWalker creates a walker with the given cost model.
func NewWalker(costs PathCost) *Walker {
	return &Walker{finder: NewAStarPathFinder(costs)}
}

var defaultWalker = NewWalker(DefaultPathCost)

// Walk joins anchors with the default walker.
func Walk(anchors []geometry.Coords) Path {
	return defaultWalker.Walk(anchors)
}

// Walk returns the path through every anchor tile in order. Consecutive
// segments share their junction tile once.
func (w *Walker) Walk(anchors []geometry.Coords) Path {
	if len(anchors) == 0 {
		return Path{}
	}
	area := geometry.BoundingBox(anchors, SearchOffset)

	tiles := []geometry.Coords{anchors[0]}
	for i := 1; i < len(anchors); i++ {
		from, to := anchors[i-1], anchors[i]
		segment, err := w.finder.FindPath(from, to, area)
		if err != nil {
			logging.Logger().Debug("falling back to direct walk",
				"from", from, "to", to, "error", err)
			segment = directWalk(from, to)
		}
		tiles = append(tiles, segment[1:]...)
	}

	return Path{
		Tiles:     tiles,
		Rectangle: area,
		Turns:     turns(tiles),
	}
}

// directWalk steps along x first and then along y.
func directWalk(from, to geometry.Coords) []geometry.Coords {
	tiles := []geometry.Coords{from}
	current := from
	for current.X != to.X {
		current.X += sign(to.X - current.X)
		tiles = append(tiles, current)
	}
	for current.Y != to.Y {
		current.Y += sign(to.Y - current.Y)
		tiles = append(tiles, current)
	}
	return tiles
}

// turns returns the indices of tiles where the walk changes direction.
func turns(tiles []geometry.Coords) []int {
	var result []int
	for i := 1; i+1 < len(tiles); i++ {
		if !IsAligned(tiles[i-1], tiles[i], tiles[i+1]) {
			result = append(result, i)
		}
	}
	return result
}
