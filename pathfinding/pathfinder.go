// Package pathfinding walks the tile grid between connector anchors.
package pathfinding

import (
	"isoedit/geometry"
)

// PathCost defines the cost model for the tile walk.
type PathCost struct {
	StraightCost int // Base cost for moving one tile
	TurnCost     int // Penalty for changing direction
}

// DefaultPathCost keeps walks to as few turns as possible.
var DefaultPathCost = PathCost{
	StraightCost: 10,
	TurnCost:     20,
}

// Direction represents a movement direction on the grid.
type Direction int

const (
	DirNorth Direction = iota
	DirEast
	DirSouth
	DirWest
	DirNone
)

// String returns the compass name of d.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	default:
		return "none"
	}
}

// GetDirection returns the direction of the step from p1 to p2. Steps that
// are not along one axis have no direction.
func GetDirection(p1, p2 geometry.Coords) Direction {
	if p1.X == p2.X {
		if p1.Y < p2.Y {
			return DirSouth
		} else if p1.Y > p2.Y {
			return DirNorth
		}
	} else if p1.Y == p2.Y {
		if p1.X < p2.X {
			return DirEast
		} else if p1.X > p2.X {
			return DirWest
		}
	}
	return DirNone
}

// GetNeighbors returns the 4-connected neighbors of a tile.
func GetNeighbors(p geometry.Coords) []geometry.Coords {
	return []geometry.Coords{
		{X: p.X, Y: p.Y - 1}, // North
		{X: p.X + 1, Y: p.Y}, // East
		{X: p.X, Y: p.Y + 1}, // South
		{X: p.X - 1, Y: p.Y}, // West
	}
}

// neighborsTowards orders the neighbors of p so the ones closing the
// distance to goal come first, longer axis before shorter.
func neighborsTowards(p, goal geometry.Coords) []geometry.Coords {
	dx := goal.X - p.X
	dy := goal.Y - p.Y
	if dx == 0 && dy == 0 {
		return GetNeighbors(p)
	}

	var horizontal, vertical []geometry.Coords
	if dx != 0 {
		horizontal = append(horizontal, geometry.Coords{X: p.X + sign(dx), Y: p.Y})
	}
	if dy != 0 {
		vertical = append(vertical, geometry.Coords{X: p.X, Y: p.Y + sign(dy)})
	}

	var ordered []geometry.Coords
	if geometry.Abs(dx) >= geometry.Abs(dy) {
		ordered = append(horizontal, vertical...)
	} else {
		ordered = append(vertical, horizontal...)
	}
	for _, n := range GetNeighbors(p) {
		if !containsTile(ordered, n) {
			ordered = append(ordered, n)
		}
	}
	return ordered
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

// containsTile checks if a slice contains a specific tile.
func containsTile(tiles []geometry.Coords, p geometry.Coords) bool {
	for _, t := range tiles {
		if t == p {
			return true
		}
	}
	return false
}

// IsAligned checks if three tiles lie on one row or column.
func IsAligned(p1, p2, p3 geometry.Coords) bool {
	if p1.Y == p2.Y && p2.Y == p3.Y {
		return true
	}
	return p1.X == p2.X && p2.X == p3.X
}
