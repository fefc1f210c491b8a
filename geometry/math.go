package geometry

import "math"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TileDistance returns the Manhattan distance between two tiles.
func TileDistance(a, b Coords) int {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the step from a to b is more along x than y.
func IsHorizontal(a, b Coords) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}

// IsVertical returns true if the step from a to b is more along y than x.
func IsVertical(a, b Coords) bool {
	return Abs(b.Y-a.Y) > Abs(b.X-a.X)
}
