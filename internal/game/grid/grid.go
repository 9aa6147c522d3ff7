// Package grid provides the coordinate and terrain-feature vocabulary for the
// dungeon: cell coordinates, compass deltas, and the feature kinds the
// movement resolver classifies against.
package grid

import "fmt"

// Coord is an absolute cell coordinate on the dungeon grid.
type Coord struct {
	X, Y int
}

// Delta is a relative offset between cells. Movement input is always a unit
// compass delta; the zero delta means "no direction chosen yet".
type Delta struct {
	DX, DY int
}

// Compass lists the eight unit deltas in reading order.
var Compass = []Delta{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// IsZero reports whether d is the zero delta.
func (d Delta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsUnit reports whether d is a unit compass delta (both components in [-1,1],
// not both zero).
func (d Delta) IsUnit() bool {
	return !d.IsZero() && d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}

// Scale returns d multiplied by n.
func (d Delta) Scale(n int) Delta {
	return Delta{d.DX * n, d.DY * n}
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Delta) Coord {
	return Coord{c.X + d.DX, c.Y + d.DY}
}

// Sub returns the delta from other to c.
func (c Coord) Sub(other Coord) Delta {
	return Delta{c.X - other.X, c.Y - other.Y}
}

// Distance returns the Chebyshev distance between c and other, the number of
// king moves separating the two cells.
func (c Coord) Distance(other Coord) int {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
