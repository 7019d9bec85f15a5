// Package geom provides the integer geometry used by the floor generators:
// locations, rectangles and the four cardinal directions.
package geom

import "fmt"

// Loc is a tile coordinate or a 2D size
type Loc struct {
	X, Y int
}

// Add returns the component-wise sum
func (l Loc) Add(o Loc) Loc {
	return Loc{l.X + o.X, l.Y + o.Y}
}

// Sub returns the component-wise difference
func (l Loc) Sub(o Loc) Loc {
	return Loc{l.X - o.X, l.Y - o.Y}
}

// Scale multiplies both components by n
func (l Loc) Scale(n int) Loc {
	return Loc{l.X * n, l.Y * n}
}

// Get returns the component along the given axis
func (l Loc) Get(a Axis) int {
	if a == Horizontal {
		return l.X
	}
	return l.Y
}

// Dist8 is the chebyshev distance between two locations
func (l Loc) Dist8(o Loc) int {
	dx, dy := abs(l.X-o.X), abs(l.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
