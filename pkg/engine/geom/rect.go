package geom

import "fmt"

// Rect is an axis-aligned rectangle. The end coordinates are exclusive.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a rectangle from a start and a size
func NewRect(start, size Loc) Rect {
	return Rect{start.X, start.Y, size.X, size.Y}
}

// Start returns the top-left corner
func (r Rect) Start() Loc {
	return Loc{r.X, r.Y}
}

// End returns the exclusive bottom-right corner
func (r Rect) End() Loc {
	return Loc{r.X + r.Width, r.Y + r.Height}
}

// Size returns the width and height as a Loc
func (r Rect) Size() Loc {
	return Loc{r.Width, r.Height}
}

// Right returns the exclusive right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns width times height
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no tiles
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the integer center of the rectangle
func (r Rect) Center() Loc {
	return Loc{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the location lies inside the rectangle
func (r Rect) Contains(l Loc) bool {
	return l.X >= r.X && l.X < r.Right() && l.Y >= r.Y && l.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles share at least one tile.
// Touching edges do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlapping region, or an empty Rect
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// IncludeLoc returns the smallest rectangle covering r and the tile at l
func (r Rect) IncludeLoc(l Loc) Rect {
	if r.Empty() {
		return Rect{l.X, l.Y, 1, 1}
	}
	x0, y0 := min(r.X, l.X), min(r.Y, l.Y)
	x1, y1 := max(r.Right(), l.X+1), max(r.Bottom(), l.Y+1)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Translate returns the rectangle moved by the offset
func (r Rect) Translate(o Loc) Rect {
	return Rect{r.X + o.X, r.Y + o.Y, r.Width, r.Height}
}

// Side returns the coordinate of the given edge. Down and Right are exclusive.
func (r Rect) Side(d Dir4) int {
	switch d {
	case Up:
		return r.Y
	case Down:
		return r.Bottom()
	case Left:
		return r.X
	case Right:
		return r.Right()
	}
	return 0
}

// Span returns the half-open extent of the rectangle along the axis
func (r Rect) Span(a Axis) (lo, hi int) {
	if a == Horizontal {
		return r.X, r.Right()
	}
	return r.Y, r.Bottom()
}

// FromSpans builds a rectangle from its extent along the given axis and the
// extent along the other one
func FromSpans(a Axis, lo, hi, orthLo, orthHi int) Rect {
	if a == Horizontal {
		return Rect{lo, orthLo, hi - lo, orthHi - orthLo}
	}
	return Rect{orthLo, lo, orthHi - orthLo, hi - lo}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}
