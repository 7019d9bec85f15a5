package world

import (
	"fmt"

	"roomweaver/pkg/engine/geom"
)

// Grid represents the tile map with encapsulated tile storage
type Grid struct {
	tiles  [][]Tile
	width  int
	height int
}

// NewGrid creates a new grid with the given dimensions, filled with fill
func NewGrid(width, height int, fill Tile) (*Grid, error) {
	g := &Grid{}
	if err := g.Build(width, height, fill); err != nil {
		return nil, err
	}
	return g, nil
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Bounds returns the grid as a rectangle at the origin
func (g *Grid) Bounds() geom.Rect {
	return geom.Rect{Width: g.width, Height: g.height}
}

// IsValidPosition checks if a location is within grid bounds
func (g *Grid) IsValidPosition(l geom.Loc) bool {
	return l.X >= 0 && l.X < g.width && l.Y >= 0 && l.Y < g.height
}

// IsOnPerimeter checks if a location is on the edge of the grid
func (g *Grid) IsOnPerimeter(l geom.Loc) bool {
	return g.IsValidPosition(l) && (l.X == 0 || l.Y == 0 || l.X == g.width-1 || l.Y == g.height-1)
}

// Get returns the tile at l. Out of bounds locations return the zero tile.
func (g *Grid) Get(l geom.Loc) Tile {
	if !g.IsValidPosition(l) {
		return Tile{}
	}
	return g.tiles[l.X][l.Y]
}

// Set stores t at l. Returns false if out of bounds.
func (g *Grid) Set(l geom.Loc, t Tile) bool {
	if !g.IsValidPosition(l) {
		return false
	}
	g.tiles[l.X][l.Y] = t
	return true
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, height int, fill Tile) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}

	g.width = width
	g.height = height
	g.tiles = make([][]Tile, width)
	for x := range g.tiles {
		col := make([]Tile, height)
		for y := range col {
			col[y] = fill
		}
		g.tiles[x] = col
	}
	return nil
}

// Fill sets every tile inside r (clipped to the grid) to t
func (g *Grid) Fill(r geom.Rect, t Tile) {
	r = r.Intersect(g.Bounds())
	for x := r.X; x < r.Right(); x++ {
		for y := r.Y; y < r.Bottom(); y++ {
			g.tiles[x][y] = t
		}
	}
}

// ForEach iterates over all tiles row by row, calling fn for each
func (g *Grid) ForEach(fn func(l geom.Loc, t Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(geom.Loc{X: x, Y: y}, g.tiles[x][y])
		}
	}
}

// Count returns how many tiles are equivalent to t
func (g *Grid) Count(t Tile) int {
	n := 0
	g.ForEach(func(_ geom.Loc, cur Tile) {
		if cur.Equivalent(t) {
			n++
		}
	})
	return n
}

// Neighbors returns the in-bounds cardinal neighbours of l
func (g *Grid) Neighbors(l geom.Loc) []geom.Loc {
	out := make([]geom.Loc, 0, 4)
	for _, d := range geom.Dirs() {
		n := l.Add(d.Delta())
		if g.IsValidPosition(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, tiles: make([][]Tile, g.width)}
	for x := range g.tiles {
		c.tiles[x] = append([]Tile(nil), g.tiles[x]...)
	}
	return c
}
