// Package roomgen provides the room shapes placed on a floor plan. Every
// shape reports which border cells can host a connection, accepts opening
// requests from its neighbours and draws itself onto a tiled context.
package roomgen

import (
	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/gen"
)

// RoomGen is a room or hall shape. Implementations embed Base, which holds
// the drawn rectangle and the per-direction border state.
type RoomGen interface {
	// ProposeSize returns the size the shape would like to be drawn at
	ProposeSize(r rng.Random) geom.Loc
	// PrepareFulfillableBorders marks the border cells that can host a
	// connection. Called once the draw rectangle is final.
	PrepareFulfillableBorders(r rng.Random)
	// DrawOnMap writes the shape and its requested openings to the context
	DrawOnMap(ctx gen.TiledContext) error
	// Copy returns an unprepared shape with the same parameters
	Copy() RoomGen

	InitDraw(rect geom.Rect)
	Draw() geom.Rect
	SetLoc(l geom.Loc)
	BorderLength(d geom.Dir4) int
	GetFulfillableBorder(d geom.Dir4, i int) bool
	GetOpenedBorder(d geom.Dir4, i int) bool
	IsRequested(d geom.Dir4, i int) bool
	RequestOpening(d geom.Dir4, lo, hi int)
}

// Prepare fixes the shape to rect and computes its fulfillable borders
func Prepare(g RoomGen, r rng.Random, rect geom.Rect) {
	g.InitDraw(rect)
	g.PrepareFulfillableBorders(r)
}

// Base holds the state shared by all shapes
type Base struct {
	draw        geom.Rect
	fulfillable [4][]bool
	requested   [4][]bool
	opened      [4][]bool
}

// InitDraw sets the draw rectangle and resets all border state
func (b *Base) InitDraw(rect geom.Rect) {
	b.draw = rect
	for _, d := range geom.Dirs() {
		n := b.BorderLength(d)
		b.fulfillable[d] = make([]bool, n)
		b.requested[d] = make([]bool, n)
		b.opened[d] = make([]bool, n)
	}
}

// Draw returns the rectangle the shape occupies
func (b *Base) Draw() geom.Rect {
	return b.draw
}

// SetLoc moves the shape, keeping its size and border state
func (b *Base) SetLoc(l geom.Loc) {
	b.draw.X, b.draw.Y = l.X, l.Y
}

// BorderLength is the number of cells on the side facing d
func (b *Base) BorderLength(d geom.Dir4) int {
	if d.Axis() == geom.Vertical {
		return b.draw.Width
	}
	return b.draw.Height
}

func inRange(cells []bool, i int) bool {
	return i >= 0 && i < len(cells) && cells[i]
}

// GetFulfillableBorder reports whether the i-th cell of side d can be opened
func (b *Base) GetFulfillableBorder(d geom.Dir4, i int) bool {
	return d.IsValid() && inRange(b.fulfillable[d], i)
}

// GetOpenedBorder reports whether the i-th cell of side d was opened by drawing
func (b *Base) GetOpenedBorder(d geom.Dir4, i int) bool {
	return d.IsValid() && inRange(b.opened[d], i)
}

// IsRequested reports whether a neighbour asked for the i-th cell of side d
func (b *Base) IsRequested(d geom.Dir4, i int) bool {
	return d.IsValid() && inRange(b.requested[d], i)
}

// RequestOpening asks for the cells of side d whose coordinates along that
// side lie in [lo,hi). Coordinates are absolute and clipped to the side.
func (b *Base) RequestOpening(d geom.Dir4, lo, hi int) {
	if !d.IsValid() {
		return
	}
	start, _ := b.draw.Span(d.Axis().Orth())
	cells := b.requested[d]
	for i := max(lo-start, 0); i < min(hi-start, len(cells)); i++ {
		cells[i] = true
	}
}

// setFulfillable marks cells [lo,hi) of side d, given as offsets
func (b *Base) setFulfillable(d geom.Dir4, lo, hi int) {
	cells := b.fulfillable[d]
	for i := max(lo, 0); i < min(hi, len(cells)); i++ {
		cells[i] = true
	}
}

func (b *Base) fulfillAllBorders() {
	for _, d := range geom.Dirs() {
		b.setFulfillable(d, 0, b.BorderLength(d))
	}
}

// borderLoc is the tile of the i-th cell on side d
func (b *Base) borderLoc(d geom.Dir4, i int) geom.Loc {
	switch d {
	case geom.Up:
		return geom.Loc{X: b.draw.X + i, Y: b.draw.Y}
	case geom.Down:
		return geom.Loc{X: b.draw.X + i, Y: b.draw.Bottom() - 1}
	case geom.Left:
		return geom.Loc{X: b.draw.X, Y: b.draw.Y + i}
	default:
		return geom.Loc{X: b.draw.Right() - 1, Y: b.draw.Y + i}
	}
}

// DrawMapDefault fills the rectangle with room terrain
func (b *Base) DrawMapDefault(ctx gen.TiledContext) {
	for x := b.draw.X; x < b.draw.Right(); x++ {
		for y := b.draw.Y; y < b.draw.Bottom(); y++ {
			ctx.SetTile(geom.Loc{X: x, Y: y}, ctx.RoomTerrain())
		}
	}
	b.SetRoomBorders(ctx)
}

// FulfillRoomBorders digs from every requested border cell inward until it
// reaches open floor. Without fulfillAll only fulfillable cells are dug; a
// run of requested cells with none fulfillable still gets its middle cell.
func (b *Base) FulfillRoomBorders(ctx gen.TiledContext, fulfillAll bool) {
	for _, d := range geom.Dirs() {
		req := b.requested[d]
		for i := 0; i < len(req); {
			if !req[i] {
				i++
				continue
			}
			j := i
			for j < len(req) && req[j] {
				j++
			}
			dug := false
			for k := i; k < j; k++ {
				if fulfillAll || b.fulfillable[d][k] {
					b.dig(ctx, d, k)
					dug = true
				}
			}
			if !dug {
				b.dig(ctx, d, (i+j-1)/2)
			}
			i = j
		}
	}
}

func (b *Base) dig(ctx gen.TiledContext, d geom.Dir4, i int) {
	inward := d.Opposite().Delta()
	for l := b.borderLoc(d, i); b.draw.Contains(l); l = l.Add(inward) {
		if !ctx.TileBlocked(l) {
			return
		}
		ctx.SetTile(l, ctx.RoomTerrain())
	}
}

// SetRoomBorders records which requested border cells ended up open
func (b *Base) SetRoomBorders(ctx gen.TiledContext) {
	for _, d := range geom.Dirs() {
		for i := range b.opened[d] {
			b.opened[d][i] = b.requested[d][i] && !ctx.TileBlocked(b.borderLoc(d, i))
		}
	}
}
