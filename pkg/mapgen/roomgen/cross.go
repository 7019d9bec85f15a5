package roomgen

import (
	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/gen"
)

// Cross is a plus-shaped room: a full-width bar of minor height crossed by a
// full-height bar of minor width. Only the bar ends can be connected.
type Cross struct {
	Base
	MajorWidth  pick.RandRange `json:"major_width"`
	MajorHeight pick.RandRange `json:"major_height"`
	MinorWidth  pick.RandRange `json:"minor_width"`
	MinorHeight pick.RandRange `json:"minor_height"`

	minorWidth, minorHeight int
	offsetX, offsetY        int
}

// NewCross creates a cross room
func NewCross(majorWidth, majorHeight, minorWidth, minorHeight pick.RandRange) *Cross {
	return &Cross{
		MajorWidth:  majorWidth,
		MajorHeight: majorHeight,
		MinorWidth:  minorWidth,
		MinorHeight: minorHeight,
	}
}

func (c *Cross) ProposeSize(r rng.Random) geom.Loc {
	return geom.Loc{X: c.MajorWidth.Roll(r), Y: c.MajorHeight.Roll(r)}
}

func (c *Cross) PrepareFulfillableBorders(r rng.Random) {
	draw := c.Draw()
	c.minorWidth = min(draw.Width, max(c.MinorWidth.Roll(r), 1))
	c.minorHeight = min(draw.Height, max(c.MinorHeight.Roll(r), 1))
	c.offsetX = r.Intn(draw.Width - c.minorWidth + 1)
	c.offsetY = r.Intn(draw.Height - c.minorHeight + 1)

	c.setFulfillable(geom.Up, c.offsetX, c.offsetX+c.minorWidth)
	c.setFulfillable(geom.Down, c.offsetX, c.offsetX+c.minorWidth)
	c.setFulfillable(geom.Left, c.offsetY, c.offsetY+c.minorHeight)
	c.setFulfillable(geom.Right, c.offsetY, c.offsetY+c.minorHeight)
}

// Arms returns the horizontal and vertical bars in map coordinates
func (c *Cross) Arms() (horizontal, vertical geom.Rect) {
	draw := c.Draw()
	horizontal = geom.Rect{X: draw.X, Y: draw.Y + c.offsetY, Width: draw.Width, Height: c.minorHeight}
	vertical = geom.Rect{X: draw.X + c.offsetX, Y: draw.Y, Width: c.minorWidth, Height: draw.Height}
	return horizontal, vertical
}

func (c *Cross) DrawOnMap(ctx gen.TiledContext) error {
	h, v := c.Arms()
	for _, arm := range []geom.Rect{h, v} {
		for x := arm.X; x < arm.Right(); x++ {
			for y := arm.Y; y < arm.Bottom(); y++ {
				ctx.SetTile(geom.Loc{X: x, Y: y}, ctx.RoomTerrain())
			}
		}
	}
	c.SetRoomBorders(ctx)
	return nil
}

func (c *Cross) Copy() RoomGen {
	return NewCross(c.MajorWidth, c.MajorHeight, c.MinorWidth, c.MinorHeight)
}
