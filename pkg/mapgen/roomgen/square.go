package roomgen

import (
	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/gen"
)

// Square is a solid rectangular room
type Square struct {
	Base
	Width  pick.RandRange `json:"width"`
	Height pick.RandRange `json:"height"`
}

// NewSquare creates a room sized within the given ranges
func NewSquare(width, height pick.RandRange) *Square {
	return &Square{Width: width, Height: height}
}

func (s *Square) ProposeSize(r rng.Random) geom.Loc {
	return geom.Loc{X: s.Width.Roll(r), Y: s.Height.Roll(r)}
}

func (s *Square) PrepareFulfillableBorders(rng.Random) {
	s.fulfillAllBorders()
}

func (s *Square) DrawOnMap(ctx gen.TiledContext) error {
	s.DrawMapDefault(ctx)
	return nil
}

func (s *Square) Copy() RoomGen {
	return NewSquare(s.Width, s.Height)
}

// Hall is a corridor. It fills whatever rectangle it is given; Width is the
// thickness it proposes when it may choose.
type Hall struct {
	Base
	Width pick.RandRange `json:"width"`
}

// NewHall creates a hall proposing a thickness within width
func NewHall(width pick.RandRange) *Hall {
	return &Hall{Width: width}
}

func (h *Hall) ProposeSize(r rng.Random) geom.Loc {
	w := max(h.Width.Roll(r), 1)
	return geom.Loc{X: w, Y: w}
}

func (h *Hall) PrepareFulfillableBorders(rng.Random) {
	h.fulfillAllBorders()
}

func (h *Hall) DrawOnMap(ctx gen.TiledContext) error {
	h.DrawMapDefault(ctx)
	return nil
}

func (h *Hall) Copy() RoomGen {
	return NewHall(h.Width)
}
