package floorplan

import (
	"fmt"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/mapgen/gen"
)

// Context is a tiled context that holds a floor plan
type Context interface {
	gen.TiledContext
	RoomPlan() *FloorPlan
	InitPlan(p *FloorPlan)
}

// DrawFloorToTileStep creates the tile map for the plan, surrounded by
// Padding tiles of wall, and draws the plan onto it
type DrawFloorToTileStep[T Context] struct {
	Padding int `json:"padding"`
}

func (s DrawFloorToTileStep[T]) Apply(ctx T) error {
	plan := ctx.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan to draw")
	}
	if s.Padding < 0 {
		return fmt.Errorf("negative padding %d", s.Padding)
	}
	size := plan.DrawRect()
	if err := ctx.CreateNew(size.Width+2*s.Padding, size.Height+2*s.Padding); err != nil {
		return err
	}
	for x := 0; x < ctx.Width(); x++ {
		for y := 0; y < ctx.Height(); y++ {
			ctx.SetTile(geom.Loc{X: x, Y: y}, ctx.WallTerrain())
		}
	}
	plan.MoveStart(geom.Loc{X: s.Padding, Y: s.Padding})
	gen.DebugProgress("moved floor")
	return plan.DrawOnMap(ctx)
}
