// Package tiles holds steps that work on the tile map after the floor plan
// has been drawn.
package tiles

import (
	"github.com/zyedidia/generic/queue"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/mapgen/gen"
)

// EraseIsolatedStep turns every Terrain tile that cannot be reached from
// room terrain back into wall. Terrain counts as passable while filling.
type EraseIsolatedStep[T gen.TiledContext] struct {
	Terrain world.Tile `json:"terrain"`
}

func (s EraseIsolatedStep[T]) Apply(ctx T) error {
	w, h := ctx.Width(), ctx.Height()
	reached := make([][]bool, w)
	for x := range reached {
		reached[x] = make([]bool, h)
	}
	passable := func(l geom.Loc) bool {
		return !ctx.TileBlocked(l) || ctx.GetTile(l).Equivalent(s.Terrain)
	}

	room := ctx.RoomTerrain()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			l := geom.Loc{X: x, Y: y}
			if reached[x][y] || !ctx.GetTile(l).Equivalent(room) {
				continue
			}
			q := queue.New[geom.Loc]()
			reached[x][y] = true
			q.Enqueue(l)
			for !q.Empty() {
				cur := q.Dequeue()
				for _, d := range geom.Dirs() {
					n := cur.Add(d.Delta())
					if !gen.InBounds(ctx, n) || reached[n.X][n.Y] || !passable(n) {
						continue
					}
					reached[n.X][n.Y] = true
					q.Enqueue(n)
				}
			}
		}
	}

	erased := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			l := geom.Loc{X: x, Y: y}
			if !reached[x][y] && ctx.GetTile(l).Equivalent(s.Terrain) {
				ctx.SetTile(l, ctx.WallTerrain())
				erased++
			}
		}
	}
	gen.DebugProgress("erased %d isolated %v tiles", erased, s.Terrain)
	return nil
}
