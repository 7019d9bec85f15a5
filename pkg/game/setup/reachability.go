// Package setup checks that a generated level is playable.
package setup

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/game/state"
)

// ReachableFloor returns every tile reachable from start by cardinal steps
// over unblocked tiles. Start itself must be unblocked.
func ReachableFloor(m *state.Map, start geom.Loc) mapset.Set[geom.Loc] {
	reachable := mapset.New[geom.Loc]()
	if m.Grid == nil || !m.Grid.IsValidPosition(start) || m.TileBlocked(start) {
		return reachable
	}

	q := queue.New[geom.Loc]()
	q.Enqueue(start)
	reachable.Put(start)
	for !q.Empty() {
		current := q.Dequeue()
		for _, n := range m.Grid.Neighbors(current) {
			if reachable.Has(n) || m.TileBlocked(n) {
				continue
			}
			reachable.Put(n)
			q.Enqueue(n)
		}
	}
	return reachable
}

// UnreachableFloor lists the floor tiles not in reachable, row by row
func UnreachableFloor(m *state.Map, reachable mapset.Set[geom.Loc]) []geom.Loc {
	var out []geom.Loc
	if m.Grid == nil {
		return out
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			l := geom.Loc{X: x, Y: y}
			if !m.TileBlocked(l) && !reachable.Has(l) {
				out = append(out, l)
			}
		}
	}
	return out
}
