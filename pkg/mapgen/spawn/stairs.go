package spawn

import (
	"errors"
	"fmt"

	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/floorplan"
)

// ErrNoRoom is returned when a required object has nowhere to go
var ErrNoRoom = errors.New("no room with free tiles")

// FloorStairsStep puts a copy of Entrance in a random room and a copy of
// Exit in the room farthest from it by hops through the floor plan
type FloorStairsStep[T Context[S], S Spawnable[S]] struct {
	Entrance S `json:"-"`
	Exit     S `json:"-"`
}

func (s FloorStairsStep[T, S]) Apply(ctx T) error {
	plan := ctx.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan for stairs")
	}
	place := RoomSpawnStep[T, S]{}

	order := make([]int, plan.RoomCount())
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(ctx.Rand(), len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	entrance := -1
	for _, i := range order {
		ok, err := place.SpawnInRoom(ctx, floorplan.Room(i), s.Entrance.Copy())
		if err != nil {
			return err
		}
		if ok {
			entrance = i
			break
		}
	}
	if entrance == -1 {
		return fmt.Errorf("entrance: %w", ErrNoRoom)
	}

	dist := plan.Distances(floorplan.Room(entrance))
	tried := map[int]bool{}
	for len(tried) < plan.RoomCount() {
		far, best := -1, -1
		for i := 0; i < plan.RoomCount(); i++ {
			d, reached := dist[floorplan.Room(i)]
			if tried[i] || !reached {
				continue
			}
			if d > best {
				far, best = i, d
			}
		}
		if far == -1 {
			break
		}
		tried[far] = true
		ok, err := place.SpawnInRoom(ctx, floorplan.Room(far), s.Exit.Copy())
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("exit: %w", ErrNoRoom)
}
