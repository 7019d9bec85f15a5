package spawn

import (
	"fmt"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
)

const roomSpawnRate = 10

// RoomSpawnStep holds what every room-based spawn step shares
type RoomSpawnStep[T Context[S], S any] struct {
	Spawn Spawner[T, S] `json:"-"`
}

// SpawnRandInCandRooms places spawns from the end of the list into rooms
// picked from rooms until either runs out. A room that takes a spawn has
// its rate scaled by successPercent, or is dropped when successPercent is
// zero or less; a room with no free tile is dropped. Returns the spawns
// that found no room.
func (s RoomSpawnStep[T, S]) SpawnRandInCandRooms(ctx T, rooms *pick.SpawnList[floorplan.RoomHallIndex], spawns []S, successPercent int) ([]S, error) {
	for rooms.Count() > 0 && len(spawns) > 0 {
		idx, err := rooms.Pick(ctx.Rand())
		if err != nil {
			return spawns, err
		}
		ok, err := s.SpawnInRoom(ctx, idx, spawns[len(spawns)-1])
		if err != nil {
			return spawns, err
		}
		if !ok {
			rooms.Remove(idx)
			continue
		}
		gen.DebugProgress("placed object in %v", idx)
		spawns = spawns[:len(spawns)-1]
		if successPercent <= 0 {
			rooms.Remove(idx)
			continue
		}
		if err := rooms.Set(idx, max(1, rooms.Weight(idx)*successPercent/100)); err != nil {
			return spawns, err
		}
	}
	return spawns, nil
}

// SpawnInRoom places spawn on a random free tile of the room. It reports
// false when the room has no free tile.
func (s RoomSpawnStep[T, S]) SpawnInRoom(ctx T, idx floorplan.RoomHallIndex, spawn S) (bool, error) {
	room := ctx.RoomPlan().GetRoomHall(idx)
	if room == nil {
		return false, fmt.Errorf("%v: %w", idx, floorplan.ErrNoSuchNode)
	}
	free := ctx.GetFreeTiles(room.RoomGen.Draw())
	if len(free) == 0 {
		return false, nil
	}
	l := free[ctx.Rand().Intn(len(free))]
	if err := ctx.PlaceItem(l, spawn); err != nil {
		return false, fmt.Errorf("place at %v: %w", l, err)
	}
	return true, nil
}

func (s RoomSpawnStep[T, S]) spawns(ctx T) ([]S, error) {
	if s.Spawn == nil {
		return nil, nil
	}
	return s.Spawn.GetSpawns(ctx)
}

// RandomRoomSpawnStep scatters the spawner's output over the rooms, and
// the halls too when IncludeHalls is set, with equal starting rates
type RandomRoomSpawnStep[T Context[S], S any] struct {
	RoomSpawnStep[T, S]
	IncludeHalls   bool `json:"include_halls"`
	SuccessPercent int  `json:"success_percent"`
}

func (s RandomRoomSpawnStep[T, S]) Apply(ctx T) error {
	plan := ctx.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan to spawn in")
	}
	spawns, err := s.spawns(ctx)
	if err != nil {
		return err
	}
	rooms := pick.NewSpawnList[floorplan.RoomHallIndex]()
	for i := 0; i < plan.RoomCount(); i++ {
		_ = rooms.Add(floorplan.Room(i), roomSpawnRate)
	}
	if s.IncludeHalls {
		for i := 0; i < plan.HallCount(); i++ {
			_ = rooms.Add(floorplan.Hall(i), roomSpawnRate)
		}
	}
	left, err := s.SpawnRandInCandRooms(ctx, rooms, spawns, s.SuccessPercent)
	if err != nil {
		return err
	}
	if len(left) > 0 {
		gen.DebugProgress("%d spawns found no room", len(left))
	}
	return nil
}
