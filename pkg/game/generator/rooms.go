package generator

import (
	"errors"
	"fmt"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/game/deck"
	"roomweaver/pkg/game/entities"
	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/spawn"
)

var errUnnamed = errors.New("rooms have not been named")

// NameRoomsStep gives every floor plan room a type and a display name.
// Types suited to the level's deck are drawn more often.
type NameRoomsStep struct{}

func (NameRoomsStep) Apply(m *state.Map) error {
	plan := m.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan to name")
	}
	types, err := deck.RoomWeights(m.Level)
	if err != nil {
		return err
	}
	r := m.Rand()
	m.Rooms = make([]state.Room, plan.RoomCount())
	for i := range m.Rooms {
		adjective := entities.RoomAdjectives[r.Intn(len(entities.RoomAdjectives))]
		base, err := types.Pick(r)
		if err != nil {
			return err
		}
		m.Rooms[i] = state.Room{Name: fmt.Sprintf("%s %s", adjective, base), Type: base}
	}
	return nil
}

// FurnishRoomsStep puts one piece of furniture suited to its type in
// Percent of the rooms
type FurnishRoomsStep struct {
	Percent int `json:"percent"`
}

func (s FurnishRoomsStep) Apply(m *state.Map) error {
	if s.Percent < 0 || s.Percent > 100 {
		return fmt.Errorf("furnish percent %d not in [0,100]: %w", s.Percent, pick.ErrOutOfRange)
	}
	plan := m.RoomPlan()
	if plan == nil || len(m.Rooms) != plan.RoomCount() {
		return errUnnamed
	}
	r := m.Rand()
	place := spawn.RoomSpawnStep[*state.Map, entities.Spawnable]{}
	for i, room := range m.Rooms {
		templates := entities.FurnitureFor(room.Type)
		if len(templates) == 0 || r.Intn(100) >= s.Percent {
			continue
		}
		tpl := templates[r.Intn(len(templates))]
		if _, err := place.SpawnInRoom(m, floorplan.Room(i), tpl.New()); err != nil {
			return err
		}
	}
	return nil
}

// ScatterItemsStep drops Amount items drawn evenly from Items over the
// rooms, halls included when IncludeHalls is set
type ScatterItemsStep struct {
	Amount         pick.RandRange   `json:"amount"`
	Items          []*entities.Item `json:"items,omitempty"`
	IncludeHalls   bool             `json:"include_halls"`
	SuccessPercent int              `json:"success_percent"`
}

func (s ScatterItemsStep) Apply(m *state.Map) error {
	items := s.Items
	if len(items) == 0 {
		items = entities.DefaultItems
	}
	list := pick.NewSpawnList[entities.Spawnable]()
	for _, it := range items {
		if err := list.Add(it, 1); err != nil {
			return err
		}
	}

	step := spawn.RandomRoomSpawnStep[*state.Map, entities.Spawnable]{
		IncludeHalls:   s.IncludeHalls,
		SuccessPercent: s.SuccessPercent,
	}
	step.Spawn = spawn.PickerSpawner[*state.Map, entities.Spawnable]{
		Picker: pick.LoopedRand[entities.Spawnable]{Spawner: list, Amount: s.Amount},
	}
	return step.Apply(m)
}
