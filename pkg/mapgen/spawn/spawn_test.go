package spawn

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gentest"
	"roomweaver/pkg/mapgen/roomgen"
)

type item struct {
	name string
}

func (i *item) Copy() *item {
	c := *i
	return &c
}

type spawnContext struct {
	*gentest.Map
	plan   *floorplan.FloorPlan
	placed map[geom.Loc]*item
}

func (c *spawnContext) RoomPlan() *floorplan.FloorPlan  { return c.plan }
func (c *spawnContext) InitPlan(p *floorplan.FloorPlan) { c.plan = p }

func (c *spawnContext) GetFreeTiles(r geom.Rect) []geom.Loc {
	var out []geom.Loc
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			l := geom.Loc{X: x, Y: y}
			if c.CanPlaceItem(l) {
				out = append(out, l)
			}
		}
	}
	return out
}

func (c *spawnContext) CanPlaceItem(l geom.Loc) bool {
	return c.Grid.IsValidPosition(l) && !c.TileBlocked(l) && c.placed[l] == nil
}

func (c *spawnContext) PlaceItem(l geom.Loc, it *item) error {
	if !c.CanPlaceItem(l) {
		return fmt.Errorf("cannot place %s at %v", it.name, l)
	}
	c.placed[l] = it
	return nil
}

// newSpawnContext lays out rooms and halls on a wall map and carves them
func newSpawnContext(t *testing.T, w, h int, rooms, halls []geom.Rect) *spawnContext {
	t.Helper()
	ctx := &spawnContext{Map: gentest.New(w, h), plan: floorplan.New(geom.Loc{X: w, Y: h}), placed: map[geom.Loc]*item{}}
	add := func(r geom.Rect, hall bool) {
		g := roomgen.NewSquare(pick.Range(1, 2), pick.Range(1, 2))
		roomgen.Prepare(g, rng.New(0), r)
		var err error
		if hall {
			_, err = ctx.plan.AddHall(g)
		} else {
			_, err = ctx.plan.AddRoom(g)
		}
		require.NoError(t, err)
		ctx.Grid.Fill(r, gentest.Floor)
	}
	for _, r := range rooms {
		add(r, false)
	}
	for _, r := range halls {
		add(r, true)
	}
	return ctx
}

func rect(x, y, w, h int) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

func items(n int) []*item {
	out := make([]*item, n)
	for i := range out {
		out[i] = &item{name: fmt.Sprintf("item%d", i)}
	}
	return out
}

func roomList(plan *floorplan.FloorPlan) *pick.SpawnList[floorplan.RoomHallIndex] {
	l := pick.NewSpawnList[floorplan.RoomHallIndex]()
	for i := 0; i < plan.RoomCount(); i++ {
		_ = l.Add(floorplan.Room(i), 10)
	}
	return l
}

func roomOf(plan *floorplan.FloorPlan, l geom.Loc) int {
	for i := 0; i < plan.RoomCount(); i++ {
		if plan.GetRoom(i).Bounds().Contains(l) {
			return i
		}
	}
	return -1
}

type countingPicker struct {
	rolls int
	items []*item
}

func (c *countingPicker) Roll(rng.Random) ([]*item, error) {
	c.rolls++
	return c.items, nil
}

func (c *countingPicker) CanPick() bool      { return true }
func (c *countingPicker) ChangesState() bool { return true }

func (c *countingPicker) CopyState() pick.MultiPicker[*item] {
	cp := *c
	return &cp
}

func TestPickerSpawnerCopies(t *testing.T) {
	src := items(2)
	sp := PickerSpawner[*spawnContext, *item]{Picker: pick.PresetMultiRand[*item]{Items: src}}
	got, err := sp.GetSpawns(newSpawnContext(t, 3, 3, nil, nil))
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range got {
		assert.Equal(t, src[i].name, got[i].name)
		assert.NotSame(t, src[i], got[i])
	}
}

func TestPickerSpawnerLeavesStatefulPickerAlone(t *testing.T) {
	picker := &countingPicker{items: items(1)}
	sp := PickerSpawner[*spawnContext, *item]{Picker: picker}
	got, err := sp.GetSpawns(newSpawnContext(t, 3, 3, nil, nil))
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Zero(t, picker.rolls)
}

func TestPickerSpawnerEmpty(t *testing.T) {
	got, err := PickerSpawner[*spawnContext, *item]{}.GetSpawns(newSpawnContext(t, 3, 3, nil, nil))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSpawnRandInCandRoomsDropsFullRooms(t *testing.T) {
	ctx := newSpawnContext(t, 5, 3, []geom.Rect{rect(1, 1, 1, 1), rect(3, 1, 1, 1)}, nil)
	left, err := RoomSpawnStep[*spawnContext, *item]{}.SpawnRandInCandRooms(ctx, roomList(ctx.plan), items(3), 50)
	require.NoError(t, err)
	assert.Len(t, left, 1)
	assert.Equal(t, "item0", left[0].name, "spawns are consumed from the end")
	assert.Len(t, ctx.placed, 2)
}

func TestSpawnRandInCandRoomsZeroPercent(t *testing.T) {
	ctx := newSpawnContext(t, 7, 4, []geom.Rect{rect(1, 1, 2, 2), rect(4, 1, 2, 2)}, nil)
	left, err := RoomSpawnStep[*spawnContext, *item]{}.SpawnRandInCandRooms(ctx, roomList(ctx.plan), items(4), 0)
	require.NoError(t, err)
	assert.Len(t, left, 2)

	perRoom := map[int]int{}
	for l := range ctx.placed {
		perRoom[roomOf(ctx.plan, l)]++
	}
	assert.Equal(t, map[int]int{0: 1, 1: 1}, perRoom)
}

func TestSpawnRandInCandRoomsDecay(t *testing.T) {
	ctx := newSpawnContext(t, 5, 5, []geom.Rect{rect(1, 1, 3, 3)}, nil)
	rooms := roomList(ctx.plan)
	left, err := RoomSpawnStep[*spawnContext, *item]{}.SpawnRandInCandRooms(ctx, rooms, items(3), 50)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Len(t, ctx.placed, 3)
	assert.Equal(t, 1, rooms.Weight(floorplan.Room(0)), "10 -> 5 -> 2 -> 1")
}

func TestSpawnInRoomUnknown(t *testing.T) {
	ctx := newSpawnContext(t, 3, 3, nil, nil)
	_, err := RoomSpawnStep[*spawnContext, *item]{}.SpawnInRoom(ctx, floorplan.Room(4), &item{})
	assert.True(t, errors.Is(err, floorplan.ErrNoSuchNode))
}

func TestRandomRoomSpawnStepHalls(t *testing.T) {
	build := func() *spawnContext {
		return newSpawnContext(t, 3, 7, []geom.Rect{rect(1, 1, 1, 1), rect(1, 5, 1, 1)}, []geom.Rect{rect(1, 2, 1, 3)})
	}
	spawner := PickerSpawner[*spawnContext, *item]{Picker: pick.PresetMultiRand[*item]{Items: items(5)}}

	ctx := build()
	step := RandomRoomSpawnStep[*spawnContext, *item]{SuccessPercent: 100}
	step.Spawn = spawner
	require.NoError(t, step.Apply(ctx))
	assert.Len(t, ctx.placed, 2)

	ctx = build()
	step.IncludeHalls = true
	require.NoError(t, step.Apply(ctx))
	assert.Len(t, ctx.placed, 5)
}

func TestRandomRoomSpawnStepNoSpawner(t *testing.T) {
	ctx := newSpawnContext(t, 3, 3, []geom.Rect{rect(1, 1, 1, 1)}, nil)
	require.NoError(t, RandomRoomSpawnStep[*spawnContext, *item]{}.Apply(ctx))
	assert.Empty(t, ctx.placed)
}

func chainContext(t *testing.T) *spawnContext {
	ctx := newSpawnContext(t, 4, 12,
		[]geom.Rect{rect(1, 1, 2, 2), rect(1, 5, 2, 2), rect(1, 9, 2, 2)},
		[]geom.Rect{rect(1, 3, 2, 2), rect(1, 7, 2, 2)})
	require.NoError(t, ctx.plan.Connect(floorplan.Room(0), floorplan.Hall(0)))
	require.NoError(t, ctx.plan.Connect(floorplan.Hall(0), floorplan.Room(1)))
	require.NoError(t, ctx.plan.Connect(floorplan.Room(1), floorplan.Hall(1)))
	require.NoError(t, ctx.plan.Connect(floorplan.Hall(1), floorplan.Room(2)))
	return ctx
}

func TestFloorStairsStepExitIsFarthest(t *testing.T) {
	up, down := &item{name: "up"}, &item{name: "down"}
	step := FloorStairsStep[*spawnContext, *item]{Entrance: up, Exit: down}
	for seed := uint64(0); seed < 10; seed++ {
		ctx := chainContext(t)
		ctx.InitSeed(seed)
		require.NoError(t, step.Apply(ctx))
		require.Len(t, ctx.placed, 2)

		entrance, exit := -1, -1
		for l, it := range ctx.placed {
			assert.NotSame(t, up, it)
			assert.NotSame(t, down, it)
			switch it.name {
			case "up":
				entrance = roomOf(ctx.plan, l)
			case "down":
				exit = roomOf(ctx.plan, l)
			}
		}
		require.NotEqual(t, -1, entrance)
		require.NotEqual(t, -1, exit)

		dist := ctx.plan.Distances(floorplan.Room(entrance))
		farthest := 0
		for i := 0; i < ctx.plan.RoomCount(); i++ {
			farthest = max(farthest, dist[floorplan.Room(i)])
		}
		assert.Equal(t, farthest, dist[floorplan.Room(exit)], "seed %d", seed)
	}
}

func TestFloorStairsStepSingleRoom(t *testing.T) {
	ctx := newSpawnContext(t, 4, 4, []geom.Rect{rect(1, 1, 2, 2)}, nil)
	step := FloorStairsStep[*spawnContext, *item]{Entrance: &item{name: "up"}, Exit: &item{name: "down"}}
	require.NoError(t, step.Apply(ctx))
	assert.Len(t, ctx.placed, 2)
}

func TestFloorStairsStepNoRoom(t *testing.T) {
	ctx := newSpawnContext(t, 4, 4, nil, nil)
	step := FloorStairsStep[*spawnContext, *item]{Entrance: &item{name: "up"}, Exit: &item{name: "down"}}
	assert.True(t, errors.Is(step.Apply(ctx), ErrNoRoom))

	ctx = newSpawnContext(t, 4, 4, []geom.Rect{rect(1, 1, 1, 1)}, nil)
	assert.True(t, errors.Is(step.Apply(ctx), ErrNoRoom), "no tile left for the exit")
}
