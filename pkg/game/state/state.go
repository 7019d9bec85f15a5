// Package state holds the level a generator builds: its tiles, plans,
// named rooms and placed objects.
package state

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/game/entities"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gridplan"
	"roomweaver/pkg/mapgen/spawn"
)

// Terrain of a level
var (
	Wall  = world.NewTile(0)
	Floor = world.NewTile(1)
	Water = world.NewTile(2)
)

// Room is the display information of a floor plan room
type Room struct {
	Name string
	Type string
}

// Placed is an object and where it lies
type Placed struct {
	Loc    geom.Loc
	Object entities.Spawnable
}

// Map is the generation context and the finished level
type Map struct {
	Level int

	rand     rng.Random
	Grid     *world.Grid
	plan     *floorplan.FloorPlan
	gridPlan *gridplan.GridPlan

	// Rooms is indexed like the floor plan's rooms once named
	Rooms []Room

	objects  map[geom.Loc]entities.Spawnable
	occupied mapset.Set[geom.Loc]
}

var _ spawn.Context[entities.Spawnable] = (*Map)(nil)
var _ gridplan.Context = (*Map)(nil)

// NewMap returns an empty level context
func NewMap(level int) *Map {
	return &Map{
		Level:    level,
		rand:     rng.New(0),
		objects:  map[geom.Loc]entities.Spawnable{},
		occupied: mapset.New[geom.Loc](),
	}
}

func (m *Map) Rand() rng.Random {
	return m.rand
}

func (m *Map) InitSeed(seed uint64) {
	m.rand = rng.New(seed)
}

// Seed returns the seed the level was generated from
func (m *Map) Seed() uint64 {
	return m.rand.FirstSeed()
}

func (m *Map) Width() int {
	if m.Grid == nil {
		return 0
	}
	return m.Grid.Width()
}

func (m *Map) Height() int {
	if m.Grid == nil {
		return 0
	}
	return m.Grid.Height()
}

func (m *Map) GetTile(l geom.Loc) world.Tile {
	if m.Grid == nil {
		return Wall
	}
	return m.Grid.Get(l)
}

func (m *Map) SetTile(l geom.Loc, t world.Tile) bool {
	return m.Grid != nil && m.Grid.Set(l, t)
}

// TileBlocked is true for everything but floor
func (m *Map) TileBlocked(l geom.Loc) bool {
	return !m.GetTile(l).Equivalent(Floor)
}

func (m *Map) RoomTerrain() world.Tile { return Floor }
func (m *Map) WallTerrain() world.Tile { return Wall }

// CreateNew replaces the tiles with a wall-filled grid and drops every
// placed object
func (m *Map) CreateNew(width, height int) error {
	g, err := world.NewGrid(width, height, Wall)
	if err != nil {
		return err
	}
	m.Grid = g
	m.objects = map[geom.Loc]entities.Spawnable{}
	m.occupied = mapset.New[geom.Loc]()
	return nil
}

func (m *Map) RoomPlan() *floorplan.FloorPlan  { return m.plan }
func (m *Map) InitPlan(p *floorplan.FloorPlan) { m.plan = p }
func (m *Map) GridPlan() *gridplan.GridPlan    { return m.gridPlan }
func (m *Map) InitGrid(g *gridplan.GridPlan)   { m.gridPlan = g }

// GetFreeTiles lists the floor tiles of r that hold nothing, row by row
func (m *Map) GetFreeTiles(r geom.Rect) []geom.Loc {
	var out []geom.Loc
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			l := geom.Loc{X: x, Y: y}
			if m.CanPlaceItem(l) {
				out = append(out, l)
			}
		}
	}
	return out
}

func (m *Map) CanPlaceItem(l geom.Loc) bool {
	return m.Grid != nil && m.Grid.IsValidPosition(l) && !m.TileBlocked(l) && !m.occupied.Has(l)
}

func (m *Map) PlaceItem(l geom.Loc, obj entities.Spawnable) error {
	if !m.CanPlaceItem(l) {
		return fmt.Errorf("cannot place %s at %v", obj.Name(), l)
	}
	m.objects[l] = obj
	m.occupied.Put(l)
	return nil
}

// ObjectAt returns what lies on l, or nil
func (m *Map) ObjectAt(l geom.Loc) entities.Spawnable {
	return m.objects[l]
}

// Objects lists every placed object ordered by row then column
func (m *Map) Objects() []Placed {
	out := make([]Placed, 0, len(m.objects))
	for l, o := range m.objects {
		out = append(out, Placed{Loc: l, Object: o})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Loc, out[j].Loc
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// Find returns the location of the first object, in row order, that
// matches pred
func (m *Map) Find(pred func(entities.Spawnable) bool) (geom.Loc, bool) {
	for _, p := range m.Objects() {
		if pred(p.Object) {
			return p.Loc, true
		}
	}
	return geom.Loc{}, false
}

// Entrance returns the location of the up stairs
func (m *Map) Entrance() (geom.Loc, bool) {
	return m.Find(func(o entities.Spawnable) bool {
		_, ok := o.(entities.StairsUp)
		return ok
	})
}

// Exit returns the location of the down stairs
func (m *Map) Exit() (geom.Loc, bool) {
	return m.Find(func(o entities.Spawnable) bool {
		_, ok := o.(entities.StairsDown)
		return ok
	})
}

// RoomAt returns the floor plan room whose rectangle holds l
func (m *Map) RoomAt(l geom.Loc) (floorplan.RoomHallIndex, bool) {
	if m.plan == nil {
		return floorplan.RoomHallIndex{}, false
	}
	for _, idx := range m.plan.AllIndices() {
		if m.plan.GetRoomHall(idx).Bounds().Contains(l) {
			return idx, true
		}
	}
	return floorplan.RoomHallIndex{}, false
}

// RoomName returns the display name of a room or hall
func (m *Map) RoomName(idx floorplan.RoomHallIndex) string {
	if idx.IsHall {
		return "Corridor"
	}
	if idx.Index < len(m.Rooms) {
		return m.Rooms[idx.Index].Name
	}
	return idx.String()
}
