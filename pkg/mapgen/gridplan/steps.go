package gridplan

import (
	"fmt"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

// Context is a floor plan context that also carries a grid plan
type Context interface {
	floorplan.Context
	GridPlan() *GridPlan
	InitGrid(g *GridPlan)
}

// InitGridPlanStep gives the context an empty grid plan
type InitGridPlanStep[T Context] struct {
	CellX      int `json:"cell_x"`
	CellY      int `json:"cell_y"`
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
	CellWall   int `json:"cell_wall"`
}

func (s InitGridPlanStep[T]) Apply(ctx T) error {
	g, err := New(s.CellX, s.CellY, s.CellWidth, s.CellHeight, s.CellWall)
	if err != nil {
		return err
	}
	ctx.InitGrid(g)
	return nil
}

func checkPercent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s %d not in [0,100]: %w", name, v, pick.ErrOutOfRange)
	}
	return nil
}

func cellLocs(g *GridPlan) []geom.Loc {
	locs := make([]geom.Loc, 0, g.GridWidth()*g.GridHeight())
	for x := 0; x < g.GridWidth(); x++ {
		for y := 0; y < g.GridHeight(); y++ {
			locs = append(locs, geom.Loc{X: x, Y: y})
		}
	}
	return locs
}

// GridRandomRoomsStep puts rooms in RoomRatio percent of the cells, chosen
// at random. Each new room grows into a free neighbouring cell with
// ExpandPercent chance. Shapes are picked from Rooms, or are squares that
// fill about the cell when Rooms is empty.
type GridRandomRoomsStep[T Context] struct {
	RoomRatio     int             `json:"room_ratio"`
	ExpandPercent int             `json:"expand_percent"`
	Rooms         roomgen.Choices `json:"rooms,omitempty"`
}

func (s GridRandomRoomsStep[T]) Apply(ctx T) error {
	g := ctx.GridPlan()
	if g == nil {
		return fmt.Errorf("no grid plan")
	}
	if err := checkPercent("room ratio", s.RoomRatio); err != nil {
		return err
	}
	if err := checkPercent("expand percent", s.ExpandPercent); err != nil {
		return err
	}
	rooms := defaultRooms(g)
	if len(s.Rooms) > 0 {
		var err error
		if rooms, err = s.Rooms.SpawnList(); err != nil {
			return fmt.Errorf("rooms: %w", err)
		}
	}

	r := ctx.Rand()
	locs := cellLocs(g)
	rng.Shuffle(r, len(locs), func(i, j int) { locs[i], locs[j] = locs[j], locs[i] })
	want := 0
	if s.RoomRatio > 0 {
		want = max(1, len(locs)*s.RoomRatio/100)
	}

	placed := 0
	for _, l := range locs {
		if placed >= want {
			break
		}
		if g.GetRoomIndex(l) != -1 {
			continue
		}
		rg, err := rooms.Pick(r)
		if err != nil {
			return err
		}
		id, err := g.AddRoom(geom.Rect{X: l.X, Y: l.Y, Width: 1, Height: 1}, rg.Copy())
		if err != nil {
			return err
		}
		placed++
		if r.Intn(100) >= s.ExpandPercent {
			continue
		}
		n := l.Add(geom.Dirs()[r.Intn(4)].Delta())
		if g.inGrid(n) && g.GetRoomIndex(n) == -1 {
			// the union may cover a cell already taken; that just leaves the room small
			if err := g.AssignCell(n, id); err == nil {
				gen.DebugProgress("grid room %d grew to %v", id, g.GetRoomPlan(id).Bounds)
			}
		}
	}
	return nil
}

func defaultRooms(g *GridPlan) *pick.SpawnList[roomgen.RoomGen] {
	list := pick.NewSpawnList[roomgen.RoomGen]()
	sq := roomgen.NewSquare(
		pick.Range(max(1, g.CellWidth()/2), g.CellWidth()+1),
		pick.Range(max(1, g.CellHeight()/2), g.CellHeight()+1))
	_ = list.Add(sq, 1)
	return list
}

// GridRandomHallsStep adds a hall between each pair of neighbouring cells
// of different rooms with HallPercent chance
type GridRandomHallsStep[T Context] struct {
	HallPercent int             `json:"hall_percent"`
	Halls       roomgen.Choices `json:"halls,omitempty"`
}

func (s GridRandomHallsStep[T]) Apply(ctx T) error {
	g := ctx.GridPlan()
	if g == nil {
		return fmt.Errorf("no grid plan")
	}
	if err := checkPercent("hall percent", s.HallPercent); err != nil {
		return err
	}
	halls, err := roomgen.Choices{roomgen.Weighted(roomgen.NewHall(pick.Range(1, 2)), 1)}.SpawnList()
	if len(s.Halls) > 0 {
		halls, err = s.Halls.SpawnList()
	}
	if err != nil {
		return fmt.Errorf("halls: %w", err)
	}

	r := ctx.Rand()
	for _, l := range cellLocs(g) {
		for _, d := range []geom.Dir4{geom.Down, geom.Right} {
			a, b := g.GetRoomIndex(l), g.GetRoomIndex(l.Add(d.Delta()))
			if a == -1 || b == -1 || a == b {
				continue
			}
			if r.Intn(100) >= s.HallPercent {
				continue
			}
			h, err := halls.Pick(r)
			if err != nil {
				return err
			}
			if err := g.SetHall(l, d, h.Copy()); err != nil {
				return err
			}
		}
	}
	return nil
}

// DrawGridToFloorStep replaces the context's floor plan with the grid's
// rooms and halls placed in tile space
type DrawGridToFloorStep[T Context] struct{}

func (s DrawGridToFloorStep[T]) Apply(ctx T) error {
	g := ctx.GridPlan()
	if g == nil {
		return fmt.Errorf("no grid plan to draw")
	}
	floor := floorplan.New(g.Size())
	if err := g.PlaceRoomsOnFloor(ctx.Rand(), floor); err != nil {
		return err
	}
	ctx.InitPlan(floor)
	gen.DebugProgress("placed %d rooms and %d halls from grid", floor.RoomCount(), floor.HallCount())
	return nil
}
