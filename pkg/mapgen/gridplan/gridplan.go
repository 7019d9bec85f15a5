// Package gridplan lays rooms out on a coarse grid of cells before they are
// placed on a floor plan. A room may claim several contiguous cells; halls
// sit in the slots between neighbouring cells.
package gridplan

import (
	"errors"
	"fmt"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/connect"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

var (
	ErrInvalidSize  = errors.New("invalid grid size")
	ErrCellOccupied = errors.New("grid cell occupied")
)

// GridRoomPlan is one room of the grid and the cells it covers
type GridRoomPlan struct {
	Bounds  geom.Rect
	RoomGen roomgen.RoomGen
}

// GridHallPlan is a slot between two cells. A nil RoomGen means no hall.
type GridHallPlan struct {
	RoomGen roomgen.RoomGen
}

// GridPlan holds the cell grid. rooms[x][y] is a room id or -1;
// vHalls[x][y] joins (x,y) and (x,y+1); hHalls[x][y] joins (x,y) and (x+1,y).
type GridPlan struct {
	cellW, cellH, wall int
	rooms              [][]int
	vHalls             [][]GridHallPlan
	hHalls             [][]GridHallPlan
	arrayRooms         []*GridRoomPlan
}

// New returns an initialized grid plan
func New(cellsX, cellsY, cellW, cellH, wall int) (*GridPlan, error) {
	g := &GridPlan{}
	if err := g.InitSize(cellsX, cellsY, cellW, cellH, wall); err != nil {
		return nil, err
	}
	return g, nil
}

// InitSize clears the plan and allocates cellsX by cellsY cells of
// cellW by cellH tiles separated by wall tiles
func (g *GridPlan) InitSize(cellsX, cellsY, cellW, cellH, wall int) error {
	if cellsX < 1 || cellsY < 1 {
		return fmt.Errorf("%dx%d cells: %w", cellsX, cellsY, ErrInvalidSize)
	}
	if cellW < 1 || cellH < 1 {
		return fmt.Errorf("cell size %dx%d: %w", cellW, cellH, ErrInvalidSize)
	}
	if wall < 0 {
		return fmt.Errorf("wall %d: %w", wall, ErrInvalidSize)
	}
	g.cellW, g.cellH, g.wall = cellW, cellH, wall
	g.rooms = make([][]int, cellsX)
	g.vHalls = make([][]GridHallPlan, cellsX)
	g.hHalls = make([][]GridHallPlan, cellsX-1)
	for x := 0; x < cellsX; x++ {
		g.rooms[x] = make([]int, cellsY)
		for y := range g.rooms[x] {
			g.rooms[x][y] = -1
		}
		g.vHalls[x] = make([]GridHallPlan, cellsY-1)
		if x < cellsX-1 {
			g.hHalls[x] = make([]GridHallPlan, cellsY)
		}
	}
	g.arrayRooms = nil
	return nil
}

func (g *GridPlan) GridWidth() int {
	return len(g.rooms)
}

func (g *GridPlan) GridHeight() int {
	if len(g.rooms) == 0 {
		return 0
	}
	return len(g.rooms[0])
}

func (g *GridPlan) CellWidth() int  { return g.cellW }
func (g *GridPlan) CellHeight() int { return g.cellH }
func (g *GridPlan) CellWall() int   { return g.wall }

// Size is the tile size of the whole grid
func (g *GridPlan) Size() geom.Loc {
	return geom.Loc{
		X: g.GridWidth()*(g.cellW+g.wall) - g.wall,
		Y: g.GridHeight()*(g.cellH+g.wall) - g.wall,
	}
}

// CellRect converts a rectangle of cells to the tiles it covers
func (g *GridPlan) CellRect(cells geom.Rect) geom.Rect {
	return geom.Rect{
		X:      cells.X * (g.cellW + g.wall),
		Y:      cells.Y * (g.cellH + g.wall),
		Width:  cells.Width*(g.cellW+g.wall) - g.wall,
		Height: cells.Height*(g.cellH+g.wall) - g.wall,
	}
}

func (g *GridPlan) inGrid(l geom.Loc) bool {
	return l.X >= 0 && l.Y >= 0 && l.X < g.GridWidth() && l.Y < g.GridHeight()
}

func (g *GridPlan) RoomCount() int {
	return len(g.arrayRooms)
}

// GetRoomPlan returns the room with id i, or nil
func (g *GridPlan) GetRoomPlan(i int) *GridRoomPlan {
	if i < 0 || i >= len(g.arrayRooms) {
		return nil
	}
	return g.arrayRooms[i]
}

// GetRoomIndex returns the id of the room at cell l, or -1
func (g *GridPlan) GetRoomIndex(l geom.Loc) int {
	if !g.inGrid(l) {
		return -1
	}
	return g.rooms[l.X][l.Y]
}

// AddRoom claims every cell in bounds for a new room and returns its id
func (g *GridPlan) AddRoom(bounds geom.Rect, rg roomgen.RoomGen) (int, error) {
	if bounds.Empty() || !g.inGrid(bounds.Start()) || !g.inGrid(bounds.End().Sub(geom.Loc{X: 1, Y: 1})) {
		return -1, fmt.Errorf("room cells %v: %w", bounds, ErrInvalidSize)
	}
	if err := g.checkFree(bounds, -1); err != nil {
		return -1, err
	}
	id := len(g.arrayRooms)
	g.arrayRooms = append(g.arrayRooms, &GridRoomPlan{Bounds: bounds, RoomGen: rg})
	g.fillCells(bounds, id)
	return id, nil
}

// AssignCell extends room id to cover l. The room's bounds grow to the
// union with l and every newly covered cell must be free.
func (g *GridPlan) AssignCell(l geom.Loc, id int) error {
	plan := g.GetRoomPlan(id)
	if plan == nil {
		return fmt.Errorf("room %d: %w", id, floorplan.ErrNoSuchNode)
	}
	if !g.inGrid(l) {
		return fmt.Errorf("cell %v: %w", l, ErrInvalidSize)
	}
	grown := plan.Bounds.IncludeLoc(l)
	if err := g.checkFree(grown, id); err != nil {
		return err
	}
	plan.Bounds = grown
	g.fillCells(grown, id)
	return nil
}

func (g *GridPlan) checkFree(cells geom.Rect, owner int) error {
	for x := cells.X; x < cells.Right(); x++ {
		for y := cells.Y; y < cells.Bottom(); y++ {
			if cur := g.rooms[x][y]; cur != -1 && cur != owner {
				return fmt.Errorf("cell %d,%d held by room %d: %w", x, y, cur, ErrCellOccupied)
			}
		}
	}
	return nil
}

func (g *GridPlan) fillCells(cells geom.Rect, id int) {
	for x := cells.X; x < cells.Right(); x++ {
		for y := cells.Y; y < cells.Bottom(); y++ {
			g.rooms[x][y] = id
		}
	}
}

func (g *GridPlan) hallSlot(l geom.Loc, d geom.Dir4) *GridHallPlan {
	if !g.inGrid(l) || !g.inGrid(l.Add(d.Delta())) {
		return nil
	}
	switch d {
	case geom.Down:
		return &g.vHalls[l.X][l.Y]
	case geom.Up:
		return &g.vHalls[l.X][l.Y-1]
	case geom.Right:
		return &g.hHalls[l.X][l.Y]
	case geom.Left:
		return &g.hHalls[l.X-1][l.Y]
	}
	return nil
}

// SetHall sets the hall leaving cell l in direction d. A nil rg clears it.
func (g *GridPlan) SetHall(l geom.Loc, d geom.Dir4, rg roomgen.RoomGen) error {
	slot := g.hallSlot(l, d)
	if slot == nil {
		return fmt.Errorf("hall %v %v: %w", l, d, ErrInvalidSize)
	}
	slot.RoomGen = rg
	return nil
}

// GetHall returns the hall leaving cell l in direction d, or nil
func (g *GridPlan) GetHall(l geom.Loc, d geom.Dir4) roomgen.RoomGen {
	slot := g.hallSlot(l, d)
	if slot == nil {
		return nil
	}
	return slot.RoomGen
}

// PlaceRoomsOnFloor draws every grid room at a random spot inside its
// cells and turns each hall slot between two different rooms into a floor
// hall. Rooms that end up touching are joined directly; slots whose rooms
// do not face each other are left for the connection pass.
func (g *GridPlan) PlaceRoomsOnFloor(r rng.Random, floor *floorplan.FloorPlan) error {
	floor.InitSize(g.Size())
	placed := make([]floorplan.RoomHallIndex, len(g.arrayRooms))
	for i, plan := range g.arrayRooms {
		cell := g.CellRect(plan.Bounds)
		size := plan.RoomGen.ProposeSize(r)
		size.X = min(max(size.X, 1), cell.Width)
		size.Y = min(max(size.Y, 1), cell.Height)
		at := geom.Loc{
			X: cell.X + r.Intn(cell.Width-size.X+1),
			Y: cell.Y + r.Intn(cell.Height-size.Y+1),
		}
		roomgen.Prepare(plan.RoomGen, r, geom.NewRect(at, size))
		idx, err := floor.AddRoom(plan.RoomGen)
		if err != nil {
			return fmt.Errorf("grid room %d: %w", i, err)
		}
		placed[i] = idx
	}

	for x := 0; x < g.GridWidth(); x++ {
		for y := 0; y < g.GridHeight(); y++ {
			for _, d := range []geom.Dir4{geom.Down, geom.Right} {
				if err := g.placeHall(r, floor, placed, geom.Loc{X: x, Y: y}, d); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *GridPlan) placeHall(r rng.Random, floor *floorplan.FloorPlan, placed []floorplan.RoomHallIndex, l geom.Loc, d geom.Dir4) error {
	template := g.GetHall(l, d)
	if template == nil {
		return nil
	}
	a, b := g.GetRoomIndex(l), g.GetRoomIndex(l.Add(d.Delta()))
	if a == -1 || b == -1 || a == b {
		return nil
	}
	from, to := floor.GetRoomHall(placed[a]), floor.GetRoomHall(placed[b])
	if floor.IsAdjacent(placed[a], placed[b]) {
		return nil
	}

	perp := d.Axis().Orth()
	flo, fhi := from.Bounds().Span(perp)
	tlo, thi := to.Bounds().Span(perp)
	lo, hi := max(flo, tlo), min(fhi, thi)
	if lo >= hi {
		gen.DebugProgress("grid hall %v %v: rooms do not face", l, d)
		return nil
	}
	g0, g1 := from.Bounds().Side(d), to.Bounds().Side(d.Opposite())
	if g1 == g0 {
		return floor.Connect(placed[a], placed[b])
	}
	rect := geom.FromSpans(d.Axis(), g0, g1, lo, hi)
	if !connect.HasBorderOpening(from.RoomGen, rect, d) || !connect.HasBorderOpening(to.RoomGen, rect, d.Opposite()) {
		gen.DebugProgress("grid hall %v %v: no opening", l, d)
		return nil
	}

	hall := template.Copy()
	roomgen.Prepare(hall, r, rect)
	if _, err := floor.AddHall(hall, placed[a], placed[b]); err != nil {
		if errors.Is(err, floorplan.ErrCollision) {
			gen.DebugProgress("grid hall %v %v: %v", l, d, err)
			return nil
		}
		return fmt.Errorf("grid hall %v %v: %w", l, d, err)
	}
	return nil
}
