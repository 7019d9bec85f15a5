// Package floorplan provides the room and hall graph laid out on a floor,
// before it is drawn onto tiles.
package floorplan

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/queue"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

var (
	// ErrOutOfBounds is returned for shapes placed outside the floor
	ErrOutOfBounds = errors.New("outside the floor")
	// ErrCollision is returned for shapes overlapping an existing one
	ErrCollision = errors.New("overlaps an existing room or hall")
	// ErrNoSuchNode is returned for indices that name no room or hall
	ErrNoSuchNode = errors.New("no such room or hall")
)

// RoomHallIndex identifies a room or a hall on a floor plan
type RoomHallIndex struct {
	Index  int
	IsHall bool
}

// Room returns the index of the i-th room
func Room(i int) RoomHallIndex {
	return RoomHallIndex{Index: i}
}

// Hall returns the index of the i-th hall
func Hall(i int) RoomHallIndex {
	return RoomHallIndex{Index: i, IsHall: true}
}

// Less orders rooms before halls, then by index
func (r RoomHallIndex) Less(o RoomHallIndex) bool {
	if r.IsHall != o.IsHall {
		return !r.IsHall
	}
	return r.Index < o.Index
}

func (r RoomHallIndex) String() string {
	if r.IsHall {
		return fmt.Sprintf("H%d", r.Index)
	}
	return fmt.Sprintf("R%d", r.Index)
}

// FloorRoomPlan is one node of the plan: a prepared shape and its neighbours
type FloorRoomPlan struct {
	RoomGen   roomgen.RoomGen
	Adjacents []RoomHallIndex
}

// Bounds is the rectangle the node occupies
func (f *FloorRoomPlan) Bounds() geom.Rect {
	return f.RoomGen.Draw()
}

func (f *FloorRoomPlan) hasAdjacent(idx RoomHallIndex) bool {
	for _, a := range f.Adjacents {
		if a == idx {
			return true
		}
	}
	return false
}

// FloorPlan is an undirected graph of rooms and halls. Indices are stable:
// nodes are only ever appended and edges only ever added.
type FloorPlan struct {
	start geom.Loc
	size  geom.Loc
	rooms []*FloorRoomPlan
	halls []*FloorRoomPlan
}

// New creates an empty plan of the given size
func New(size geom.Loc) *FloorPlan {
	p := &FloorPlan{}
	p.InitSize(size)
	return p
}

// InitSize clears the plan and sets its size
func (p *FloorPlan) InitSize(size geom.Loc) {
	p.start = geom.Loc{}
	p.size = size
	p.rooms = nil
	p.halls = nil
}

// Size returns the plan's width and height
func (p *FloorPlan) Size() geom.Loc {
	return p.size
}

// DrawRect is the area rooms and halls must lie within
func (p *FloorPlan) DrawRect() geom.Rect {
	return geom.NewRect(p.start, p.size)
}

// RoomCount returns the number of rooms
func (p *FloorPlan) RoomCount() int {
	return len(p.rooms)
}

// HallCount returns the number of halls
func (p *FloorPlan) HallCount() int {
	return len(p.halls)
}

// GetRoom returns the i-th room, or nil
func (p *FloorPlan) GetRoom(i int) *FloorRoomPlan {
	return p.GetRoomHall(Room(i))
}

// GetHall returns the i-th hall, or nil
func (p *FloorPlan) GetHall(i int) *FloorRoomPlan {
	return p.GetRoomHall(Hall(i))
}

// GetRoomHall returns the node at idx, or nil if there is none
func (p *FloorPlan) GetRoomHall(idx RoomHallIndex) *FloorRoomPlan {
	list := p.rooms
	if idx.IsHall {
		list = p.halls
	}
	if idx.Index < 0 || idx.Index >= len(list) {
		return nil
	}
	return list[idx.Index]
}

// AllIndices lists every room then every hall
func (p *FloorPlan) AllIndices() []RoomHallIndex {
	out := make([]RoomHallIndex, 0, len(p.rooms)+len(p.halls))
	for i := range p.rooms {
		out = append(out, Room(i))
	}
	for i := range p.halls {
		out = append(out, Hall(i))
	}
	return out
}

// AddRoom appends a prepared room connected to the given nodes
func (p *FloorPlan) AddRoom(g roomgen.RoomGen, adjacents ...RoomHallIndex) (RoomHallIndex, error) {
	return p.add(false, g, adjacents)
}

// AddHall appends a prepared hall connected to the given nodes
func (p *FloorPlan) AddHall(g roomgen.RoomGen, adjacents ...RoomHallIndex) (RoomHallIndex, error) {
	return p.add(true, g, adjacents)
}

func (p *FloorPlan) add(hall bool, g roomgen.RoomGen, adjacents []RoomHallIndex) (RoomHallIndex, error) {
	rect := g.Draw()
	if rect.Empty() || !p.DrawRect().ContainsRect(rect) {
		return RoomHallIndex{}, fmt.Errorf("%v in %v: %w", rect, p.DrawRect(), ErrOutOfBounds)
	}
	for _, idx := range p.AllIndices() {
		if p.GetRoomHall(idx).Bounds().Intersects(rect) {
			return RoomHallIndex{}, fmt.Errorf("%v and %v: %w", rect, idx, ErrCollision)
		}
	}
	for _, a := range adjacents {
		if p.GetRoomHall(a) == nil {
			return RoomHallIndex{}, fmt.Errorf("adjacent %v: %w", a, ErrNoSuchNode)
		}
	}

	node := &FloorRoomPlan{RoomGen: g}
	var idx RoomHallIndex
	if hall {
		idx = Hall(len(p.halls))
		p.halls = append(p.halls, node)
	} else {
		idx = Room(len(p.rooms))
		p.rooms = append(p.rooms, node)
	}
	for _, a := range adjacents {
		p.link(idx, a)
	}
	return idx, nil
}

// Connect adds an edge between two existing nodes
func (p *FloorPlan) Connect(a, b RoomHallIndex) error {
	if p.GetRoomHall(a) == nil {
		return fmt.Errorf("%v: %w", a, ErrNoSuchNode)
	}
	if p.GetRoomHall(b) == nil {
		return fmt.Errorf("%v: %w", b, ErrNoSuchNode)
	}
	if a == b {
		return fmt.Errorf("cannot connect %v to itself", a)
	}
	p.link(a, b)
	return nil
}

func (p *FloorPlan) link(a, b RoomHallIndex) {
	na, nb := p.GetRoomHall(a), p.GetRoomHall(b)
	if !na.hasAdjacent(b) {
		na.Adjacents = append(na.Adjacents, b)
	}
	if !nb.hasAdjacent(a) {
		nb.Adjacents = append(nb.Adjacents, a)
	}
}

// IsAdjacent reports whether an edge joins a and b
func (p *FloorPlan) IsAdjacent(a, b RoomHallIndex) bool {
	n := p.GetRoomHall(a)
	return n != nil && n.hasAdjacent(b)
}

// Degree returns the number of neighbours of idx
func (p *FloorPlan) Degree(idx RoomHallIndex) int {
	n := p.GetRoomHall(idx)
	if n == nil {
		return 0
	}
	return len(n.Adjacents)
}

// MoveStart shifts the plan and every shape so the plan starts at l
func (p *FloorPlan) MoveStart(l geom.Loc) {
	diff := l.Sub(p.start)
	p.start = l
	for _, idx := range p.AllIndices() {
		g := p.GetRoomHall(idx).RoomGen
		g.SetLoc(g.Draw().Start().Add(diff))
	}
}

// Distances returns the hop count from start to every node it reaches
func (p *FloorPlan) Distances(start RoomHallIndex) map[RoomHallIndex]int {
	dist := map[RoomHallIndex]int{}
	if p.GetRoomHall(start) == nil {
		return dist
	}
	dist[start] = 0
	q := queue.New[RoomHallIndex]()
	q.Enqueue(start)
	for !q.Empty() {
		cur := q.Dequeue()
		for _, n := range p.GetRoomHall(cur).Adjacents {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[cur] + 1
				q.Enqueue(n)
			}
		}
	}
	return dist
}

// SharedBorder finds the side of from that faces to and the extent along it
// they share. ok is false when the rectangles do not face each other.
func SharedBorder(from, to geom.Rect) (d geom.Dir4, lo, hi int, ok bool) {
	switch {
	case to.Y >= from.Bottom():
		d = geom.Down
	case to.Bottom() <= from.Y:
		d = geom.Up
	case to.X >= from.Right():
		d = geom.Right
	case to.Right() <= from.X:
		d = geom.Left
	default:
		return d, 0, 0, false
	}
	a := d.Axis().Orth()
	flo, fhi := from.Span(a)
	tlo, thi := to.Span(a)
	lo, hi = max(flo, tlo), min(fhi, thi)
	return d, lo, hi, lo < hi
}

// DrawOnMap requests an opening on both sides of every edge, then draws
// rooms followed by halls
func (p *FloorPlan) DrawOnMap(ctx gen.TiledContext) error {
	for _, idx := range p.AllIndices() {
		node := p.GetRoomHall(idx)
		for _, adj := range node.Adjacents {
			if !idx.Less(adj) {
				continue
			}
			other := p.GetRoomHall(adj)
			d, lo, hi, ok := SharedBorder(node.Bounds(), other.Bounds())
			if !ok {
				gen.DebugProgress("no shared border between %v and %v", idx, adj)
				continue
			}
			node.RoomGen.RequestOpening(d, lo, hi)
			other.RoomGen.RequestOpening(d.Opposite(), lo, hi)
		}
	}

	for _, idx := range p.AllIndices() {
		if err := p.GetRoomHall(idx).RoomGen.DrawOnMap(ctx); err != nil {
			return fmt.Errorf("draw %v: %w", idx, err)
		}
	}
	gen.DebugProgress("drew %d rooms and %d halls", len(p.rooms), len(p.halls))
	return nil
}
