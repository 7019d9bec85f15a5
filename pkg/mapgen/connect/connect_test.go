package connect

import (
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

type planContext struct {
	*gentest.Map
	plan *floorplan.FloorPlan
}

func (c *planContext) RoomPlan() *floorplan.FloorPlan  { return c.plan }
func (c *planContext) InitPlan(p *floorplan.FloorPlan) { c.plan = p }

func prepared(g roomgen.RoomGen, rect geom.Rect) roomgen.RoomGen {
	roomgen.Prepare(g, rng.New(0), rect)
	return g
}

func square(rect geom.Rect) roomgen.RoomGen {
	return prepared(roomgen.NewSquare(pick.Range(1, 2), pick.Range(1, 2)), rect)
}

// newPlan lays out square rooms and plain halls, then adds the edges
func newPlan(t *testing.T, size geom.Loc, rooms, halls []geom.Rect, edges ...[2]floorplan.RoomHallIndex) *floorplan.FloorPlan {
	t.Helper()
	p := floorplan.New(size)
	for _, r := range rooms {
		_, err := p.AddRoom(square(r))
		require.NoError(t, err)
	}
	for _, r := range halls {
		_, err := p.AddHall(prepared(roomgen.NewHall(pick.Range(1, 2)), r))
		require.NoError(t, err)
	}
	for _, e := range edges {
		require.NoError(t, p.Connect(e[0], e[1]))
	}
	return p
}

func rect(x, y, w, h int) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

var (
	r0 = floorplan.Room(0)
	r1 = floorplan.Room(1)
	r2 = floorplan.Room(2)
	r3 = floorplan.Room(3)
	r4 = floorplan.Room(4)
	r5 = floorplan.Room(5)
	r6 = floorplan.Room(6)
	h0 = floorplan.Hall(0)
)

func TestGetPossibleExpansionsSingle(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(3, 3, 2, 2), rect(3, 9, 2, 2)}, nil)

	options := GetPossibleExpansions(p, []floorplan.RoomHallIndex{r0, r1})
	require.Equal(t, 1, options.Count(), "both directions of a pair collapse into one proposal")
	got, err := options.GetSpawn(0)
	require.NoError(t, err)
	assert.Equal(t, Proposal{From: r0, To: r1, Connector: rect(3, 5, 2, 4)}, got)
	rate, err := options.GetSpawnRate(0)
	require.NoError(t, err)
	assert.Equal(t, 8, rate)
}

func TestGetPossibleExpansionsSkipsAdjacent(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(3, 3, 2, 2), rect(3, 9, 2, 2), rect(3, 5, 2, 4)}, nil,
		[2]floorplan.RoomHallIndex{r0, r2}, [2]floorplan.RoomHallIndex{r2, r1})
	assert.Zero(t, GetPossibleExpansions(p, p.AllIndices()).Count())
}

// loopPlan is one component shaped like a U, open between its arms
//
//	A F
//	B E
//	C-DG
func loopPlan(t *testing.T) *floorplan.FloorPlan {
	return newPlan(t, geom.Loc{X: 22, Y: 14},
		[]geom.Rect{
			rect(3, 1, 2, 2), rect(3, 3, 2, 2), rect(3, 5, 2, 3),
			rect(7, 5, 2, 3), rect(7, 3, 2, 2), rect(7, 1, 2, 2),
			rect(9, 6, 2, 2),
		},
		[]geom.Rect{rect(5, 6, 2, 2)},
		[2]floorplan.RoomHallIndex{r0, r1}, [2]floorplan.RoomHallIndex{r1, r2},
		[2]floorplan.RoomHallIndex{r2, h0}, [2]floorplan.RoomHallIndex{h0, r3},
		[2]floorplan.RoomHallIndex{r3, r4}, [2]floorplan.RoomHallIndex{r4, r5},
		[2]floorplan.RoomHallIndex{r3, r6})
}

func TestGetPossibleExpansionsWithinComponent(t *testing.T) {
	p := loopPlan(t)
	require.True(t, p.IsConnected())

	options := GetPossibleExpansions(p, []floorplan.RoomHallIndex{r0, r1, r2})
	require.Equal(t, 2, options.Count())
	want := []Proposal{
		{From: r0, To: r5, Connector: rect(5, 1, 2, 2)},
		{From: r1, To: r4, Connector: rect(5, 3, 2, 2)},
	}
	for i, w := range want {
		got, err := options.GetSpawn(i)
		require.NoError(t, err)
		assert.Equal(t, w, got)
		rate, err := options.GetSpawnRate(i)
		require.NoError(t, err)
		assert.Equal(t, 4, rate)
	}

	assert.Zero(t, joiningExpansions(p, p.AllIndices(), p.ComponentSet()).Count())
}

func TestGetPossibleExpansionsAll(t *testing.T) {
	//     A B
	//
	// C   D     E
	//     |
	// F   a-G   H
	//
	//     I J
	p := newPlan(t, geom.Loc{X: 22, Y: 14},
		[]geom.Rect{
			rect(5, 1, 1, 2), rect(7, 1, 2, 2),
			rect(1, 5, 2, 1), rect(5, 5, 2, 2), rect(11, 5, 2, 1),
			rect(1, 7, 2, 1), rect(7, 7, 2, 2), rect(11, 7, 2, 1),
			rect(5, 11, 1, 2), rect(7, 11, 1, 2),
		},
		[]geom.Rect{rect(5, 7, 2, 2)},
		[2]floorplan.RoomHallIndex{r3, h0}, [2]floorplan.RoomHallIndex{h0, r6})

	options := GetPossibleExpansions(p, []floorplan.RoomHallIndex{r3, h0, r6})
	assert.Equal(t, 8, options.Count())

	// G reaches B past D, which holds the connector one tile away
	found := false
	options.Each(func(prop Proposal, _ int) {
		if prop.From == r6 && prop.To == floorplan.Room(1) {
			found = true
			assert.Equal(t, rect(8, 3, 1, 4), prop.Connector)
		}
	})
	assert.True(t, found)
}

func TestGetRoomToConnectNone(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(3, 3, 2, 2)}, nil)
	for _, d := range geom.Dirs() {
		assert.Nil(t, GetRoomToConnect(p, r0, d))
	}
	assert.Nil(t, GetRoomToConnect(p, r5, geom.Down), "unknown source")
}

func TestGetRoomToConnectBlocked(t *testing.T) {
	cases := []struct {
		block geom.Loc
		dir   geom.Dir4
		want  geom.Rect
	}{
		{geom.Loc{X: 4, Y: 7}, geom.Down, rect(4, 6, 2, 1)},
		{geom.Loc{X: 4, Y: 9}, geom.Down, rect(4, 6, 2, 3)},
		{geom.Loc{X: 1, Y: 4}, geom.Left, rect(3, 4, 1, 2)},
		{geom.Loc{X: 4, Y: 1}, geom.Up, rect(4, 3, 2, 1)},
		{geom.Loc{X: 7, Y: 4}, geom.Right, rect(6, 4, 1, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(4, 4, 2, 2), geom.NewRect(tc.block, geom.Loc{X: 2, Y: 2})}, nil)
			got := GetRoomToConnect(p, r0, tc.dir)
			require.NotNil(t, got)
			assert.Equal(t, r0, got.From)
			assert.Equal(t, r1, got.To)
			assert.Equal(t, tc.want, got.Connector)
		})
	}
}

func TestGetRoomToConnectTouching(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(4, 4, 2, 2), rect(5, 6, 3, 2)}, nil)
	got := GetRoomToConnect(p, r0, geom.Down)
	require.NotNil(t, got)
	assert.Equal(t, rect(5, 6, 1, 0), got.Connector)
	assert.True(t, got.Connector.Empty())

	require.NoError(t, p.Connect(r0, r1))
	assert.Nil(t, GetRoomToConnect(p, r0, geom.Down), "already adjacent")
}

func TestGetRoomToConnectNearestWins(t *testing.T) {
	for _, asHall := range []bool{false, true} {
		rooms := []geom.Rect{rect(4, 4, 2, 2), rect(4, 10, 2, 2)}
		var halls []geom.Rect
		want := r2
		if asHall {
			halls = append(halls, rect(4, 7, 1, 2))
			want = h0
		} else {
			rooms = append(rooms, rect(4, 7, 1, 2))
		}
		p := newPlan(t, geom.Loc{X: 22, Y: 14}, rooms, halls)
		got := GetRoomToConnect(p, r0, geom.Down)
		require.NotNil(t, got)
		assert.Equal(t, r0, got.From)
		assert.Equal(t, want, got.To)
		assert.Equal(t, rect(4, 6, 1, 1), got.Connector)
	}
}

func TestGetRoomToConnectRetracted(t *testing.T) {
	cases := []struct {
		name        string
		left, right bool
		want        geom.Rect
	}{
		{"right blocker keeps clearance", false, true, rect(4, 6, 2, 4)},
		{"left blocker", true, false, rect(5, 6, 1, 4)},
		{"both", true, true, rect(5, 6, 1, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rooms := []geom.Rect{rect(4, 4, 3, 2), rect(4, 10, 2, 2)}
			if tc.left {
				rooms = append(rooms, rect(2, 7, 2, 2))
			}
			if tc.right {
				rooms = append(rooms, rect(7, 7, 2, 2))
			}
			p := newPlan(t, geom.Loc{X: 22, Y: 14}, rooms, nil)
			got := GetRoomToConnect(p, r0, geom.Down)
			require.NotNil(t, got)
			assert.Equal(t, r1, got.To)
			assert.Equal(t, tc.want, got.Connector)
		})
	}
}

func TestGetRoomToConnectTooMuchBlocked(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14},
		[]geom.Rect{rect(4, 4, 2, 2), rect(4, 10, 2, 2), rect(2, 7, 2, 2), rect(6, 7, 2, 2)}, nil)
	assert.Nil(t, GetRoomToConnect(p, r0, geom.Down))
}

func TestRetract(t *testing.T) {
	lo, hi := retract(4, 10, 2, 6)
	assert.Equal(t, [2]int{6, 10}, [2]int{lo, hi})
	lo, hi = retract(4, 10, 8, 12)
	assert.Equal(t, [2]int{4, 8}, [2]int{lo, hi})
	lo, hi = retract(0, 10, 2, 4)
	assert.Equal(t, [2]int{4, 10}, [2]int{lo, hi}, "inner blocker keeps the larger side")
	lo, hi = retract(0, 10, 6, 8)
	assert.Equal(t, [2]int{0, 6}, [2]int{lo, hi})
}

type maskGen struct {
	*roomgen.Square
	open map[int]bool
}

func (m maskGen) GetFulfillableBorder(d geom.Dir4, i int) bool {
	return m.open[i]
}

func TestHasBorderOpening(t *testing.T) {
	from := maskGen{
		Square: prepared(roomgen.NewSquare(pick.Range(6, 7), pick.Range(2, 3)), rect(0, 2, 6, 2)).(*roomgen.Square),
		open:   map[int]bool{0: true, 1: true, 4: true},
	}
	cases := map[int]bool{-2: false, -1: true, 0: true, 1: true, 2: false, 3: true, 4: true, 5: false, 6: false}
	for x, want := range cases {
		assert.Equal(t, want, HasBorderOpening(from, rect(x, 0, 2, 2), geom.Up), "x=%d", x)
	}
}

func TestGetRoomToConnectNeedsOpenings(t *testing.T) {
	p := floorplan.New(geom.Loc{X: 22, Y: 14})
	_, err := p.AddRoom(square(rect(4, 4, 2, 2)))
	require.NoError(t, err)
	closed := maskGen{
		Square: prepared(roomgen.NewSquare(pick.Range(2, 3), pick.Range(2, 3)), rect(4, 9, 2, 2)).(*roomgen.Square),
		open:   map[int]bool{},
	}
	_, err = p.AddRoom(closed)
	require.NoError(t, err)

	assert.Nil(t, GetRoomToConnect(p, r0, geom.Down))
	assert.Nil(t, GetRoomToConnect(p, r1, geom.Up))
}

func TestArmExpansionsWeighted(t *testing.T) {
	// A F
	// B E
	// C-DG
	p := newPlan(t, geom.Loc{X: 22, Y: 14},
		[]geom.Rect{
			rect(3, 1, 2, 2), rect(3, 3, 2, 2), rect(3, 5, 2, 3),
			rect(7, 5, 2, 3), rect(7, 3, 2, 2), rect(7, 1, 2, 2),
			rect(9, 6, 2, 2),
		},
		[]geom.Rect{rect(5, 6, 2, 2)},
		[2]floorplan.RoomHallIndex{r0, r1}, [2]floorplan.RoomHallIndex{r1, r2},
		[2]floorplan.RoomHallIndex{r2, h0}, [2]floorplan.RoomHallIndex{h0, r3},
		[2]floorplan.RoomHallIndex{r3, r4}, [2]floorplan.RoomHallIndex{r4, r5},
		[2]floorplan.RoomHallIndex{r3, r6})

	options := ArmExpansions(p, []floorplan.RoomHallIndex{r0, r1, r2})
	require.Equal(t, 2, options.Count())

	first, _ := options.GetSpawn(0)
	rate, _ := options.GetSpawnRate(0)
	assert.Equal(t, Proposal{From: r0, To: r5, Connector: rect(5, 1, 2, 2)}, first)
	assert.Equal(t, 6, rate)

	second, _ := options.GetSpawn(1)
	rate, _ = options.GetSpawnRate(1)
	assert.Equal(t, Proposal{From: r1, To: r4, Connector: rect(5, 3, 2, 2)}, second)
	assert.Equal(t, 4, rate)

	assert.Equal(t, [][]floorplan.RoomHallIndex{
		{r0, r1, r2, h0},
		{r5, r4},
		{r6},
	}, BranchArms(p))
}
