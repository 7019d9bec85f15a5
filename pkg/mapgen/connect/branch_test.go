package connect

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gentest"
	"roomweaver/pkg/mapgen/roomgen"
)

func newContext(plan *floorplan.FloorPlan) *planContext {
	return &planContext{Map: gentest.New(0, 0), plan: plan}
}

func gridOfRooms(t *testing.T) *floorplan.FloorPlan {
	return newPlan(t, geom.Loc{X: 20, Y: 14}, []geom.Rect{
		rect(1, 1, 3, 3), rect(8, 1, 3, 3), rect(15, 1, 3, 3),
		rect(1, 9, 3, 3), rect(8, 9, 3, 3), rect(15, 9, 3, 3),
	}, nil)
}

func hallRects(p *floorplan.FloorPlan) []geom.Rect {
	var out []geom.Rect
	for i := 0; i < p.HallCount(); i++ {
		out = append(out, p.GetHall(i).Bounds())
	}
	return out
}

func TestConnectBranchStepJoinsEverything(t *testing.T) {
	p := gridOfRooms(t)
	require.Len(t, p.Components(), 6)

	ctx := newContext(p)
	ctx.InitSeed(7)
	require.NoError(t, ConnectBranchStep[*planContext]{}.Apply(ctx))

	assert.True(t, p.IsConnected())
	assert.Equal(t, 5, p.HallCount(), "a spanning tree over six rooms")
	for i := 0; i < p.HallCount(); i++ {
		assert.Equal(t, 2, p.Degree(floorplan.Hall(i)))
	}
}

func TestConnectBranchStepDeterministic(t *testing.T) {
	run := func() []geom.Rect {
		p := gridOfRooms(t)
		ctx := newContext(p)
		ctx.InitSeed(99)
		require.NoError(t, ConnectBranchStep[*planContext]{}.Apply(ctx))
		return hallRects(p)
	}
	assert.Equal(t, run(), run())
}

func TestConnectBranchStepTouchingRooms(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 10, Y: 10}, []geom.Rect{rect(0, 0, 2, 2), rect(2, 0, 2, 2)}, nil)
	require.NoError(t, ConnectBranchStep[*planContext]{}.Apply(newContext(p)))

	assert.Zero(t, p.HallCount())
	assert.True(t, p.IsAdjacent(r0, r1))
}

func TestConnectBranchStepAlreadyConnected(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 10, Y: 10}, []geom.Rect{rect(1, 1, 2, 2)}, nil)
	require.NoError(t, ConnectBranchStep[*planContext]{}.Apply(newContext(p)))
	assert.Zero(t, p.HallCount())

	empty := floorplan.New(geom.Loc{X: 4, Y: 4})
	assert.NoError(t, ConnectBranchStep[*planContext]{}.Apply(newContext(empty)))
}

func TestConnectBranchStepImpossible(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 10, Y: 10}, []geom.Rect{rect(0, 0, 2, 2), rect(5, 5, 2, 2)}, nil)
	err := ConnectBranchStep[*planContext]{}.Apply(newContext(p))
	assert.True(t, errors.Is(err, ErrNotConnectable))
}

func TestConnectBranchStepNoPlan(t *testing.T) {
	assert.Error(t, ConnectBranchStep[*planContext]{}.Apply(newContext(nil)))
}

func TestConnectBranchStepHallTemplate(t *testing.T) {
	p := newPlan(t, geom.Loc{X: 22, Y: 14}, []geom.Rect{rect(3, 3, 2, 2), rect(3, 9, 2, 2)}, nil)
	step := ConnectBranchStep[*planContext]{HallGen: &roomgen.Shape{RoomGen: square(rect(0, 0, 1, 1))}}
	require.NoError(t, step.Apply(newContext(p)))

	require.Equal(t, 1, p.HallCount())
	h := p.GetHall(0)
	assert.Equal(t, rect(3, 5, 2, 4), h.Bounds())
	assert.ElementsMatch(t, []floorplan.RoomHallIndex{r0, r1}, h.Adjacents)
	assert.NotSame(t, step.HallGen.RoomGen, h.RoomGen, "the template is copied")
}

// chain lays out four rooms in a ring missing its last side
func chain(t *testing.T) *floorplan.FloorPlan {
	return newPlan(t, geom.Loc{X: 14, Y: 14},
		[]geom.Rect{rect(1, 1, 3, 3), rect(8, 1, 3, 3), rect(1, 8, 3, 3), rect(8, 8, 3, 3)},
		[]geom.Rect{rect(4, 1, 4, 3), rect(8, 4, 3, 4), rect(4, 8, 4, 3)},
		[2]floorplan.RoomHallIndex{r0, h0}, [2]floorplan.RoomHallIndex{h0, r1},
		[2]floorplan.RoomHallIndex{r1, floorplan.Hall(1)}, [2]floorplan.RoomHallIndex{floorplan.Hall(1), r3},
		[2]floorplan.RoomHallIndex{r3, floorplan.Hall(2)}, [2]floorplan.RoomHallIndex{floorplan.Hall(2), r2})
}

func TestConnectArmsStepAddsLoop(t *testing.T) {
	p := chain(t)
	require.Len(t, BranchArms(p), 2)

	ctx := newContext(p)
	ctx.InitSeed(3)
	require.NoError(t, ConnectArmsStep[*planContext]{ConnectPercent: 100}.Apply(ctx))

	assert.GreaterOrEqual(t, p.HallCount(), 4)
	assert.True(t, p.IsConnected())
	assert.Empty(t, BranchArms(p), "the loop closes both arms")
}

func TestConnectArmsStepZeroPercent(t *testing.T) {
	p := chain(t)
	require.NoError(t, ConnectArmsStep[*planContext]{}.Apply(newContext(p)))
	assert.Equal(t, 3, p.HallCount())
}

func TestConnectArmsStepRejectsPercent(t *testing.T) {
	err := ConnectArmsStep[*planContext]{ConnectPercent: 101}.Apply(newContext(chain(t)))
	assert.True(t, errors.Is(err, pick.ErrOutOfRange))
}

func TestConnectStepsHallGenJSON(t *testing.T) {
	step := ConnectArmsStep[*planContext]{
		ConnectPercent: 50,
		HallGen:        &roomgen.Shape{RoomGen: roomgen.NewHall(pick.Range(1, 3))},
	}
	data, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t, `{"connect_percent":50,"hall_gen":{"type":"hall","params":{"width":{"min":1,"max":3}}}}`, string(data))

	var got ConnectArmsStep[*planContext]
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, step, got)

	data, err = json.Marshal(ConnectBranchStep[*planContext]{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
