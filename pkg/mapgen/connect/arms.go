package connect

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

// BranchArms lists the dead-end chains of the plan: each starts at a node
// with one neighbour and follows nodes with two neighbours until it reaches
// a junction or revisits a node
func BranchArms(plan *floorplan.FloorPlan) [][]floorplan.RoomHallIndex {
	var arms [][]floorplan.RoomHallIndex
	inArm := mapset.New[floorplan.RoomHallIndex]()
	for _, idx := range plan.AllIndices() {
		if plan.Degree(idx) != 1 || inArm.Has(idx) {
			continue
		}
		arm := []floorplan.RoomHallIndex{idx}
		inArm.Put(idx)
		prev, cur := idx, plan.GetRoomHall(idx).Adjacents[0]
		for plan.Degree(cur) == 2 && !inArm.Has(cur) {
			arm = append(arm, cur)
			inArm.Put(cur)
			next := plan.GetRoomHall(cur).Adjacents[0]
			if next == prev {
				next = plan.GetRoomHall(cur).Adjacents[1]
			}
			prev, cur = cur, next
		}
		arms = append(arms, arm)
	}
	return arms
}

// ArmExpansions proposes connectors from an arm to nodes outside it,
// weighted by the current path length between the ends so that longer
// loops are favoured
func ArmExpansions(plan *floorplan.FloorPlan, arm []floorplan.RoomHallIndex) *pick.SpawnList[Proposal] {
	members := mapset.New[floorplan.RoomHallIndex]()
	for _, idx := range arm {
		members.Put(idx)
	}
	return expansions(plan, arm, func(p Proposal) bool {
		return !members.Has(p.To)
	}, func(p Proposal) int {
		return plan.Distances(p.From)[p.To]
	})
}

// ConnectArmsStep adds loops: ConnectPercent of the dead-end arms get one
// extra connector to the rest of the floor
type ConnectArmsStep[T floorplan.Context] struct {
	ConnectPercent int            `json:"connect_percent"`
	HallGen        *roomgen.Shape `json:"hall_gen,omitempty"`
}

func (s ConnectArmsStep[T]) Apply(ctx T) error {
	plan := ctx.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan to connect")
	}
	if s.ConnectPercent < 0 || s.ConnectPercent > 100 {
		return fmt.Errorf("connect percent %d not in [0,100]: %w", s.ConnectPercent, pick.ErrOutOfRange)
	}
	template := s.HallGen.Or(defaultHall())

	arms := BranchArms(plan)
	left := len(arms) * s.ConnectPercent / 100
	for left > 0 && len(arms) > 0 {
		i := ctx.Rand().Intn(len(arms))
		arm := arms[i]
		arms = append(arms[:i], arms[i+1:]...)

		options := ArmExpansions(plan, arm)
		if options.Count() == 0 {
			continue
		}
		p, err := options.Pick(ctx.Rand())
		if err != nil {
			return err
		}
		if _, err := Materialize(plan, p, template, ctx.Rand()); err != nil {
			return fmt.Errorf("connect %v: %w", p, err)
		}
		gen.DebugProgress("looped %v", p)
		left--
	}
	return nil
}
