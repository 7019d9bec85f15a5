package connect

import (
	"fmt"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

// ConnectBranchStep adds connectors until the floor plan is one component.
// Each round prefers connectors leaving the nodes outside the component of
// the first node and falls back to every node.
type ConnectBranchStep[T floorplan.Context] struct {
	// HallGen is the template for new halls. Defaults to a plain hall.
	HallGen *roomgen.Shape `json:"hall_gen,omitempty"`
}

// joiningExpansions is GetPossibleExpansions limited to proposals that join
// two components
func joiningExpansions(plan *floorplan.FloorPlan, cands []floorplan.RoomHallIndex, comps *floorplan.ComponentSet) *pick.SpawnList[Proposal] {
	return expansions(plan, cands, func(p Proposal) bool {
		return !comps.Same(p.From, p.To)
	}, areaWeight)
}

func (s ConnectBranchStep[T]) Apply(ctx T) error {
	plan := ctx.RoomPlan()
	if plan == nil {
		return fmt.Errorf("no floor plan to connect")
	}
	template := s.HallGen.Or(defaultHall())

	all := plan.AllIndices()
	if len(all) == 0 {
		return nil
	}
	comps := plan.ComponentSet()
	ref := all[0]

	for comps.Count() > 1 {
		var frontier []floorplan.RoomHallIndex
		for _, idx := range plan.AllIndices() {
			if !comps.Same(idx, ref) {
				frontier = append(frontier, idx)
			}
		}

		options := joiningExpansions(plan, frontier, comps)
		if options.Count() == 0 {
			options = joiningExpansions(plan, plan.AllIndices(), comps)
		}
		if options.Count() == 0 {
			return fmt.Errorf("%d components remain: %w", comps.Count(), ErrNotConnectable)
		}

		p, err := options.Pick(ctx.Rand())
		if err != nil {
			return err
		}
		before := comps.Count()
		idx, err := Materialize(plan, p, template, ctx.Rand())
		if err != nil {
			return fmt.Errorf("connect %v: %w", p, err)
		}
		comps.Union(p.From, idx)
		comps.Union(idx, p.To)
		gen.DebugProgress("connected %v", p)

		if comps.Count() >= before {
			return fmt.Errorf("connecting %v did not merge components: %w", p, ErrNotConnectable)
		}
	}
	return nil
}
