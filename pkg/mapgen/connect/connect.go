// Package connect joins the rooms and halls of a floor plan by proposing
// straight connectors between facing shapes and materializing them as halls.
package connect

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/roomgen"
)

// ErrNotConnectable is returned when components remain but no connector
// between them can be proposed
var ErrNotConnectable = errors.New("floor plan cannot be connected")

// Proposal is a candidate connection. A Connector with zero length along
// the connection axis means From and To already touch.
type Proposal struct {
	From, To  floorplan.RoomHallIndex
	Connector geom.Rect
}

func (p Proposal) String() string {
	return fmt.Sprintf("%v->%v %v", p.From, p.To, p.Connector)
}

// gap returns the extent along d's axis between src and r when r lies
// entirely beyond src in direction d
func gap(src, r geom.Rect, d geom.Dir4) (lo, hi int, ok bool) {
	if d == geom.Down || d == geom.Right {
		lo, hi = src.Side(d), r.Side(d.Opposite())
	} else {
		lo, hi = r.Side(d.Opposite()), src.Side(d)
	}
	return lo, hi, hi >= lo
}

func overlaps(lo, hi, olo, ohi int) bool {
	return lo < ohi && olo < hi
}

// retract shrinks [lo,hi) away from a blocker spanning [blo,bhi). A blocker
// strictly inside keeps the larger side.
func retract(lo, hi, blo, bhi int) (int, int) {
	switch {
	case blo <= lo:
		return max(lo, bhi), hi
	case bhi >= hi:
		return lo, min(hi, blo)
	case blo-lo >= hi-bhi:
		return lo, blo
	default:
		return bhi, hi
	}
}

// GetRoomToConnect looks from the node at from in direction d for the
// nearest room or hall whose extent across d overlaps from's. The connector
// covers the overlap of both extents and spans the gap between them; any
// other shape inside the gap that comes within one tile of the connector
// pushes it back from that side. Returns nil when nothing is found, the
// nearest shape is already adjacent, the connector is squeezed to nothing,
// or either end has no fulfillable border cell facing the connector.
func GetRoomToConnect(plan *floorplan.FloorPlan, from floorplan.RoomHallIndex, d geom.Dir4) *Proposal {
	src := plan.GetRoomHall(from)
	if src == nil || !d.IsValid() {
		return nil
	}
	srcRect := src.Bounds()
	perp := d.Axis().Orth()
	bandLo, bandHi := srcRect.Span(perp)

	var to floorplan.RoomHallIndex
	found, best := false, 0
	for _, idx := range plan.AllIndices() {
		if idx == from {
			continue
		}
		r := plan.GetRoomHall(idx).Bounds()
		lo, hi := r.Span(perp)
		if !overlaps(bandLo, bandHi, lo, hi) {
			continue
		}
		g0, g1, ok := gap(srcRect, r, d)
		if !ok {
			continue
		}
		if !found || g1-g0 < best {
			to, best, found = idx, g1-g0, true
		}
	}
	if !found || plan.IsAdjacent(from, to) {
		return nil
	}

	dst := plan.GetRoomHall(to)
	tlo, thi := dst.Bounds().Span(perp)
	lo, hi := max(bandLo, tlo), min(bandHi, thi)
	g0, g1, _ := gap(srcRect, dst.Bounds(), d)

	if g1 > g0 {
		for _, idx := range plan.AllIndices() {
			if idx == from || idx == to {
				continue
			}
			r := plan.GetRoomHall(idx).Bounds()
			alo, ahi := r.Span(d.Axis())
			if !overlaps(g0, g1, alo, ahi) {
				continue
			}
			rlo, rhi := r.Span(perp)
			if !overlaps(lo, hi, rlo-1, rhi+1) {
				continue
			}
			lo, hi = retract(lo, hi, rlo-1, rhi+1)
			if lo >= hi {
				return nil
			}
		}
	}

	conn := geom.FromSpans(d.Axis(), g0, g1, lo, hi)
	if !HasBorderOpening(src.RoomGen, conn, d) || !HasBorderOpening(dst.RoomGen, conn, d.Opposite()) {
		return nil
	}
	return &Proposal{From: from, To: to, Connector: conn}
}

// HasBorderOpening reports whether some cell on side d of g, within the
// projection of to onto that side, is fulfillable
func HasBorderOpening(g roomgen.RoomGen, to geom.Rect, d geom.Dir4) bool {
	perp := d.Axis().Orth()
	flo, fhi := g.Draw().Span(perp)
	tlo, thi := to.Span(perp)
	for i := max(flo, tlo); i < min(fhi, thi); i++ {
		if g.GetFulfillableBorder(d, i-flo) {
			return true
		}
	}
	return false
}

type pair struct {
	a, b floorplan.RoomHallIndex
}

func pairOf(a, b floorplan.RoomHallIndex) pair {
	if b.Less(a) {
		a, b = b, a
	}
	return pair{a, b}
}

// expansions collects a proposal per candidate and direction, keeping the
// first proposal found for each unordered pair of endpoints
func expansions(plan *floorplan.FloorPlan, cands []floorplan.RoomHallIndex, accept func(Proposal) bool, weight func(Proposal) int) *pick.SpawnList[Proposal] {
	out := pick.NewSpawnList[Proposal]()
	seen := mapset.New[pair]()
	for _, c := range cands {
		for _, d := range geom.Dirs() {
			p := GetRoomToConnect(plan, c, d)
			if p == nil || !accept(*p) {
				continue
			}
			key := pairOf(p.From, p.To)
			if seen.Has(key) {
				continue
			}
			seen.Put(key)
			// weights are clamped to at least 1, so Add cannot fail
			_ = out.Add(*p, max(weight(*p), 1))
		}
	}
	return out
}

func areaWeight(p Proposal) int {
	return p.Connector.Area()
}

func acceptAll(Proposal) bool {
	return true
}

// GetPossibleExpansions proposes a connector for every candidate and
// direction with a reachable neighbour, weighted by connector area
func GetPossibleExpansions(plan *floorplan.FloorPlan, cands []floorplan.RoomHallIndex) *pick.SpawnList[Proposal] {
	return expansions(plan, cands, acceptAll, areaWeight)
}

// Materialize adds the proposal to the plan: a hall prepared from template
// over the connector, or a direct edge when the ends touch. It returns the
// new hall's index, or To for a direct edge.
func Materialize(plan *floorplan.FloorPlan, p Proposal, template roomgen.RoomGen, r rng.Random) (floorplan.RoomHallIndex, error) {
	if p.Connector.Empty() {
		return p.To, plan.Connect(p.From, p.To)
	}
	hall := template.Copy()
	roomgen.Prepare(hall, r, p.Connector)
	return plan.AddHall(hall, p.From, p.To)
}

func defaultHall() roomgen.RoomGen {
	return roomgen.NewHall(pick.Range(1, 2))
}
