package generator

import (
	"fmt"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

// BSPFloorStep seeds a floor plan by binary space partitioning: the area is
// split until nodes are too small to halve and each leaf gets one room.
// Rooms are left unconnected.
type BSPFloorStep[T floorplan.Context] struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	MinNodeSize int `json:"min_node_size"`
	MinRoomSize int `json:"min_room_size"`
	// RoomPadding is the least space between a room and its node's far edges
	RoomPadding int `json:"room_padding"`
}

// bspNode is a node of the partition tree
type bspNode struct {
	area        geom.Rect
	left, right *bspNode
	room        geom.Rect
}

func (s BSPFloorStep[T]) Apply(ctx T) error {
	if s.MinRoomSize < 1 || s.RoomPadding < 1 {
		return fmt.Errorf("room size %d and padding %d must be positive", s.MinRoomSize, s.RoomPadding)
	}
	if s.MinNodeSize < s.MinRoomSize+s.RoomPadding {
		return fmt.Errorf("node size %d cannot hold a room of %d with padding %d", s.MinNodeSize, s.MinRoomSize, s.RoomPadding)
	}
	if s.Width < s.MinNodeSize || s.Height < s.MinNodeSize {
		return fmt.Errorf("floor %dx%d smaller than node size %d", s.Width, s.Height, s.MinNodeSize)
	}

	r := ctx.Rand()
	root := &bspNode{area: geom.Rect{Width: s.Width, Height: s.Height}}
	splitBSP(r, root, s.MinNodeSize)

	plan := floorplan.New(geom.Loc{X: s.Width, Y: s.Height})
	for _, leaf := range root.leaves() {
		leaf.room = s.roomIn(r, leaf.area)
		g := roomgen.NewSquare(pick.Range(leaf.room.Width, leaf.room.Width+1), pick.Range(leaf.room.Height, leaf.room.Height+1))
		roomgen.Prepare(g, r, leaf.room)
		if _, err := plan.AddRoom(g); err != nil {
			return fmt.Errorf("bsp room %v: %w", leaf.room, err)
		}
	}
	ctx.InitPlan(plan)
	gen.DebugProgress("bsp placed %d rooms", plan.RoomCount())
	return nil
}

// splitBSP recursively splits a node along its longer side
func splitBSP(r rng.Random, node *bspNode, minSize int) {
	w, h := node.area.Width, node.area.Height
	canW, canH := w >= minSize*2, h >= minSize*2

	var horizontal bool
	switch {
	case w > h && canW:
		horizontal = false
	case h > w && canH:
		horizontal = true
	case canW && canH:
		horizontal = r.Intn(2) == 0
	case canW:
		horizontal = false
	case canH:
		horizontal = true
	default:
		return
	}

	a := node.area
	if horizontal {
		at := minSize + r.Intn(h-minSize*2+1)
		node.left = &bspNode{area: geom.Rect{X: a.X, Y: a.Y, Width: w, Height: at}}
		node.right = &bspNode{area: geom.Rect{X: a.X, Y: a.Y + at, Width: w, Height: h - at}}
	} else {
		at := minSize + r.Intn(w-minSize*2+1)
		node.left = &bspNode{area: geom.Rect{X: a.X, Y: a.Y, Width: at, Height: h}}
		node.right = &bspNode{area: geom.Rect{X: a.X + at, Y: a.Y, Width: w - at, Height: h}}
	}
	splitBSP(r, node.left, minSize)
	splitBSP(r, node.right, minSize)
}

// roomIn picks a room inside a leaf that stays off the leaf's far edges
// so neighbouring rooms never touch
func (s BSPFloorStep[T]) roomIn(r rng.Random, area geom.Rect) geom.Rect {
	w := s.MinRoomSize + r.Intn(area.Width-s.MinRoomSize-s.RoomPadding+1)
	h := s.MinRoomSize + r.Intn(area.Height-s.MinRoomSize-s.RoomPadding+1)
	return geom.Rect{
		X:      area.X + r.Intn(area.Width-w),
		Y:      area.Y + r.Intn(area.Height-h),
		Width:  w,
		Height: h,
	}
}

// leaves returns the leaf nodes left to right
func (n *bspNode) leaves() []*bspNode {
	if n.left == nil && n.right == nil {
		return []*bspNode{n}
	}
	var out []*bspNode
	if n.left != nil {
		out = append(out, n.left.leaves()...)
	}
	if n.right != nil {
		out = append(out, n.right.leaves()...)
	}
	return out
}
