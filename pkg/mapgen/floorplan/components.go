package floorplan

import "github.com/spakin/disjoint"

// ComponentSet tracks which nodes are connected. It is built from a plan's
// edges and can be updated as edges are added.
type ComponentSet struct {
	elems map[RoomHallIndex]*disjoint.Element
	order []RoomHallIndex
}

// ComponentSet groups the plan's nodes by connectivity
func (p *FloorPlan) ComponentSet() *ComponentSet {
	c := &ComponentSet{elems: map[RoomHallIndex]*disjoint.Element{}}
	for _, idx := range p.AllIndices() {
		c.Add(idx)
	}
	for _, idx := range p.AllIndices() {
		for _, adj := range p.GetRoomHall(idx).Adjacents {
			c.Union(idx, adj)
		}
	}
	return c
}

// Add registers idx as its own component if it is new
func (c *ComponentSet) Add(idx RoomHallIndex) {
	if _, ok := c.elems[idx]; ok {
		return
	}
	e := disjoint.NewElement()
	e.Data = idx
	c.elems[idx] = e
	c.order = append(c.order, idx)
}

// Union merges the components of a and b
func (c *ComponentSet) Union(a, b RoomHallIndex) {
	c.Add(a)
	c.Add(b)
	disjoint.Union(c.elems[a], c.elems[b])
}

// Same reports whether a and b are connected
func (c *ComponentSet) Same(a, b RoomHallIndex) bool {
	ea, oka := c.elems[a]
	eb, okb := c.elems[b]
	return oka && okb && ea.Find() == eb.Find()
}

// Count returns the number of components
func (c *ComponentSet) Count() int {
	roots := map[*disjoint.Element]bool{}
	for _, e := range c.elems {
		roots[e.Find()] = true
	}
	return len(roots)
}

// Groups lists the components, each in node order, ordered by first member
func (c *ComponentSet) Groups() [][]RoomHallIndex {
	slot := map[*disjoint.Element]int{}
	var out [][]RoomHallIndex
	for _, idx := range c.order {
		root := c.elems[idx].Find()
		i, ok := slot[root]
		if !ok {
			i = len(out)
			slot[root] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], idx)
	}
	return out
}

// Components lists the plan's connected components
func (p *FloorPlan) Components() [][]RoomHallIndex {
	return p.ComponentSet().Groups()
}

// IsConnected reports whether the plan has at most one component
func (p *FloorPlan) IsConnected() bool {
	return p.ComponentSet().Count() <= 1
}
