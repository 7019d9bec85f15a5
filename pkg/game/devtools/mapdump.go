// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/floorplan"
)

// MapDumpFilename is the default dump file name
const MapDumpFilename = "map.txt"

// MapSymbol returns the single-character symbol for a tile: the glyph of
// the object lying on it, otherwise its terrain.
func MapSymbol(m *state.Map, l geom.Loc) rune {
	if o := m.ObjectAt(l); o != nil {
		return o.Glyph()
	}
	t := m.GetTile(l)
	switch {
	case t.Equivalent(state.Floor):
		return '.'
	case t.Equivalent(state.Water):
		return '~'
	case t.Equivalent(state.Wall):
		return '#'
	default:
		return '?'
	}
}

// WriteMapGrid writes the tile map, one line per row
func WriteMapGrid(w io.Writer, m *state.Map) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			bw.WriteRune(MapSymbol(m, geom.Loc{X: x, Y: y}))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func locString(l geom.Loc, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%d,%d", l.X, l.Y)
}

func writePlanNodes(w io.Writer, m *state.Map, plan *floorplan.FloorPlan, halls bool) {
	for _, idx := range plan.AllIndices() {
		if idx.IsHall != halls {
			continue
		}
		node := plan.GetRoomHall(idx)
		adj := append([]floorplan.RoomHallIndex(nil), node.Adjacents...)
		sort.Slice(adj, func(i, j int) bool { return adj[i].Less(adj[j]) })

		b := node.Bounds()
		fmt.Fprintf(w, "  %v name: %q x: %d y: %d width: %d height: %d", idx, m.RoomName(idx), b.X, b.Y, b.Width, b.Height)
		if !halls && idx.Index < len(m.Rooms) {
			fmt.Fprintf(w, " type: %q", m.Rooms[idx.Index].Type)
		}
		fmt.Fprintf(w, " adjacent: %v\n", adj)
	}
}

// WriteMapDump writes a full debug dump: metadata, legend, tile map,
// rooms, halls and placed objects. Format is human-readable (sections,
// key: value, consistent structure).
func WriteMapDump(w io.Writer, m *state.Map) error {
	if m.Grid == nil {
		return fmt.Errorf("no grid")
	}
	in, hasIn := m.Entrance()
	out, hasOut := m.Exit()

	fmt.Fprintln(w, "=== MAP DUMP DEBUG (level layout, floor plan, objects) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "level: %d\n", m.Level)
	fmt.Fprintf(w, "level_seed: %d\n", m.Seed())
	fmt.Fprintf(w, "width: %d\n", m.Width())
	fmt.Fprintf(w, "height: %d\n", m.Height())
	fmt.Fprintln(w, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)")
	fmt.Fprintf(w, "entrance: %s\n", locString(in, hasIn))
	fmt.Fprintf(w, "exit: %s\n", locString(out, hasOut))
	if plan := m.RoomPlan(); plan != nil {
		fmt.Fprintf(w, "rooms: %d\n", plan.RoomCount())
		fmt.Fprintf(w, "halls: %d\n", plan.HallCount())
		fmt.Fprintf(w, "components: %d\n", len(plan.Components()))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend (tile symbols) ---")
	fmt.Fprintln(w, ". = floor  # = wall  ~ = water  < = entrance  > = exit  other = object glyph")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map ---")
	if err := WriteMapGrid(w, m); err != nil {
		return err
	}
	fmt.Fprintln(w, "")

	if plan := m.RoomPlan(); plan != nil {
		fmt.Fprintln(w, "--- Rooms ---")
		writePlanNodes(w, m, plan, false)
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "--- Halls ---")
		writePlanNodes(w, m, plan, true)
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "--- Objects ---")
	for _, p := range m.Objects() {
		where := "none"
		if idx, ok := m.RoomAt(p.Loc); ok {
			where = m.RoomName(idx)
		}
		_, err := fmt.Fprintf(w, "  x: %d y: %d glyph: %c name: %q room: %q\n", p.Loc.X, p.Loc.Y, p.Object.Glyph(), p.Object.Name(), where)
		if err != nil {
			return err
		}
	}
	return nil
}

// DumpMap writes the debug dump of m to path on fs and returns the path
// written, absolute when fs is rooted on disk.
func DumpMap(fs billy.Filesystem, path string, m *state.Map) (_ string, err error) {
	if path == "" {
		path = MapDumpFilename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := WriteMapDump(f, m); err != nil {
		return "", err
	}
	return fs.Join(fs.Root(), path), nil
}
