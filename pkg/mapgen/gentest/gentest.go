// Package gentest provides a small tiled context for generator tests.
package gentest

import (
	"strings"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/mapgen/gen"
)

// Terrain used by test maps
var (
	Wall  = world.NewTile(0)
	Floor = world.NewTile(1)
	Water = world.NewTile(2)
)

var glyphs = map[int]rune{0: '#', 1: '.', 2: '~'}

// Map is a tiled context over a world.Grid
type Map struct {
	rand rng.Random
	Grid *world.Grid
}

var _ gen.TiledContext = (*Map)(nil)

// New returns a wall-filled map seeded with 0
func New(width, height int) *Map {
	m := &Map{rand: rng.New(0)}
	if width > 0 && height > 0 {
		m.Grid, _ = world.NewGrid(width, height, Wall)
	}
	return m
}

// FromRows builds a map from '#', '.' and '~' rows
func FromRows(rows ...string) *Map {
	m := New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			for id, g := range glyphs {
				if g == ch {
					m.Grid.Set(geom.Loc{X: x, Y: y}, world.NewTile(id))
				}
			}
		}
	}
	return m
}

// Rows renders the map back to text
func (m *Map) Rows() []string {
	rows := make([]string, m.Height())
	for y := range rows {
		var b strings.Builder
		for x := 0; x < m.Width(); x++ {
			ch, ok := glyphs[m.Grid.Get(geom.Loc{X: x, Y: y}).ID]
			if !ok {
				ch = '?'
			}
			b.WriteRune(ch)
		}
		rows[y] = b.String()
	}
	return rows
}

func (m *Map) Rand() rng.Random {
	return m.rand
}

func (m *Map) InitSeed(seed uint64) {
	m.rand = rng.New(seed)
}

func (m *Map) RoomTerrain() world.Tile {
	return Floor
}

func (m *Map) WallTerrain() world.Tile {
	return Wall
}

func (m *Map) Width() int {
	if m.Grid == nil {
		return 0
	}
	return m.Grid.Width()
}

func (m *Map) Height() int {
	if m.Grid == nil {
		return 0
	}
	return m.Grid.Height()
}

func (m *Map) GetTile(l geom.Loc) world.Tile {
	return m.Grid.Get(l)
}

func (m *Map) SetTile(l geom.Loc, t world.Tile) bool {
	return m.Grid.Set(l, t)
}

func (m *Map) TileBlocked(l geom.Loc) bool {
	return m.Grid.Get(l).Equivalent(Wall)
}

func (m *Map) CreateNew(width, height int) error {
	g, err := world.NewGrid(width, height, Wall)
	if err != nil {
		return err
	}
	m.Grid = g
	return nil
}
