package roomgen

import (
	"encoding/json"
	"fmt"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/mapgen/gen"
)

// Specific is an authored room. Tiles are indexed [x][y]. When drawn at a
// size other than the authored one it falls back to a solid rectangle.
type Specific struct {
	Base
	Tiles       [][]world.Tile
	Borders     [4][]bool
	RoomTerrain world.Tile
	// FulfillAll digs every requested cell, fulfillable or not
	FulfillAll bool
}

// NewSpecific creates a blank authored room of the given size
func NewSpecific(width, height int, roomTerrain world.Tile, fulfillAll bool) *Specific {
	s := &Specific{RoomTerrain: roomTerrain, FulfillAll: fulfillAll}
	s.Tiles = make([][]world.Tile, width)
	for x := range s.Tiles {
		s.Tiles[x] = make([]world.Tile, height)
	}
	for _, d := range geom.Dirs() {
		if d.Axis() == geom.Vertical {
			s.Borders[d] = make([]bool, width)
		} else {
			s.Borders[d] = make([]bool, height)
		}
	}
	return s
}

// ParseSpecific builds an authored room from text rows using legend to map
// runes to tiles
func ParseSpecific(rows []string, legend map[rune]world.Tile, roomTerrain world.Tile, fulfillAll bool) (*Specific, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("authored room has no tiles")
	}
	width := len([]rune(rows[0]))
	s := NewSpecific(width, len(rows), roomTerrain, fulfillAll)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("authored room row %d has width %d, want %d", y, len(runes), width)
		}
		for x, ch := range runes {
			t, ok := legend[ch]
			if !ok {
				return nil, fmt.Errorf("authored room row %d: unknown tile %q", y, ch)
			}
			s.Tiles[x][y] = t
		}
	}
	return s, nil
}

func (s *Specific) size() geom.Loc {
	if len(s.Tiles) == 0 {
		return geom.Loc{}
	}
	return geom.Loc{X: len(s.Tiles), Y: len(s.Tiles[0])}
}

func (s *Specific) authoredFit() bool {
	return s.Draw().Size() == s.size()
}

func (s *Specific) ProposeSize(rng.Random) geom.Loc {
	return s.size()
}

func (s *Specific) PrepareFulfillableBorders(rng.Random) {
	if !s.authoredFit() {
		s.fulfillAllBorders()
		return
	}
	w, h := s.Draw().Width, s.Draw().Height
	for i := 0; i < w; i++ {
		s.fulfillable[geom.Up][i] = s.Tiles[i][0].Equivalent(s.RoomTerrain) || s.Borders[geom.Up][i]
		s.fulfillable[geom.Down][i] = s.Tiles[i][h-1].Equivalent(s.RoomTerrain) || s.Borders[geom.Down][i]
	}
	for i := 0; i < h; i++ {
		s.fulfillable[geom.Left][i] = s.Tiles[0][i].Equivalent(s.RoomTerrain) || s.Borders[geom.Left][i]
		s.fulfillable[geom.Right][i] = s.Tiles[w-1][i].Equivalent(s.RoomTerrain) || s.Borders[geom.Right][i]
	}
}

func (s *Specific) DrawOnMap(ctx gen.TiledContext) error {
	if !s.authoredFit() {
		s.DrawMapDefault(ctx)
		return nil
	}
	draw := s.Draw()
	for x := 0; x < draw.Width; x++ {
		for y := 0; y < draw.Height; y++ {
			ctx.SetTile(geom.Loc{X: draw.X + x, Y: draw.Y + y}, s.Tiles[x][y])
		}
	}
	s.FulfillRoomBorders(ctx, s.FulfillAll)
	s.SetRoomBorders(ctx)
	return nil
}

func (s *Specific) Copy() RoomGen {
	c := &Specific{RoomTerrain: s.RoomTerrain, FulfillAll: s.FulfillAll}
	c.Tiles = make([][]world.Tile, len(s.Tiles))
	for x := range s.Tiles {
		c.Tiles[x] = append([]world.Tile(nil), s.Tiles[x]...)
	}
	for d := range s.Borders {
		c.Borders[d] = append([]bool(nil), s.Borders[d]...)
	}
	return c
}

// legendRunes name the non-room terrains of an authored room when it is
// written out; room terrain is always '.'
const legendRunes = "#~%&*+=abcdefghijklmnopqrstuvwxyz"

type specificJSON struct {
	Rows        []string              `json:"rows"`
	Legend      map[string]world.Tile `json:"legend"`
	Borders     [][]bool              `json:"borders,omitempty"`
	RoomTerrain world.Tile            `json:"room_terrain"`
	FulfillAll  bool                  `json:"fulfill_all,omitempty"`
}

// MarshalJSON writes the room as text rows with a legend, the same form
// ParseSpecific reads. Borders are indexed by direction and only written
// when one is set.
func (s *Specific) MarshalJSON() ([]byte, error) {
	size := s.size()
	runes := map[world.Tile]rune{s.RoomTerrain: '.'}
	free := []rune(legendRunes)
	j := specificJSON{RoomTerrain: s.RoomTerrain, FulfillAll: s.FulfillAll}
	for y := 0; y < size.Y; y++ {
		row := make([]rune, size.X)
		for x := 0; x < size.X; x++ {
			t := s.Tiles[x][y]
			ch, ok := runes[t]
			if !ok {
				if len(free) == 0 {
					return nil, fmt.Errorf("authored room has more than %d terrains", len(legendRunes)+1)
				}
				ch, free = free[0], free[1:]
				runes[t] = ch
			}
			row[x] = ch
		}
		j.Rows = append(j.Rows, string(row))
	}
	j.Legend = make(map[string]world.Tile, len(runes))
	for t, ch := range runes {
		j.Legend[string(ch)] = t
	}
	for _, cells := range s.Borders {
		for _, set := range cells {
			if set {
				j.Borders = s.Borders[:]
			}
		}
	}
	return json.Marshal(j)
}

func (s *Specific) UnmarshalJSON(data []byte) error {
	var j specificJSON
	if err := decodeStrict(data, &j); err != nil {
		return err
	}
	legend := make(map[rune]world.Tile, len(j.Legend))
	for k, t := range j.Legend {
		r := []rune(k)
		if len(r) != 1 {
			return fmt.Errorf("legend key %q is not one character", k)
		}
		legend[r[0]] = t
	}
	parsed, err := ParseSpecific(j.Rows, legend, j.RoomTerrain, j.FulfillAll)
	if err != nil {
		return err
	}
	if j.Borders != nil {
		if len(j.Borders) != len(parsed.Borders) {
			return fmt.Errorf("authored room has %d border lists, want %d", len(j.Borders), len(parsed.Borders))
		}
		for d, cells := range j.Borders {
			if len(cells) != len(parsed.Borders[d]) {
				return fmt.Errorf("authored room border %v has %d cells, want %d", geom.Dir4(d), len(cells), len(parsed.Borders[d]))
			}
			parsed.Borders[d] = cells
		}
	}
	*s = *parsed
	return nil
}
