package renderer

import (
	"image/color"
	"math"

	hsluv "github.com/hsluv/hsluv-go"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/game/entities"
	"roomweaver/pkg/game/state"
)

// StyleAt classifies the tile at l: the object on it first, then its
// terrain. Floor inside a hall is StyleHall.
func StyleAt(m *state.Map, l geom.Loc) TileStyle {
	if o := m.ObjectAt(l); o != nil {
		switch o.(type) {
		case entities.StairsUp:
			return StyleEntrance
		case entities.StairsDown:
			return StyleExit
		case *entities.Furniture:
			return StyleFurniture
		default:
			return StyleItem
		}
	}

	t := m.GetTile(l)
	switch {
	case t.Equivalent(state.Water):
		return StyleWater
	case t.Equivalent(state.Floor):
		if idx, ok := m.RoomAt(l); ok && idx.IsHall {
			return StyleHall
		}
		return StyleFloor
	default:
		return StyleWall
	}
}

// RoomColor spreads n rooms evenly around the HSLuv hue circle
func RoomColor(i, n int) color.RGBA {
	if n < 1 {
		n = 1
	}
	r, g, b := hsluv.HuslToRGB(
		360*float64(i%n)/float64(n),
		70,
		45,
	)
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
