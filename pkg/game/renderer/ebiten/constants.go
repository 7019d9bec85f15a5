// Package ebiten provides an Ebiten-based window for browsing generated levels.
package ebiten

import (
	"image/color"

	"roomweaver/pkg/game/renderer"
)

// Color palette for the viewer
var (
	colorBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorWall       = color.RGBA{60, 60, 80, 255}    // Darker background for walls
	colorFloor      = color.RGBA{160, 160, 180, 255} // Lighter gray
	colorHall       = color.RGBA{110, 110, 130, 255} // Medium gray
	colorWater      = color.RGBA{40, 90, 170, 255}
	colorItem       = color.RGBA{220, 170, 255, 255} // Bright purple
	colorFurniture  = color.RGBA{200, 180, 100, 255} // Tan/brown
	colorEntrance   = color.RGBA{100, 255, 100, 255} // Bright green
	colorExit       = color.RGBA{255, 100, 100, 255} // Bright red
)

var styleColors = map[renderer.TileStyle]color.RGBA{
	renderer.StyleWall:      colorWall,
	renderer.StyleFloor:     colorFloor,
	renderer.StyleHall:      colorHall,
	renderer.StyleWater:     colorWater,
	renderer.StyleItem:      colorItem,
	renderer.StyleFurniture: colorFurniture,
	renderer.StyleEntrance:  colorEntrance,
	renderer.StyleExit:      colorExit,
}

const (
	defaultTileSize = 10
	hudHeight       = 48
	minWindowWidth  = 320
)
