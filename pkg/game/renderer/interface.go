package renderer

import (
	"errors"

	"roomweaver/pkg/game/state"
)

// TileStyle classifies a tile for display
type TileStyle int

const (
	StyleWall TileStyle = iota
	StyleFloor
	StyleHall
	StyleWater
	StyleItem
	StyleFurniture
	StyleEntrance
	StyleExit
)

// Renderer defines the interface for level preview backends
// Implementations include TUI (terminal) and Ebiten.
type Renderer interface {
	// Init initializes the renderer (colors, window, etc.)
	Init()

	// Render shows a finished level
	Render(m *state.Map) error
}

// ErrNoRenderer is returned when no renderer has been set
var ErrNoRenderer = errors.New("no renderer set")

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Render shows m with the current renderer
func Render(m *state.Map) error {
	if Current == nil {
		return ErrNoRenderer
	}
	return Current.Render(m)
}
