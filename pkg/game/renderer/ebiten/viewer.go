package ebiten

import (
	"image/color"
	"log"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/game/renderer"
	"roomweaver/pkg/game/state"
)

// GenerateFunc builds the level for a seed
type GenerateFunc func(seed uint64) (*state.Map, error)

// Viewer is a window showing one level at a time. R generates the level
// for a new seed, C copies the seed, Tab toggles room colors.
type Viewer struct {
	generate GenerateFunc
	tileSize int

	level     *state.Map
	colors    [][]color.RGBA
	showRooms bool
	message   string
}

var _ renderer.Renderer = (*Viewer)(nil)

// New creates a viewer regenerating levels with generate
func New(generate GenerateFunc) *Viewer {
	return &Viewer{generate: generate, tileSize: defaultTileSize}
}

// Init sets up the window
func (v *Viewer) Init() {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(gotext.Get("roomweaver"))
}

// Render opens the window on m and blocks until it is closed
func (v *Viewer) Render(m *state.Map) error {
	v.setLevel(m)
	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	return ebiten.RunGame(v)
}

// setLevel caches the color of every tile of m
func (v *Viewer) setLevel(m *state.Map) {
	v.level = m
	rooms := 0
	if plan := m.RoomPlan(); plan != nil {
		rooms = plan.RoomCount()
	}

	v.colors = make([][]color.RGBA, m.Width())
	for x := range v.colors {
		v.colors[x] = make([]color.RGBA, m.Height())
		for y := range v.colors[x] {
			l := geom.Loc{X: x, Y: y}
			style := renderer.StyleAt(m, l)
			c := styleColors[style]
			if v.showRooms && style == renderer.StyleFloor {
				if idx, ok := m.RoomAt(l); ok {
					c = renderer.RoomColor(idx.Index, rooms)
				}
			}
			v.colors[x][y] = c
		}
	}
	ebiten.SetWindowTitle(gotext.Get("roomweaver: level %d, seed %d", m.Level, m.Seed()))
}

func (v *Viewer) reseed() {
	seed := rng.New(v.level.Seed()).NextUint64()
	m, err := v.generate(seed)
	if err != nil {
		log.Printf("generate seed %d: %v", seed, err)
		v.message = gotext.Get("Seed %d failed", seed)
		return
	}
	v.setLevel(m)
	v.message = ""
}

// Update handles input (Ebiten interface)
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.showRooms = !v.showRooms
		v.setLevel(v.level)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		seed := strconv.FormatUint(v.level.Seed(), 10)
		if err := clipboard.WriteAll(seed); err != nil {
			log.Printf("copy seed: %v", err)
			v.message = gotext.Get("Clipboard unavailable")
		} else {
			v.message = gotext.Get("Copied seed %s", seed)
		}
	}
	return nil
}

// Draw renders the level to the screen (Ebiten interface)
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	ts := float32(v.tileSize)
	for x, col := range v.colors {
		for y, c := range col {
			vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, c, false)
		}
	}

	top := v.level.Height()*v.tileSize + 4
	ebitenutil.DebugPrintAt(screen, gotext.Get("Level %d  Seed %d", v.level.Level, v.level.Seed()), 4, top)
	ebitenutil.DebugPrintAt(screen, gotext.Get("R: new seed  C: copy seed  Tab: rooms  Q: quit"), 4, top+14)
	if v.message != "" {
		ebitenutil.DebugPrintAt(screen, v.message, 4, top+28)
	}
}

// Layout returns the viewer's logical screen size (Ebiten interface)
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if v.level == nil {
		return minWindowWidth, hudHeight
	}
	return max(v.level.Width()*v.tileSize, minWindowWidth), v.level.Height()*v.tileSize + hudHeight
}
