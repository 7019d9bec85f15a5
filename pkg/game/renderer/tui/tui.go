package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/game/devtools"
	"roomweaver/pkg/game/renderer"
	"roomweaver/pkg/game/state"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer prints levels as colored text
type TUIRenderer struct {
	out   io.Writer
	width int

	styles      map[renderer.TileStyle]color.Style
	colorTitle  color.Style
	colorRoom   color.Style
	colorItem   color.Style
	colorSubtle color.Style

	regexpStringFunctions *regexp.Regexp
}

var _ renderer.Renderer = (*TUIRenderer)(nil)

// New creates a TUI renderer writing to out. Map lines are cut at width
// columns; zero means no limit.
func New(out io.Writer, width int) *TUIRenderer {
	return &TUIRenderer{out: out, width: width}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TileStyle]color.Style{
		renderer.StyleWall:      {color.FgGray},
		renderer.StyleFloor:     {color.FgWhite},
		renderer.StyleHall:      {color.FgGray, color.OpBold},
		renderer.StyleWater:     {color.FgBlue},
		renderer.StyleItem:      {color.FgMagenta, color.OpBold},
		renderer.StyleFurniture: {color.FgYellow},
		renderer.StyleEntrance:  {color.FgGreen, color.OpBold},
		renderer.StyleExit:      {color.FgRed, color.OpBold},
	}
	t.colorTitle = color.Style{color.FgMagenta}
	t.colorRoom = color.Style{color.FgBlue}
	t.colorItem = color.Style{color.FgGreen, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:'-]+)}`)
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ITEM":
			val = t.colorItem.Sprint(operand)
		case "ROOM":
			val = t.colorRoom.Sprint(operand)
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

// Render prints the level header, the colored map and the room and
// object lists
func (t *TUIRenderer) Render(m *state.Map) error {
	if m.Grid == nil {
		return fmt.Errorf("no grid")
	}
	if t.styles == nil {
		t.Init()
	}

	fmt.Fprintln(t.out, t.colorTitle.Sprint(gotext.Get("Level %d, seed %d", m.Level, m.Seed())))
	if plan := m.RoomPlan(); plan != nil {
		t.printString("SUBTLE{%s}\n", gotext.Get("%d rooms, %d halls", plan.RoomCount(), plan.HallCount()))
	}
	fmt.Fprintln(t.out)

	t.printMap(m)
	fmt.Fprintln(t.out)

	t.printString("GT{Rooms}:\n")
	for i, room := range m.Rooms {
		t.printString("- %2d ROOM{%s} SUBTLE{%s}\n", i, room.Name, room.Type)
	}
	t.printString("GT{Objects}:\n")
	for _, p := range m.Objects() {
		t.printString("- %c ITEM{%s} SUBTLE{%d,%d}\n", p.Object.Glyph(), p.Object.Name(), p.Loc.X, p.Loc.Y)
	}
	return nil
}

// printMap prints every row of the level, cut at the renderer width
func (t *TUIRenderer) printMap(m *state.Map) {
	cols := m.Width()
	if t.width > 0 && t.width < cols {
		cols = t.width
	}
	var sb strings.Builder
	for y := 0; y < m.Height(); y++ {
		sb.Reset()
		for x := 0; x < cols; x++ {
			l := geom.Loc{X: x, Y: y}
			sym := string(devtools.MapSymbol(m, l))
			sb.WriteString(t.styles[renderer.StyleAt(m, l)].Sprint(sym))
		}
		fmt.Fprintln(t.out, sb.String())
	}
}
