package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/game/devtools"
	"roomweaver/pkg/game/generator"
	"roomweaver/pkg/game/state"
)

func plainColors(t *testing.T) {
	t.Helper()
	was := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = was })
}

func TestFormatText(t *testing.T) {
	plainColors(t)
	r := New(&bytes.Buffer{}, 0)
	r.Init()

	assert.Equal(t, "in Dusty Bridge now", r.FormatText("in ROOM{%s} now", "Dusty Bridge"))
	assert.Equal(t, "Rooms", r.FormatText("GT{Rooms}"))
	assert.Contains(t, r.FormatText("BOGUS{x}"), "function not found")
}

func TestRender(t *testing.T) {
	plainColors(t)
	m, err := generator.Grid.Generate(1, 3)
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(&out, 0)
	r.Init()
	require.NoError(t, r.Render(m))

	var grid bytes.Buffer
	require.NoError(t, devtools.WriteMapGrid(&grid, m))
	text := out.String()
	assert.Contains(t, text, grid.String())
	assert.Contains(t, text, "Level 1, seed")
	assert.Contains(t, text, m.Rooms[0].Name)
	assert.Contains(t, text, "Stairs Up")
}

func TestRender_CutsWidth(t *testing.T) {
	plainColors(t)
	m, err := generator.BSP.Generate(0, 2)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, New(&out, 10).Render(m))

	var grid bytes.Buffer
	require.NoError(t, devtools.WriteMapGrid(&grid, m))
	first := strings.SplitN(grid.String(), "\n", 2)[0]
	assert.Contains(t, out.String(), "\n"+first[:10]+"\n")
	assert.NotContains(t, out.String(), first)
}

func TestRender_NoGrid(t *testing.T) {
	assert.Error(t, New(&bytes.Buffer{}, 0).Render(state.NewMap(0)))
}
