package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/engine/geom"
)

var (
	wall  = NewTile(0)
	floor = NewTile(1)
)

func TestBuildRejectsBadDimensions(t *testing.T) {
	_, err := NewGrid(0, 5, wall)
	assert.Error(t, err)
	_, err = NewGrid(5, -1, wall)
	assert.Error(t, err)
}

func TestGridGetSet(t *testing.T) {
	g, err := NewGrid(4, 3, wall)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())

	assert.True(t, g.Set(geom.Loc{X: 3, Y: 2}, floor))
	assert.False(t, g.Set(geom.Loc{X: 4, Y: 0}, floor))
	assert.True(t, g.Get(geom.Loc{X: 3, Y: 2}).Equivalent(floor))
	assert.Equal(t, Tile{}, g.Get(geom.Loc{X: -1, Y: 0}))
}

func TestGridFillClips(t *testing.T) {
	g, err := NewGrid(5, 5, wall)
	require.NoError(t, err)
	g.Fill(geom.Rect{X: 3, Y: 3, Width: 4, Height: 4}, floor)
	assert.Equal(t, 4, g.Count(floor))
}

func TestGridPerimeterAndNeighbors(t *testing.T) {
	g, err := NewGrid(3, 3, wall)
	require.NoError(t, err)
	assert.True(t, g.IsOnPerimeter(geom.Loc{X: 0, Y: 1}))
	assert.False(t, g.IsOnPerimeter(geom.Loc{X: 1, Y: 1}))
	assert.Len(t, g.Neighbors(geom.Loc{X: 1, Y: 1}), 4)
	assert.Len(t, g.Neighbors(geom.Loc{X: 0, Y: 0}), 2)
}

func TestGridClone(t *testing.T) {
	g, err := NewGrid(2, 2, wall)
	require.NoError(t, err)
	c := g.Clone()
	c.Set(geom.Loc{}, floor)
	assert.True(t, g.Get(geom.Loc{}).Equivalent(wall))
}
