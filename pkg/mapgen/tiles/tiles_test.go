package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/mapgen/gentest"
)

func TestEraseIsolated(t *testing.T) {
	m := gentest.FromRows(
		"#######",
		"#..~#~#",
		"#~###~#",
		"#.#~~~#",
		"#######",
	)
	require.NoError(t, EraseIsolatedStep[*gentest.Map]{Terrain: gentest.Water}.Apply(m))
	assert.Equal(t, []string{
		"#######",
		"#..~###",
		"#~#####",
		"#.#####",
		"#######",
	}, m.Rows())
}

func TestEraseIsolatedKeepsOtherTerrain(t *testing.T) {
	rows := []string{
		"#####",
		"#.#.#",
		"#####",
	}
	m := gentest.FromRows(rows...)
	require.NoError(t, EraseIsolatedStep[*gentest.Map]{Terrain: gentest.Water}.Apply(m))
	assert.Equal(t, rows, m.Rows(), "separate floor areas are left to the connection pass")
}

func TestEraseIsolatedNoRooms(t *testing.T) {
	m := gentest.FromRows(
		"~~~",
		"~#~",
	)
	require.NoError(t, EraseIsolatedStep[*gentest.Map]{Terrain: gentest.Water}.Apply(m))
	assert.Equal(t, []string{"###", "###"}, m.Rows())
}

func noiseMap(seed uint64) *gentest.Map {
	m := gentest.FromRows(
		"############",
		"############",
		"##....######",
		"##....######",
		"############",
		"############",
		"############",
		"############",
		"############",
		"############",
		"############",
		"############",
	)
	m.InitSeed(seed)
	return m
}

func TestNoiseTerrainPaintsWalls(t *testing.T) {
	m := noiseMap(3)
	require.NoError(t, NoiseTerrainStep[*gentest.Map]{Terrain: gentest.Water, Threshold: -1}.Apply(m))

	assert.Equal(t, 8, m.Grid.Count(gentest.Floor), "floor is never painted")
	assert.Equal(t, 100-8, m.Grid.Count(gentest.Water))
	m.Grid.ForEach(func(l geom.Loc, tile world.Tile) {
		if m.Grid.IsOnPerimeter(l) {
			assert.Equal(t, gentest.Wall, tile, "%v", l)
		}
	})
}

func TestNoiseTerrainThreshold(t *testing.T) {
	m := noiseMap(3)
	require.NoError(t, NoiseTerrainStep[*gentest.Map]{Terrain: gentest.Water, Threshold: 1}.Apply(m))
	assert.Zero(t, m.Grid.Count(gentest.Water))

	err := NoiseTerrainStep[*gentest.Map]{Terrain: gentest.Water, Threshold: 1.5}.Apply(m)
	assert.Error(t, err)
}

func TestNoiseTerrainDeterministic(t *testing.T) {
	step := NoiseTerrainStep[*gentest.Map]{Terrain: gentest.Water, Threshold: 0.1, Scale: 0.3}
	a, b := noiseMap(9), noiseMap(9)
	require.NoError(t, step.Apply(a))
	require.NoError(t, step.Apply(b))
	assert.Equal(t, a.Rows(), b.Rows())
}
