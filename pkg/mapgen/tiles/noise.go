package tiles

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/mapgen/gen"
)

const defaultNoiseScale = 0.15

// NoiseTerrainStep paints Terrain over the interior wall tiles where seeded
// simplex noise exceeds Threshold. Scale is the noise frequency per tile.
// The outer ring of the map is left alone.
type NoiseTerrainStep[T gen.TiledContext] struct {
	Terrain   world.Tile `json:"terrain"`
	Threshold float64    `json:"threshold"`
	Scale     float64    `json:"scale"`
}

func (s NoiseTerrainStep[T]) Apply(ctx T) error {
	if s.Threshold < -1 || s.Threshold > 1 {
		return fmt.Errorf("noise threshold %v outside [-1,1]", s.Threshold)
	}
	scale := s.Scale
	if scale <= 0 {
		scale = defaultNoiseScale
	}
	noise := opensimplex.New(int64(ctx.Rand().NextUint64()))

	wall := ctx.WallTerrain()
	painted := 0
	for x := 1; x < ctx.Width()-1; x++ {
		for y := 1; y < ctx.Height()-1; y++ {
			l := geom.Loc{X: x, Y: y}
			if !ctx.GetTile(l).Equivalent(wall) {
				continue
			}
			if noise.Eval2(float64(x)*scale, float64(y)*scale) > s.Threshold {
				ctx.SetTile(l, s.Terrain)
				painted++
			}
		}
	}
	gen.DebugProgress("painted %d %v tiles", painted, s.Terrain)
	return nil
}
