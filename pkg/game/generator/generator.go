// Package generator builds complete levels from step recipes.
package generator

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/connect"
	"roomweaver/pkg/mapgen/gen"
)

// Generator is an interface for level generation algorithms
type Generator interface {
	Generate(level int, seed uint64) (*state.Map, error)
	Name() string
}

// RecipeGenerator runs the recipe built for each level. A seed whose plan
// cannot be connected is retried with the following seeds.
type RecipeGenerator struct {
	Title    string
	Recipe   func(level int) Recipe
	Attempts int
}

func (g *RecipeGenerator) Name() string {
	return g.Title
}

func (g *RecipeGenerator) Generate(level int, seed uint64) (*state.Map, error) {
	mg, err := g.Recipe(level).Build(level)
	if err != nil {
		return nil, err
	}

	attempts := g.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var errs error
	for i := 0; i < attempts; i++ {
		m, err := mg.Generate(seed + uint64(i))
		if err == nil {
			return m, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("seed %d: %w", seed+uint64(i), err))
		if !errors.Is(err, connect.ErrNotConnectable) {
			break
		}
		gen.DebugProgress("seed %d not connectable, retrying", seed+uint64(i))
	}
	return nil, errs
}

// Available generators
var (
	Grid = &RecipeGenerator{Title: "grid", Recipe: GridRecipe, Attempts: 8}
	BSP  = &RecipeGenerator{Title: "bsp", Recipe: BSPRecipe, Attempts: 8}
)

// Generators maps generator names to generators
var Generators = map[string]Generator{
	Grid.Name(): Grid,
	BSP.Name():  BSP,
}

// DefaultGenerator is the default level generator
var DefaultGenerator Generator = Grid

// FromRecipe wraps a fixed recipe as a generator
func FromRecipe(r Recipe, attempts int) *RecipeGenerator {
	return &RecipeGenerator{
		Title:    r.Name,
		Recipe:   func(int) Recipe { return r },
		Attempts: attempts,
	}
}
