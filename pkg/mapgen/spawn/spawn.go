// Package spawn places objects into the rooms of a floor plan.
package spawn

import (
	"fmt"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
)

// Spawnable is an object that hands out fresh copies of itself
type Spawnable[S any] interface {
	Copy() S
}

// Spawner produces the objects a spawn step places
type Spawner[T gen.Context, S any] interface {
	GetSpawns(ctx T) ([]S, error)
}

// Context is a floor plan context that can hold objects of type S
type Context[S any] interface {
	floorplan.Context
	gen.Placeable[S]
}

// PickerSpawner rolls Picker and returns copies of the results. Pickers
// that change state are copied first so the template stays untouched.
type PickerSpawner[T gen.Context, S Spawnable[S]] struct {
	Picker pick.MultiPicker[S]
}

func (p PickerSpawner[T, S]) GetSpawns(ctx T) ([]S, error) {
	if p.Picker == nil {
		return nil, nil
	}
	picker := p.Picker
	if picker.ChangesState() {
		picker = picker.CopyState()
	}
	rolled, err := picker.Roll(ctx.Rand())
	if err != nil {
		return nil, fmt.Errorf("roll spawns: %w", err)
	}
	out := make([]S, 0, len(rolled))
	for _, s := range rolled {
		out = append(out, s.Copy())
	}
	return out, nil
}
