package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"

	"roomweaver/pkg/game/entities"
	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/connect"
	"roomweaver/pkg/mapgen/floorplan"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/gridplan"
	"roomweaver/pkg/mapgen/spawn"
	"roomweaver/pkg/mapgen/tiles"
)

// ErrUnknownStep is returned for a recipe step type with no decoder
var ErrUnknownStep = errors.New("unknown step type")

// StepSpec is one persisted step: its registered type and its parameters
type StepSpec struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Recipe is a named list of steps that builds a level
type Recipe struct {
	Name  string     `json:"name"`
	Steps []StepSpec `json:"steps"`
}

type stepDecoder func(params json.RawMessage) (gen.Step[*state.Map], error)

// decoder returns a decoder that fills a copy of init from the params
func decoder[S gen.Step[*state.Map]](init S) stepDecoder {
	return func(params json.RawMessage) (gen.Step[*state.Map], error) {
		s := init
		if len(params) > 0 {
			dec := json.NewDecoder(bytes.NewReader(params))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&s); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
}

var stairsStep = spawn.FloorStairsStep[*state.Map, entities.Spawnable]{
	Entrance: entities.StairsUp{},
	Exit:     entities.StairsDown{},
}

var stepTypes = map[string]stepDecoder{
	"init_grid":        decoder(gridplan.InitGridPlanStep[*state.Map]{}),
	"grid_rooms":       decoder(gridplan.GridRandomRoomsStep[*state.Map]{}),
	"grid_halls":       decoder(gridplan.GridRandomHallsStep[*state.Map]{}),
	"grid_to_floor":    decoder(gridplan.DrawGridToFloorStep[*state.Map]{}),
	"bsp_floor":        decoder(BSPFloorStep[*state.Map]{}),
	"connect_branches": decoder(connect.ConnectBranchStep[*state.Map]{}),
	"connect_arms":     decoder(connect.ConnectArmsStep[*state.Map]{}),
	"draw_floor":       decoder(floorplan.DrawFloorToTileStep[*state.Map]{}),
	"noise_terrain":    decoder(tiles.NoiseTerrainStep[*state.Map]{}),
	"erase_isolated":   decoder(tiles.EraseIsolatedStep[*state.Map]{}),
	"name_rooms":       decoder(NameRoomsStep{}),
	"furnish_rooms":    decoder(FurnishRoomsStep{}),
	"scatter_items":    decoder(ScatterItemsStep{}),
	"stairs":           decoder(stairsStep),
}

// StepTypes lists the registered step types in order
func StepTypes() []string {
	out := make([]string, 0, len(stepTypes))
	for k := range stepTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Spec builds a StepSpec from a step's parameters
func Spec(typ string, params any) StepSpec {
	raw, err := json.Marshal(params)
	if err != nil {
		panic(fmt.Sprintf("step %s params: %v", typ, err))
	}
	if string(raw) == "{}" || string(raw) == "null" {
		raw = nil
	}
	return StepSpec{Type: typ, Params: raw}
}

func (s StepSpec) decode() (gen.Step[*state.Map], error) {
	dec, ok := stepTypes[s.Type]
	if !ok {
		return nil, fmt.Errorf("%q: %w", s.Type, ErrUnknownStep)
	}
	return dec(s.Params)
}

// Validate reports every problem of the recipe at once
func (r Recipe) Validate() error {
	var err error
	if r.Name == "" {
		err = multierr.Append(err, errors.New("recipe has no name"))
	}
	if len(r.Steps) == 0 {
		err = multierr.Append(err, errors.New("recipe has no steps"))
	}
	for i, s := range r.Steps {
		if _, decErr := s.decode(); decErr != nil {
			err = multierr.Append(err, fmt.Errorf("step %d (%s): %w", i, s.Type, decErr))
		}
	}
	return err
}

// Build turns the recipe into a pipeline producing maps for level
func (r Recipe) Build(level int) (*gen.MapGen[*state.Map], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	mg := gen.NewMapGen(func() *state.Map { return state.NewMap(level) })
	for _, s := range r.Steps {
		step, err := s.decode()
		if err != nil {
			return nil, err
		}
		mg.Append(step)
	}
	return mg, nil
}

// LoadRecipe reads and validates a JSON recipe
func LoadRecipe(fs billy.Filesystem, path string) (Recipe, error) {
	var r Recipe
	f, err := fs.Open(path)
	if err != nil {
		return r, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return r, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("recipe %s: %w", path, err)
	}
	return r, nil
}

// SaveRecipe writes the recipe as indented JSON, creating parent
// directories as needed
func SaveRecipe(fs billy.Filesystem, path string, r Recipe) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
