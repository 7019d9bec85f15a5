package roomgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"roomweaver/pkg/engine/pick"
)

// ErrUnknownShape is returned for a shape type with no registered constructor
var ErrUnknownShape = errors.New("unknown shape type")

var shapeTypes = map[string]func() RoomGen{
	"cross":    func() RoomGen { return &Cross{} },
	"hall":     func() RoomGen { return &Hall{} },
	"specific": func() RoomGen { return &Specific{} },
	"square":   func() RoomGen { return &Square{} },
}

// ShapeTypes returns the shape names a recipe may use, sorted
func ShapeTypes() []string {
	names := make([]string, 0, len(shapeTypes))
	for name := range shapeTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func shapeType(g RoomGen) (string, error) {
	t := reflect.TypeOf(g)
	for name, ctor := range shapeTypes {
		if reflect.TypeOf(ctor()) == t {
			return name, nil
		}
	}
	return "", fmt.Errorf("%T: %w", g, ErrUnknownShape)
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type shapeJSON struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
}

func encodeShape(g RoomGen) (shapeJSON, error) {
	typ, err := shapeType(g)
	if err != nil {
		return shapeJSON{}, err
	}
	params, err := json.Marshal(g)
	if err != nil {
		return shapeJSON{}, fmt.Errorf("%s shape: %w", typ, err)
	}
	if string(params) == "{}" {
		params = nil
	}
	return shapeJSON{Type: typ, Params: params}, nil
}

func decodeShape(typ string, params json.RawMessage) (RoomGen, error) {
	ctor, ok := shapeTypes[typ]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typ, ErrUnknownShape)
	}
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	g := ctor()
	if err := decodeStrict(params, g); err != nil {
		return nil, fmt.Errorf("%s shape: %w", typ, err)
	}
	return g, nil
}

// Shape is a RoomGen in the form recipes store it:
// {"type": "cross", "params": {...}}
type Shape struct {
	RoomGen
}

func (s Shape) MarshalJSON() ([]byte, error) {
	if s.RoomGen == nil {
		return []byte("null"), nil
	}
	j, err := encodeShape(s.RoomGen)
	if err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

func (s *Shape) UnmarshalJSON(data []byte) error {
	var j shapeJSON
	if err := decodeStrict(data, &j); err != nil {
		return err
	}
	g, err := decodeShape(j.Type, j.Params)
	if err != nil {
		return err
	}
	s.RoomGen = g
	return nil
}

// Or returns the shape, or def when none is set
func (s *Shape) Or(def RoomGen) RoomGen {
	if s == nil || s.RoomGen == nil {
		return def
	}
	return s.RoomGen
}

// Choice is a shape with the weight it is picked with
type Choice struct {
	Shape
	Weight int
}

// Weighted pairs a shape with its pick weight
func Weighted(g RoomGen, weight int) Choice {
	return Choice{Shape: Shape{RoomGen: g}, Weight: weight}
}

type choiceJSON struct {
	Type   string          `json:"type"`
	Weight int             `json:"weight"`
	Params json.RawMessage `json:"params,omitempty"`
}

func (c Choice) MarshalJSON() ([]byte, error) {
	j, err := encodeShape(c.RoomGen)
	if err != nil {
		return nil, err
	}
	return json.Marshal(choiceJSON{Type: j.Type, Weight: c.Weight, Params: j.Params})
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	var j choiceJSON
	if err := decodeStrict(data, &j); err != nil {
		return err
	}
	if j.Weight < 1 {
		return fmt.Errorf("%s shape weight %d: %w", j.Type, j.Weight, pick.ErrOutOfRange)
	}
	g, err := decodeShape(j.Type, j.Params)
	if err != nil {
		return err
	}
	c.RoomGen, c.Weight = g, j.Weight
	return nil
}

// Choices is a weighted list of shapes
type Choices []Choice

// SpawnList builds the picker the choices describe
func (c Choices) SpawnList() (*pick.SpawnList[RoomGen], error) {
	list := pick.NewSpawnList[RoomGen]()
	for i, ch := range c {
		if ch.RoomGen == nil {
			return nil, fmt.Errorf("choice %d has no shape", i)
		}
		if err := list.Add(ch.RoomGen, ch.Weight); err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
	}
	return list, nil
}
