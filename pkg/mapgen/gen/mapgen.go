package gen

import (
	"fmt"
	"reflect"
)

// Step is one unit of generation work over a context of type T
type Step[T any] interface {
	Apply(ctx T) error
}

// StepFunc adapts a function to a Step
type StepFunc[T any] func(ctx T) error

func (f StepFunc[T]) Apply(ctx T) error {
	return f(ctx)
}

// MapGen runs its steps in order on a fresh context
type MapGen[T Context] struct {
	Steps []Step[T]
	// NewContext builds the empty context each run starts from
	NewContext func() T
}

// NewMapGen creates a pipeline over contexts built by newContext
func NewMapGen[T Context](newContext func() T, steps ...Step[T]) *MapGen[T] {
	return &MapGen[T]{Steps: steps, NewContext: newContext}
}

// Append adds steps to the end of the pipeline
func (m *MapGen[T]) Append(steps ...Step[T]) {
	m.Steps = append(m.Steps, steps...)
}

// Generate seeds a new context and applies every step. The first failing
// step aborts the run; the partial context is returned with the error.
func (m *MapGen[T]) Generate(seed uint64) (T, error) {
	ctx := m.NewContext()
	ctx.InitSeed(seed)
	DebugProgress("seed %d", seed)

	for i, step := range m.Steps {
		DebugProgress("step %d: %s", i, StepName(step))
		if err := step.Apply(ctx); err != nil {
			return ctx, fmt.Errorf("step %d (%s): %w", i, StepName(step), err)
		}
	}
	return ctx, nil
}

// StepName is the display name of a step: its String method when it has one,
// otherwise its type name
func StepName(step any) string {
	if s, ok := step.(fmt.Stringer); ok {
		return s.String()
	}
	t := reflect.TypeOf(step)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
