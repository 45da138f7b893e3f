package posture

import (
	"encoding/json"
	"fmt"
)

// Finding is the outcome of one check: either a value was found or it was
// not. Absence is never encoded as a zero value.
type Finding[T any] struct {
	Value   T
	Present bool
}

// Some returns a present finding.
func Some[T any](v T) Finding[T] {
	return Finding[T]{Value: v, Present: true}
}

// None returns an absent finding.
func None[T any]() Finding[T] {
	return Finding[T]{}
}

// Get returns the value and whether it is present.
func (f Finding[T]) Get() (T, bool) {
	return f.Value, f.Present
}

func (f Finding[T]) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f Finding[T]) MarshalYAML() (any, error) {
	if !f.Present {
		return nil, nil
	}
	return f.Value, nil
}

// String renders a finding for log lines.
func (f Finding[T]) String() string {
	if !f.Present {
		return "<none>"
	}
	return fmt.Sprint(f.Value)
}
