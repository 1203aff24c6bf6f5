package enum

import (
	"fmt"
	"reflect"
)

var registry = map[reflect.Type]any{}

type values[T comparable] struct {
	byName  map[string]T
	ordered []T
}

// New registers a value of a string-backed enum type and returns it, so
// enum members can be declared as package-level vars.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	vs, ok := registry[t].(*values[T])
	if !ok {
		vs = &values[T]{byName: make(map[string]T)}
		registry[t] = vs
	}

	name := reflect.ValueOf(value).String()
	if _, exists := vs.byName[name]; !exists {
		vs.byName[name] = value
		vs.ordered = append(vs.ordered, value)
	}

	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var zero T
	vs, ok := registry[reflect.TypeOf(zero)].(*values[T])
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := vs.byName[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}

// All returns every registered member of T in registration order.
func All[T comparable]() []T {
	var zero T
	vs, ok := registry[reflect.TypeOf(zero)].(*values[T])
	if !ok {
		return nil
	}

	return append([]T(nil), vs.ordered...)
}
