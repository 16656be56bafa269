package transform

import (
	"fmt"

	"github.com/arloliu/featx/errs"
)

// Transform maps units of In values to Out values.
//
// Map must not retain or mutate unit. The engine verifies every output
// against the declared Cardinality.
type Transform[In, Out any] interface {
	Cardinality() Cardinality
	Map(unit [][]In, cfg *Config) ([]Out, error)
}

// FanOut is implemented by OneToMany transforms that know their multiplier k
// before running, so produced column counts can be validated up front.
type FanOut interface {
	Multiplier() int
}

// Elementwise lifts a scalar function into a OneToOne transform.
type Elementwise[In, Out any] struct {
	fn func(In) Out
}

var _ Transform[float64, float64] = (*Elementwise[float64, float64])(nil)

// NewElementwise returns a OneToOne transform applying fn to every element.
func NewElementwise[In, Out any](fn func(In) Out) *Elementwise[In, Out] {
	return &Elementwise[In, Out]{fn: fn}
}

// Cardinality returns OneToOne.
func (e *Elementwise[In, Out]) Cardinality() Cardinality {
	return OneToOne
}

// Map applies the function to every element of the single sequence in unit.
func (e *Elementwise[In, Out]) Map(unit [][]In, _ *Config) ([]Out, error) {
	seq, err := single(unit)
	if err != nil {
		return nil, err
	}

	out := make([]Out, len(seq))
	for i, v := range seq {
		out[i] = e.fn(v)
	}

	return out, nil
}

// single returns the only sequence of a unit handed to a non-grouping transform.
func single[T any](unit [][]T) ([]T, error) {
	if len(unit) != 1 {
		return nil, fmt.Errorf("%w: expected one sequence, got %d", errs.ErrShapeMismatch, len(unit))
	}

	return unit[0], nil
}

// mapFloat applies fn to the only sequence of unit.
func mapFloat(unit [][]float64, fn func(float64) float64) ([]float64, error) {
	seq, err := single(unit)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = fn(v)
	}

	return out, nil
}
