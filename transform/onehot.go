package transform

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
)

// OneHot encodes every element as an indicator vector over a fixed category
// list. A sequence of n elements becomes n·k values, element-major, where k is
// the number of categories.
type OneHot[T comparable] struct {
	categories []T
	index      map[T]int
}

var _ Transform[string, float64] = (*OneHot[string])(nil)
var _ FanOut = (*OneHot[string])(nil)

// NewOneHot returns a OneHot encoder over categories, in the given order.
// categories must be non-empty and free of duplicates.
func NewOneHot[T comparable](categories ...T) (*OneHot[T], error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", errs.ErrInvalidParameter)
	}

	index := make(map[T]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%w: duplicate category %v", errs.ErrInvalidParameter, c)
		}
		index[c] = i
	}

	return &OneHot[T]{categories: slices.Clone(categories), index: index}, nil
}

// Categories returns a copy of the category list.
func (o *OneHot[T]) Categories() []T {
	return slices.Clone(o.categories)
}

// Cardinality returns OneToMany.
func (o *OneHot[T]) Cardinality() Cardinality {
	return OneToMany
}

// Multiplier returns the number of categories.
func (o *OneHot[T]) Multiplier() int {
	return len(o.categories)
}

// Map encodes the single sequence of unit. A value outside the category list
// fails with ErrUnknownCategory.
func (o *OneHot[T]) Map(unit [][]T, _ *Config) ([]float64, error) {
	seq, err := single(unit)
	if err != nil {
		return nil, err
	}

	k := len(o.categories)
	out := make([]float64, len(seq)*k)
	for i, v := range seq {
		j, ok := o.index[v]
		if !ok {
			return nil, fmt.Errorf("%w: %v", errs.ErrUnknownCategory, v)
		}
		out[i*k+j] = 1
	}

	return out, nil
}
