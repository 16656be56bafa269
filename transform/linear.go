package transform

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
)

// LinearCombination reduces m terms element-wise to Σ cᵢ·termᵢ.
type LinearCombination struct {
	coefficients []float64
}

var _ Transform[float64, float64] = (*LinearCombination)(nil)

// NewLinearCombination returns a ManyToOne transform with the given coefficients,
// one per term.
func NewLinearCombination(coefficients ...float64) (*LinearCombination, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", errs.ErrInvalidParameter)
	}

	return &LinearCombination{coefficients: slices.Clone(coefficients)}, nil
}

// Coefficients returns a copy of the coefficients.
func (l *LinearCombination) Coefficients() []float64 {
	return slices.Clone(l.coefficients)
}

// Cardinality returns ManyToOne.
func (l *LinearCombination) Cardinality() Cardinality {
	return ManyToOne
}

// Map combines the terms of unit. The number of terms must equal the number of
// coefficients and all terms must have the same length.
func (l *LinearCombination) Map(unit [][]float64, _ *Config) ([]float64, error) {
	if len(unit) != len(l.coefficients) {
		return nil, fmt.Errorf("%w: %d terms for %d coefficients", errs.ErrShapeMismatch, len(unit), len(l.coefficients))
	}

	n := len(unit[0])
	out := make([]float64, n)
	for t, term := range unit {
		if len(term) != n {
			return nil, fmt.Errorf("%w: term %d has %d elements, want %d", errs.ErrShapeMismatch, t, len(term), n)
		}
		c := l.coefficients[t]
		for i, v := range term {
			out[i] += c * v
		}
	}

	return out, nil
}
