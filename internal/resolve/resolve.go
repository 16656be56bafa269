// Package resolve turns a dimension selector and an index selector into the
// concrete units the apply engine hands to a transform.
//
// Four combinations exist:
//
//	dim   inds   mode             unit(s)
//	none  none   ModeWhole        the whole array, flattened
//	none  set    ModeFlatIndexed  the flattened array restricted to flat positions
//	axis  none   ModeAxis         one fiber per position of the other axes
//	axis  set    ModeAxis         as above, over the sub-array at those axis positions
package resolve

import (
	"fmt"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/ndarray"
)

// Mode is the resolution mode of a selection.
type Mode uint8

const (
	ModeWhole Mode = iota
	ModeFlatIndexed
	ModeAxis
)

func (m Mode) String() string {
	switch m {
	case ModeWhole:
		return "whole"
	case ModeFlatIndexed:
		return "flat-indexed"
	case ModeAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// Selection is a resolved (dim, inds) pair.
type Selection struct {
	Mode Mode
	// Axis is the selected axis for ModeAxis, -1 otherwise.
	Axis int
	// Inds holds flat positions for ModeFlatIndexed and axis positions for
	// ModeAxis. Nil means every position.
	Inds []int
}

// Resolve validates dim and inds against a and returns the selection.
// Index positions are checked against the flat length or the axis length.
func Resolve[T any](a *ndarray.Array[T], dim ndarray.Dim, inds []int) (Selection, error) {
	axis, err := a.ResolveDim(dim)
	if err != nil {
		return Selection{}, err
	}

	limit := a.Len()
	mode := ModeWhole
	if axis >= 0 {
		limit = a.Size(axis)
		mode = ModeAxis
	} else if inds != nil {
		mode = ModeFlatIndexed
	}

	for _, i := range inds {
		if i < 0 || i >= limit {
			if axis >= 0 {
				return Selection{}, fmt.Errorf("%w: position %d on axis %d with length %d", errs.ErrIndexOutOfRange, i, axis, limit)
			}

			return Selection{}, fmt.Errorf("%w: flat position %d of %d elements", errs.ErrIndexOutOfRange, i, limit)
		}
	}

	return Selection{Mode: mode, Axis: axis, Inds: inds}, nil
}

// AxisSource returns the array the fibers of an axis selection are drawn from:
// a itself, or the sub-array at the selected axis positions.
func AxisSource[T any](a *ndarray.Array[T], sel Selection) (*ndarray.Array[T], error) {
	if sel.Mode != ModeAxis || sel.Inds == nil {
		return a, nil
	}

	return a.SelectAxis(sel.Axis, sel.Inds)
}

// Values returns a flat copy of the elements covered by (dim, inds). It is the
// scope used when fitting statistics: a dim without inds covers the whole array.
func Values[T any](a *ndarray.Array[T], dim ndarray.Dim, inds []int) ([]T, error) {
	sel, err := Resolve(a, dim, inds)
	if err != nil {
		return nil, err
	}

	switch sel.Mode {
	case ModeFlatIndexed:
		return a.Gather(sel.Inds)
	case ModeAxis:
		src, err := AxisSource(a, sel)
		if err != nil {
			return nil, err
		}
		if src == a {
			return a.Flatten(), nil
		}

		return src.Data(), nil
	default:
		return a.Flatten(), nil
	}
}

// Positions returns the axis positions of sel, expanding nil to 0..n-1.
func Positions(sel Selection, n int) []int {
	if sel.Inds != nil {
		return sel.Inds
	}

	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}

	return pos
}

// GatherFiber copies the elements of fiber f at the given axis positions into a new slice.
func GatherFiber[T any](data []T, l ndarray.Layout, f int, positions []int) []T {
	out := make([]T, len(positions))
	for k, p := range positions {
		out[k] = data[l.Offset(f, p)]
	}

	return out
}

// ScatterFiber writes src into fiber f at the given axis positions.
func ScatterFiber[T any](data []T, l ndarray.Layout, f int, positions []int, src []T) {
	for k, p := range positions {
		data[l.Offset(f, p)] = src[k]
	}
}

// Hyperplanes returns one flat slice per position of axis, each holding the
// elements at that position in fiber order. They are the terms of a
// many-to-one reduction along axis.
func Hyperplanes[T any](a *ndarray.Array[T], axis int) [][]T {
	l := a.Layout(axis)
	data := a.Data()
	terms := make([][]T, l.Len)
	for k := range l.Len {
		term := make([]T, l.Count())
		for f := range term {
			term[f] = data[l.Offset(f, k)]
		}
		terms[k] = term
	}

	return terms
}

// Singletons wraps every element of values into its own one-element term, the
// many-to-one view of a flat sequence.
func Singletons[T any](values []T) [][]T {
	terms := make([][]T, len(values))
	for i := range values {
		terms[i] = values[i : i+1 : i+1]
	}

	return terms
}
