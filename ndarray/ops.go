package ndarray

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
)

// SelectAxis returns a new array holding only the given positions along axis,
// in the given order. Labels of that axis are narrowed to the same positions;
// all other metadata is kept.
func (a *Array[T]) SelectAxis(axis int, inds []int) (*Array[T], error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d of %d-dimensional array", errs.ErrUnknownAxis, axis, len(a.shape))
	}

	n := a.shape[axis]
	for _, i := range inds {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: position %d on axis %d with length %d", errs.ErrIndexOutOfRange, i, axis, n)
		}
	}

	src := a.Layout(axis)
	dst := src.WithLen(len(inds))
	data := make([]T, dst.Count()*dst.Len)
	for f := range src.Count() {
		for k, i := range inds {
			data[dst.Offset(f, k)] = a.data[src.Offset(f, i)]
		}
	}

	shape := slices.Clone(a.shape)
	shape[axis] = len(inds)
	out := &Array[T]{shape: shape, data: data, axes: cloneAxes(a.axes)}
	if labels := a.axes[axis].Labels; labels != nil {
		narrowed := make([]string, len(inds))
		for k, i := range inds {
			narrowed[k] = labels[i]
		}
		out.axes[axis].Labels = narrowed
	}

	return out, nil
}

// Gather returns the elements at the given flat row-major positions.
func (a *Array[T]) Gather(inds []int) ([]T, error) {
	out := make([]T, len(inds))
	for k, i := range inds {
		if i < 0 || i >= len(a.data) {
			return nil, fmt.Errorf("%w: flat position %d of %d elements", errs.ErrIndexOutOfRange, i, len(a.data))
		}
		out[k] = a.data[i]
	}

	return out, nil
}

// Concat joins arrays along an existing axis. All arrays must have the same
// rank and equal lengths on every other axis.
//
// Metadata is taken from the first array. The joined axis keeps its name but
// loses its labels, since its positions no longer match them.
func Concat[T any](axis int, arrays ...*Array[T]) (*Array[T], error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", errs.ErrEmptySelection)
	}

	first := arrays[0]
	if axis < 0 || axis >= len(first.shape) {
		return nil, fmt.Errorf("%w: axis %d of %d-dimensional array", errs.ErrUnknownAxis, axis, len(first.shape))
	}

	total := 0
	for i, arr := range arrays {
		if len(arr.shape) != len(first.shape) {
			return nil, fmt.Errorf("%w: array %d has rank %d, want %d", errs.ErrShapeMismatch, i, len(arr.shape), len(first.shape))
		}
		for d := range first.shape {
			if d != axis && arr.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("%w: array %d has shape %v, want %v off axis %d", errs.ErrShapeMismatch, i, arr.shape, first.shape, axis)
			}
		}
		total += arr.shape[axis]
	}

	shape := slices.Clone(first.shape)
	shape[axis] = total
	dst := first.Layout(axis).WithLen(total)
	data := make([]T, dst.Count()*total)

	base := 0
	for _, arr := range arrays {
		src := arr.Layout(axis)
		for f := range src.Count() {
			for k := range src.Len {
				data[dst.Offset(f, base+k)] = arr.data[src.Offset(f, k)]
			}
		}
		base += src.Len
	}

	axes := cloneAxes(first.axes)
	axes[axis].Labels = nil

	return &Array[T]{shape: shape, data: data, axes: axes}, nil
}

// Stack joins equally shaped arrays along a new axis inserted at position axis
// (0 ≤ axis ≤ rank). The new axis is named name and has no labels; the other
// axes take their metadata from the first array.
func Stack[T any](axis int, name string, arrays ...*Array[T]) (*Array[T], error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", errs.ErrEmptySelection)
	}

	first := arrays[0]
	if axis < 0 || axis > len(first.shape) {
		return nil, fmt.Errorf("%w: cannot insert axis %d into %d-dimensional array", errs.ErrUnknownAxis, axis, len(first.shape))
	}
	for i, arr := range arrays {
		if !slices.Equal(arr.shape, first.shape) {
			return nil, fmt.Errorf("%w: array %d has shape %v, want %v", errs.ErrShapeMismatch, i, arr.shape, first.shape)
		}
	}
	if pos, ok := first.AxisIndex(name); ok {
		return nil, fmt.Errorf("%w: axis name %q already used by axis %d", errs.ErrInvalidParameter, name, pos)
	}

	shape := slices.Insert(slices.Clone(first.shape), axis, len(arrays))
	out := &Array[T]{
		shape: shape,
		data:  make([]T, len(first.data)*len(arrays)),
		axes:  slices.Insert(cloneAxes(first.axes), axis, Axis{Name: name}),
	}

	dst := out.Layout(axis)
	// every source element is one fiber position of the new axis
	for k, arr := range arrays {
		for f := range dst.Count() {
			out.data[dst.Offset(f, k)] = arr.data[f]
		}
	}

	return out, nil
}

// InheritAxes copies axis metadata from src onto dst for the leading axes the
// two arrays share. Names are always carried over; labels only when the axis
// length is unchanged, otherwise the axis becomes positional.
func InheritAxes[T, U any](dst *Array[U], src *Array[T]) {
	n := min(len(dst.shape), len(src.shape))
	for i := range n {
		dst.axes[i].Name = src.axes[i].Name
		dst.axes[i].Labels = nil
		if dst.shape[i] == src.shape[i] {
			dst.axes[i].Labels = slices.Clone(src.axes[i].Labels)
		}
	}
}
