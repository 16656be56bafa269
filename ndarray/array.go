package ndarray

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
)

// Axis is the optional metadata of one array axis.
// When Labels is non-nil its length equals the axis length.
type Axis struct {
	Name   string
	Labels []string
}

// Array is a rectangular, row-major container of elements of type T.
//
// Array is not safe for concurrent mutation. Concurrent reads are safe.
type Array[T any] struct {
	shape []int
	data  []T
	axes  []Axis
}

// New creates an array with the given shape backed by data.
//
// The array adopts data as its storage without copying it. The shape must have
// at least one axis, no negative lengths, and its product must equal len(data).
func New[T any](shape []int, data []T) (*Array[T], error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: array needs at least one axis", errs.ErrShapeMismatch)
	}

	size := 1
	for i, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: axis %d has negative length %d", errs.ErrShapeMismatch, i, n)
		}
		size *= n
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, got %d", errs.ErrShapeMismatch, shape, size, len(data))
	}

	return &Array[T]{
		shape: slices.Clone(shape),
		data:  data,
		axes:  make([]Axis, len(shape)),
	}, nil
}

// Must returns a or panics if err is non-nil. It is intended for literals in
// tests and examples.
func Must[T any](a *Array[T], err error) *Array[T] {
	if err != nil {
		panic(err)
	}

	return a
}

// FromSlice creates a 1-D array backed by data.
func FromSlice[T any](data []T) *Array[T] {
	return &Array[T]{
		shape: []int{len(data)},
		data:  data,
		axes:  make([]Axis, 1),
	}
}

// FromRows creates a 2-D array by copying rows. All rows must have equal length.
func FromRows[T any](rows [][]T) (*Array[T], error) {
	if len(rows) == 0 {
		return New([]int{0, 0}, []T{})
	}

	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", errs.ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return New([]int{len(rows), cols}, data)
}

// Zeros creates an array of the given shape filled with the zero value of T.
func Zeros[T any](shape ...int) (*Array[T], error) {
	size := 1
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative axis length %d", errs.ErrShapeMismatch, n)
		}
		size *= n
	}

	return New(shape, make([]T, size))
}

// ContainerKind identifies Array as a transformable numeric container.
func (a *Array[T]) ContainerKind() format.ContainerKind {
	return format.KindArray
}

// NDim returns the number of axes.
func (a *Array[T]) NDim() int {
	return len(a.shape)
}

// Shape returns a copy of the array shape.
func (a *Array[T]) Shape() []int {
	return slices.Clone(a.shape)
}

// Size returns the length of axis.
func (a *Array[T]) Size(axis int) int {
	return a.shape[axis]
}

// Len returns the total number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Data returns the row-major storage. Writes through the returned slice modify the array.
func (a *Array[T]) Data() []T {
	return a.data
}

// Flatten returns a row-major copy of the elements.
func (a *Array[T]) Flatten() []T {
	return slices.Clone(a.data)
}

// At returns the element at the given multi-index. It panics if the index is
// out of range, like slice indexing.
func (a *Array[T]) At(idx ...int) T {
	return a.data[a.offset(idx)]
}

// Set stores v at the given multi-index. It panics if the index is out of range.
func (a *Array[T]) Set(v T, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array[T]) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for %d-dimensional array", len(idx), len(a.shape)))
	}

	off := 0
	for i, n := range a.shape {
		if idx[i] < 0 || idx[i] >= n {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d with length %d", idx[i], i, n))
		}
		off = off*n + idx[i]
	}

	return off
}

// Clone returns a deep copy of the array, including axis metadata.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape: slices.Clone(a.shape),
		data:  slices.Clone(a.data),
		axes:  cloneAxes(a.axes),
	}
}

// Axis returns a copy of the metadata of axis.
func (a *Array[T]) Axis(axis int) Axis {
	ax := a.axes[axis]
	return Axis{Name: ax.Name, Labels: slices.Clone(ax.Labels)}
}

// AxisIndex returns the position of the axis named name.
func (a *Array[T]) AxisIndex(name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	for i, ax := range a.axes {
		if ax.Name == name {
			return i, true
		}
	}

	return -1, false
}

// SetAxis attaches metadata to axis. Labels, when non-nil, must have one entry
// per position, and a non-empty name must not be used by another axis.
func (a *Array[T]) SetAxis(axis int, meta Axis) error {
	if axis < 0 || axis >= len(a.shape) {
		return fmt.Errorf("%w: axis %d of %d-dimensional array", errs.ErrUnknownAxis, axis, len(a.shape))
	}
	if meta.Labels != nil && len(meta.Labels) != a.shape[axis] {
		return fmt.Errorf("%w: %d labels for axis %d with length %d", errs.ErrShapeMismatch, len(meta.Labels), axis, a.shape[axis])
	}
	if pos, ok := a.AxisIndex(meta.Name); ok && pos != axis {
		return fmt.Errorf("%w: axis name %q already used by axis %d", errs.ErrInvalidParameter, meta.Name, pos)
	}

	a.axes[axis] = Axis{Name: meta.Name, Labels: slices.Clone(meta.Labels)}

	return nil
}

// String returns a compact description of shape and elements.
func (a *Array[T]) String() string {
	return fmt.Sprintf("Array%v%v", a.shape, a.data)
}

// Layout returns the fiber layout along axis.
func (a *Array[T]) Layout(axis int) Layout {
	outer, inner := 1, 1
	for i := range axis {
		outer *= a.shape[i]
	}
	for i := axis + 1; i < len(a.shape); i++ {
		inner *= a.shape[i]
	}

	return Layout{Outer: outer, Len: a.shape[axis], Inner: inner}
}

// Layout describes the 1-D fibers running along one axis of a row-major array.
//
// A fiber fixes every index except the one of the chosen axis. There are
// Outer*Inner fibers, each of Len elements; element k of fiber f lives at
// Offset(f, k) in the flat storage.
type Layout struct {
	Outer int // product of the lengths of the axes before the chosen one
	Len   int // length of the chosen axis
	Inner int // product of the lengths of the axes after the chosen one
}

// Count returns the number of fibers.
func (l Layout) Count() int {
	return l.Outer * l.Inner
}

// Offset returns the flat offset of element k of fiber f.
func (l Layout) Offset(f, k int) int {
	if l.Inner == 0 {
		return 0
	}

	return (f/l.Inner)*l.Len*l.Inner + k*l.Inner + f%l.Inner
}

// WithLen returns the layout of the same fibers after the chosen axis is resized to n.
func (l Layout) WithLen(n int) Layout {
	return Layout{Outer: l.Outer, Len: n, Inner: l.Inner}
}

func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, ax := range axes {
		out[i] = Axis{Name: ax.Name, Labels: slices.Clone(ax.Labels)}
	}

	return out
}
