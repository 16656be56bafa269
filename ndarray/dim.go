package ndarray

import (
	"fmt"
	"strconv"

	"github.com/arloliu/featx/errs"
)

type dimKind uint8

const (
	dimNone dimKind = iota
	dimIndex
	dimName
)

// Dim selects an axis of an Array by 0-based position or by name.
// The zero value selects no axis, which means "operate on the flattened array".
type Dim struct {
	kind  dimKind
	index int
	name  string
}

// NoDim is the zero Dim.
var NoDim = Dim{}

// DimAt selects the axis at position i.
func DimAt(i int) Dim {
	return Dim{kind: dimIndex, index: i}
}

// DimNamed selects the axis whose metadata name is name.
func DimNamed(name string) Dim {
	return Dim{kind: dimName, name: name}
}

// IsNone reports whether d selects no axis.
func (d Dim) IsNone() bool {
	return d.kind == dimNone
}

// Index returns the position held by d and whether d was built with DimAt.
func (d Dim) Index() (int, bool) {
	return d.index, d.kind == dimIndex
}

// Name returns the name held by d and whether d was built with DimNamed.
func (d Dim) Name() (string, bool) {
	return d.name, d.kind == dimName
}

func (d Dim) String() string {
	switch d.kind {
	case dimIndex:
		return strconv.Itoa(d.index)
	case dimName:
		return strconv.Quote(d.name)
	default:
		return ":"
	}
}

// ResolveDim returns the axis position selected by d, or -1 for NoDim.
func (a *Array[T]) ResolveDim(d Dim) (int, error) {
	switch d.kind {
	case dimNone:
		return -1, nil
	case dimIndex:
		if d.index < 0 || d.index >= len(a.shape) {
			return 0, fmt.Errorf("%w: axis %d of %d-dimensional array", errs.ErrUnknownAxis, d.index, len(a.shape))
		}

		return d.index, nil
	default:
		axis, ok := a.AxisIndex(d.name)
		if !ok {
			return 0, fmt.Errorf("%w: no axis named %q", errs.ErrUnknownAxis, d.name)
		}

		return axis, nil
	}
}
