package apply

import (
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

// Bound is a transform bound to the apply engine, usable as a function value.
type Bound[In, Out any] struct {
	t transform.Transform[In, Out]
}

// Bind wraps t so that Call(x, opts...) is equivalent to Array(x, t, opts...).
func Bind[In, Out any](t transform.Transform[In, Out]) Bound[In, Out] {
	return Bound[In, Out]{t: t}
}

// Transform returns the wrapped transform.
func (b Bound[In, Out]) Transform() transform.Transform[In, Out] {
	return b.t
}

// Call applies the wrapped transform to a; see Array.
func (b Bound[In, Out]) Call(a *ndarray.Array[In], opts ...transform.Option) (*ndarray.Array[Out], error) {
	return Array(a, b.t, opts...)
}

// CallTable applies the wrapped transform to tbl; see Table.
func (b Bound[In, Out]) CallTable(tbl *table.Table[In], opts ...transform.Option) ([]table.Column[Out], error) {
	return Table(tbl, b.t, opts...)
}
