// Package featx applies feature transforms to numeric arrays and tables.
//
// A transform maps units of input values to output values and declares one of
// four cardinalities (one-to-one, one-to-many, many-to-one, many-to-many). The
// apply engine decides how a container is cut into units, verifies every Map
// call against the declared cardinality, and reassembles the results with
// axis metadata or column names preserved.
//
// # Basic Usage
//
// Scaling one column of a table in place:
//
//	import "github.com/arloliu/featx"
//
//	tbl, _ := table.New(
//	    table.Column[float64]{Name: "a", Values: []float64{1, 2, 3}},
//	    table.Column[float64]{Name: "b", Values: []float64{4, 5, 6}},
//	)
//	scaler, _ := transform.FitMeanStdScalingTable(tbl, transform.WithCols("a"))
//	_, _ = featx.ApplyTableInPlace(tbl, scaler, transform.WithCols("a"))
//
// Deriving a new array along a named axis:
//
//	sq, _ := featx.Apply(arr, transform.NewPower(2), transform.WithDims(ndarray.DimNamed("feature")))
//
// # Package Structure
//
// This package provides top-level wrappers around the apply and transform
// packages for the most common use cases. The transform package holds the
// concrete transforms and options, ndarray and table the containers, snapshot
// a compressed binary frame format for both, and pipeline a YAML-configured
// sequence of table steps.
package featx

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/arloliu/featx/apply"
	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

type container interface {
	ContainerKind() format.ContainerKind
}

// IsTransformable reports whether x is a container the apply engine accepts:
// a non-nil *ndarray.Array or *table.Table of any element type.
func IsTransformable(x any) bool {
	c, ok := x.(container)
	if !ok {
		return false
	}

	if v := reflect.ValueOf(c); v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}

	return true
}

// CardinalityOf returns the cardinality t declares. A nil transform has none:
// the zero Cardinality is returned, which is not Valid.
func CardinalityOf[In, Out any](t transform.Transform[In, Out]) transform.Cardinality {
	if t == nil {
		return 0
	}

	return t.Cardinality()
}

// Apply applies t to a and returns a new array. a is not modified.
//
// See apply.Array for how options select the units t is applied to.
func Apply[In, Out any](a *ndarray.Array[In], t transform.Transform[In, Out], opts ...transform.Option) (*ndarray.Array[Out], error) {
	return apply.Array(a, t, opts...)
}

// ApplyInPlace writes the result of a one-to-one transform back into a.
// On error a is left unchanged.
func ApplyInPlace[T any](a *ndarray.Array[T], t transform.Transform[T, T], opts ...transform.Option) (*ndarray.Array[T], error) {
	return apply.ArrayInPlace(a, t, opts...)
}

// ApplyAppend returns a copy of a with the result of t concatenated along
// appendDim, or stacked on a new trailing axis when appendDim names none of
// the existing axes.
func ApplyAppend[T any](a *ndarray.Array[T], t transform.Transform[T, T], appendDim ndarray.Dim, opts ...transform.Option) (*ndarray.Array[T], error) {
	return apply.ArrayAppend(a, t, appendDim, opts...)
}

// ApplyTable applies t to the selected columns of tbl and returns the
// produced columns. tbl is not modified.
func ApplyTable[In, Out any](tbl *table.Table[In], t transform.Transform[In, Out], opts ...transform.Option) ([]table.Column[Out], error) {
	return apply.Table(tbl, t, opts...)
}

// ApplyTableInPlace replaces the selected columns of tbl with the result of a
// one-to-one transform. Either every column is replaced or none is.
func ApplyTableInPlace[T any](tbl *table.Table[T], t transform.Transform[T, T], opts ...transform.Option) (*table.Table[T], error) {
	return apply.TableInPlace(tbl, t, opts...)
}

// ApplyTableAppend returns a new table holding copies of the columns of tbl
// followed by the columns t produces.
func ApplyTableAppend[T any](tbl *table.Table[T], t transform.Transform[T, T], opts ...transform.Option) (*table.Table[T], error) {
	return apply.TableAppend(tbl, t, opts...)
}

// ApplyAny dispatches on the dynamic type of x. An *ndarray.Array[In] yields
// an *ndarray.Array[Out]; a *table.Table[In] yields a []table.Column[Out].
// Anything else, including nil containers and containers of another element
// type, is rejected with errs.ErrUnsupportedData.
func ApplyAny[In, Out any](x any, t transform.Transform[In, Out], opts ...transform.Option) (any, error) {
	if !IsTransformable(x) {
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedData, x)
	}

	switch v := x.(type) {
	case *ndarray.Array[In]:
		return apply.Array(v, t, opts...)
	case *table.Table[In]:
		return apply.Table(v, t, opts...)
	default:
		var zero In
		return nil, fmt.Errorf("%w: %T does not hold %T elements", errs.ErrUnsupportedData, x, zero)
	}
}

// Bind wraps t in a callable value. See apply.Bound.
func Bind[In, Out any](t transform.Transform[In, Out]) apply.Bound[In, Out] {
	return apply.Bind(t)
}

// SetLogger installs the logger used by every featx package. A nil logger
// disables logging.
func SetLogger(l *zap.Logger) {
	logging.SetLogger(l)
}
