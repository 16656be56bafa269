package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/ndarray"
)

func cube(t *testing.T) *ndarray.Array[int] {
	t.Helper()

	data := make([]int, 24)
	for i := range data {
		data[i] = i
	}
	a, err := ndarray.New([]int{2, 3, 4}, data)
	require.NoError(t, err)
	require.NoError(t, a.SetAxis(1, ndarray.Axis{Name: "feature"}))

	return a
}

func TestResolve_Modes(t *testing.T) {
	a := cube(t)

	tests := []struct {
		name string
		dim  ndarray.Dim
		inds []int
		mode Mode
		axis int
	}{
		{"whole", ndarray.NoDim, nil, ModeWhole, -1},
		{"flat indexed", ndarray.NoDim, []int{0, 23}, ModeFlatIndexed, -1},
		{"axis", ndarray.DimAt(2), nil, ModeAxis, 2},
		{"named axis with inds", ndarray.DimNamed("feature"), []int{2}, ModeAxis, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Resolve(a, tt.dim, tt.inds)
			require.NoError(t, err)
			require.Equal(t, tt.mode, sel.Mode)
			require.Equal(t, tt.axis, sel.Axis)
			require.Equal(t, tt.inds, sel.Inds)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	a := cube(t)

	_, err := Resolve(a, ndarray.NoDim, []int{24})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = Resolve(a, ndarray.DimAt(1), []int{3})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = Resolve(a, ndarray.DimAt(0), []int{-1})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = Resolve(a, ndarray.DimNamed("time"), nil)
	require.ErrorIs(t, err, errs.ErrUnknownAxis)
}

func TestValues(t *testing.T) {
	a := cube(t)

	all, err := Values(a, ndarray.NoDim, nil)
	require.NoError(t, err)
	require.Len(t, all, 24)

	flat, err := Values(a, ndarray.NoDim, []int{3, 1})
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, flat)

	axisAll, err := Values(a, ndarray.DimAt(0), nil)
	require.NoError(t, err)
	require.Equal(t, all, axisAll)

	// feature position 2 of every (i, k)
	sub, err := Values(a, ndarray.DimNamed("feature"), []int{2})
	require.NoError(t, err)
	require.Equal(t, []int{8, 9, 10, 11, 20, 21, 22, 23}, sub)

	all[0] = -1
	require.Equal(t, 0, a.Data()[0])
}

func TestFibers(t *testing.T) {
	a := cube(t)
	l := a.Layout(1)
	pos := Positions(Selection{}, l.Len)
	require.Equal(t, []int{0, 1, 2}, pos)

	fiber := GatherFiber(a.Data(), l, 5, pos)
	require.Equal(t, []int{13, 17, 21}, fiber)

	ScatterFiber(a.Data(), l, 5, []int{0, 2}, []int{-1, -2})
	require.Equal(t, -1, a.At(1, 0, 1))
	require.Equal(t, 17, a.At(1, 1, 1))
	require.Equal(t, -2, a.At(1, 2, 1))
}

func TestHyperplanes(t *testing.T) {
	m, err := ndarray.FromRows([][]int{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	require.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, Hyperplanes(m, 0))
	require.Equal(t, [][]int{{1, 4}, {2, 5}, {3, 6}}, Hyperplanes(m, 1))
}

func TestSingletons(t *testing.T) {
	terms := Singletons([]float64{1, 2})
	require.Equal(t, [][]float64{{1}, {2}}, terms)

	terms[0] = append(terms[0], 9)
	require.Equal(t, [][]float64{{1, 9}, {2}}, terms)
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "whole", ModeWhole.String())
	require.Equal(t, "flat-indexed", ModeFlatIndexed.String())
	require.Equal(t, "axis", ModeAxis.String())
	require.Equal(t, "unknown", Mode(9).String())
}
