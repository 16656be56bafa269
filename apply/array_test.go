package apply

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/transform"
)

func TestArray_Whole(t *testing.T) {
	m := matrix(t)

	t.Run("OneToOne keeps shape and metadata", func(t *testing.T) {
		out, err := Array(m, transform.NewPower(2))
		require.NoError(t, err)
		require.Equal(t, []int{2, 3}, out.Shape())
		require.Equal(t, []float64{1, 4, 9, 16, 25, 36}, out.Data())
		require.Equal(t, m.Axis(0), out.Axis(0))
		require.Equal(t, m.Axis(1), out.Axis(1))
		require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
	})

	t.Run("OneToMany adds a trailing axis", func(t *testing.T) {
		codes, err := ndarray.FromRows([][]int{{0, 1}, {1, 0}})
		require.NoError(t, err)
		enc, err := transform.NewOneHot(0, 1)
		require.NoError(t, err)

		out, err := Array(codes, enc)
		require.NoError(t, err)
		require.Equal(t, []int{2, 2, 2}, out.Shape())
		require.Equal(t, []float64{1, 0, 0, 1, 0, 1, 1, 0}, out.Data())
		require.Equal(t, 1.0, out.At(1, 0, 1))
	})

	t.Run("ManyToOne reduces to one element", func(t *testing.T) {
		sum, err := transform.NewLinearCombination(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)

		out, err := Array(m, sum)
		require.NoError(t, err)
		require.Equal(t, []int{1}, out.Shape())
		require.Equal(t, []float64{21}, out.Data())
	})

	t.Run("ManyToMany is flat", func(t *testing.T) {
		out, err := Array(m, diff{})
		require.NoError(t, err)
		require.Equal(t, []int{5}, out.Shape())
		require.Equal(t, []float64{1, 1, 1, 1, 1}, out.Data())
	})
}

func TestArray_OneHotScenario(t *testing.T) {
	enc, err := transform.NewOneHot("cold", "hot")
	require.NoError(t, err)

	one, err := Array(ndarray.FromSlice([]string{"hot"}), enc)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1}, one.Flatten())

	three, err := Array(ndarray.FromSlice([]string{"hot", "cold", "hot"}), enc)
	require.NoError(t, err)
	require.Len(t, three.Flatten(), 6)
	require.Equal(t, []int{3, 2}, three.Shape())
}

func TestArray_FlatIndexed(t *testing.T) {
	m := matrix(t)

	out, err := Array(m, transform.NewPower(2), transform.WithInds(5, 0))
	require.NoError(t, err)
	require.Equal(t, []int{2}, out.Shape())
	require.Equal(t, []float64{36, 1}, out.Data())
	require.Equal(t, ndarray.Axis{}, out.Axis(0))

	sum, err := transform.NewLinearCombination(1, 1)
	require.NoError(t, err)
	out, err = Array(m, sum, transform.WithInds(1, 2))
	require.NoError(t, err)
	require.Equal(t, []float64{5}, out.Data())

	_, err = Array(m, transform.NewPower(2), transform.WithInds(6))
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArray_Axis(t *testing.T) {
	m := matrix(t)

	t.Run("OneToOne per fiber", func(t *testing.T) {
		rows, err := Array(m, center{}, transform.WithDims(ndarray.DimAt(1)))
		require.NoError(t, err)
		require.Equal(t, []float64{-1, 0, 1, -1, 0, 1}, rows.Data())
		require.Equal(t, m.Axis(1), rows.Axis(1))

		cols, err := Array(m, center{}, transform.WithDims(ndarray.DimNamed("row")))
		require.NoError(t, err)
		require.Equal(t, []float64{-1.5, -1.5, -1.5, 1.5, 1.5, 1.5}, cols.Data())
	})

	t.Run("OneToMany fans the axis out", func(t *testing.T) {
		out, err := Array(m, mirror{}, transform.WithDims(ndarray.DimNamed("feature")))
		require.NoError(t, err)
		require.Equal(t, []int{2, 6}, out.Shape())
		require.Equal(t, []float64{1, -1, 2, -2, 3, -3, 4, -4, 5, -5, 6, -6}, out.Data())
		require.Equal(t, ndarray.Axis{Name: "feature"}, out.Axis(1))
		require.Equal(t, m.Axis(0), out.Axis(0))
	})

	t.Run("ManyToOne collapses the axis", func(t *testing.T) {
		delta, err := transform.NewLinearCombination(1, -1)
		require.NoError(t, err)

		out, err := Array(m, delta, transform.WithDims(ndarray.DimAt(0)))
		require.NoError(t, err)
		require.Equal(t, []int{1, 3}, out.Shape())
		require.Equal(t, []float64{-3, -3, -3}, out.Data())
		require.Equal(t, ndarray.Axis{Name: "row"}, out.Axis(0))
		require.Equal(t, m.Axis(1), out.Axis(1))

		sum, err := transform.NewLinearCombination(1, 1, 1)
		require.NoError(t, err)
		out, err = Array(m, sum, transform.WithDims(ndarray.DimAt(1)))
		require.NoError(t, err)
		require.Equal(t, []int{2, 1}, out.Shape())
		require.Equal(t, []float64{6, 15}, out.Data())
	})

	t.Run("ManyToMany sets the axis length", func(t *testing.T) {
		out, err := Array(m, diff{}, transform.WithDims(ndarray.DimAt(1)))
		require.NoError(t, err)
		require.Equal(t, []int{2, 2}, out.Shape())
		require.Equal(t, []float64{1, 1, 1, 1}, out.Data())
	})

	t.Run("inds select a sub-array", func(t *testing.T) {
		out, err := Array(m, center{}, transform.WithDims(ndarray.DimAt(1)), transform.WithInds(0, 2))
		require.NoError(t, err)
		require.Equal(t, []int{2, 2}, out.Shape())
		require.Equal(t, []float64{-1, 1, -1, 1}, out.Data())
		require.Equal(t, []string{"a", "c"}, out.Axis(1).Labels)
	})

	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
}

func TestArray_ThreeDimensional(t *testing.T) {
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := ndarray.New([]int{2, 3, 4}, data)
	require.NoError(t, err)

	out, err := Array(a, center{}, transform.WithDims(ndarray.DimAt(1)))
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, out.Shape())
	for i := range 2 {
		for k := range 4 {
			require.Equal(t, -4.0, out.At(i, 0, k))
			require.Equal(t, 0.0, out.At(i, 1, k))
			require.Equal(t, 4.0, out.At(i, 2, k))
		}
	}
}

func TestArray_PeriodicScenario(t *testing.T) {
	x := make([]float64, 11)
	for i := range x {
		x[i] = float64(i)
	}
	a := ndarray.FromSlice(x)

	p, err := transform.NewPeriodic(transform.Sin, 5, 2)
	require.NoError(t, err)

	out, err := Array(a, p)
	require.NoError(t, err)
	for i, v := range x {
		require.InDelta(t, math.Sin(2*math.Pi/5*v+2), out.At(i), 1e-12)
	}

	called, err := Bind(p).Call(a)
	require.NoError(t, err)
	require.Equal(t, out.Data(), called.Data())
	require.Equal(t, out.Shape(), called.Shape())
}

func TestArray_Errors(t *testing.T) {
	m := matrix(t)

	_, err := Array(m, transform.NewPower(2), transform.WithDims(ndarray.DimNamed("time")))
	require.ErrorIs(t, err, errs.ErrUnknownAxis)

	_, err = Array(m, transform.NewPower(2), transform.WithDims(ndarray.DimAt(0)), transform.WithInds(2))
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = Array(m, broken{})
	require.ErrorIs(t, err, errs.ErrCardinalityViolation)

	_, err = Array(m, broken{}, transform.WithDims(ndarray.DimAt(1)))
	require.ErrorIs(t, err, errs.ErrCardinalityViolation)

	_, err = Array(m, newFailAfter(1), transform.WithDims(ndarray.DimAt(1)))
	require.ErrorIs(t, err, errBoom)

	_, err = Array(nil, transform.NewPower(2))
	require.ErrorIs(t, err, errs.ErrUnsupportedData)

	_, err = Array(m, transform.NewPower(2), transform.WithEpsilon(-1))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	var none transform.Transform[float64, float64]
	_, err = Array(m, none)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestArray_Scaling(t *testing.T) {
	m, err := ndarray.FromRows([][]float64{{0, -0.5, 0.5}, {0, 1, 2}})
	require.NoError(t, err)

	id, err := Array(m, transform.IdentityScaling{})
	require.NoError(t, err)
	require.Equal(t, m.Data(), id.Data())
	id, err = Array(m, transform.IdentityScaling{}, transform.WithInverse(true))
	require.NoError(t, err)
	require.Equal(t, m.Data(), id.Data())

	s, err := transform.FitMeanStdScaling(m)
	require.NoError(t, err)

	scaled, err := Array(m, s)
	require.NoError(t, err)
	want := []float64{-0.559, -1.118, 0, -0.559, 0.559, 1.677}
	require.InDeltaSlice(t, want, scaled.Data(), 1e-3)

	back, err := Array(scaled, s, transform.WithInverse(true))
	require.NoError(t, err)
	require.InDeltaSlice(t, m.Data(), back.Data(), 1e-12)
}

func TestArrayInPlace(t *testing.T) {
	t.Run("whole", func(t *testing.T) {
		m := matrix(t)
		out, err := ArrayInPlace(m, transform.NewPower(2))
		require.NoError(t, err)
		require.Same(t, m, out)
		require.Equal(t, []float64{1, 4, 9, 16, 25, 36}, m.Data())
	})

	t.Run("flat indexed", func(t *testing.T) {
		m := matrix(t)
		_, err := ArrayInPlace(m, transform.NewPower(2), transform.WithInds(1, 4))
		require.NoError(t, err)
		require.Equal(t, []float64{1, 4, 3, 4, 25, 6}, m.Data())
	})

	t.Run("axis with inds", func(t *testing.T) {
		m := matrix(t)
		_, err := ArrayInPlace(m, center{}, transform.WithDims(ndarray.DimAt(1)), transform.WithInds(0, 2))
		require.NoError(t, err)
		require.Equal(t, []float64{-1, 2, 1, -1, 5, 1}, m.Data())
		require.Equal(t, []string{"a", "b", "c"}, m.Axis(1).Labels)
	})

	t.Run("axis", func(t *testing.T) {
		m := matrix(t)
		_, err := ArrayInPlace(m, center{}, transform.WithDims(ndarray.DimNamed("row")))
		require.NoError(t, err)
		require.Equal(t, []float64{-1.5, -1.5, -1.5, 1.5, 1.5, 1.5}, m.Data())
	})

	t.Run("scaling round trip", func(t *testing.T) {
		m := matrix(t)
		s, err := transform.FitMeanStdScaling(m)
		require.NoError(t, err)

		_, err = ArrayInPlace(m, s)
		require.NoError(t, err)
		_, err = ArrayInPlace(m, s, transform.WithInverse(true))
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{1, 2, 3, 4, 5, 6}, m.Data(), 1e-12)
	})
}

func TestArrayInPlace_Rejects(t *testing.T) {
	m := matrix(t)

	enc, err := transform.NewOneHot(1.0, 2.0)
	require.NoError(t, err)
	_, err = ArrayInPlace(m, enc)
	require.ErrorIs(t, err, errs.ErrInPlaceCardinality)

	sum, err := transform.NewLinearCombination(1, 1)
	require.NoError(t, err)
	_, err = ArrayInPlace(m, sum, transform.WithDims(ndarray.DimAt(0)))
	require.ErrorIs(t, err, errs.ErrInPlaceCardinality)

	_, err = ArrayInPlace(m, diff{})
	require.ErrorIs(t, err, errs.ErrInPlaceCardinality)

	// the second fiber fails; nothing is written
	_, err = ArrayInPlace(m, newFailAfter(1), transform.WithDims(ndarray.DimAt(1)))
	require.ErrorIs(t, err, errBoom)

	_, err = ArrayInPlace(m, broken{})
	require.ErrorIs(t, err, errs.ErrCardinalityViolation)

	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
}

func TestArrayAppend(t *testing.T) {
	m := matrix(t)
	sq := transform.NewPower(2)

	tests := []struct {
		name  string
		dim   ndarray.Dim
		shape []int
		check func(t *testing.T, out *ndarray.Array[float64])
	}{
		{"existing axis 0", ndarray.DimAt(0), []int{4, 3}, func(t *testing.T, out *ndarray.Array[float64]) {
			require.Equal(t, []float64{1, 2, 3, 4, 5, 6, 1, 4, 9, 16, 25, 36}, out.Data())
			require.Equal(t, ndarray.Axis{Name: "row"}, out.Axis(0))
			require.Equal(t, m.Axis(1), out.Axis(1))
		}},
		{"named axis", ndarray.DimNamed("feature"), []int{2, 6}, func(t *testing.T, out *ndarray.Array[float64]) {
			require.Equal(t, []float64{1, 2, 3, 1, 4, 9, 4, 5, 6, 16, 25, 36}, out.Data())
		}},
		{"new trailing axis", ndarray.DimAt(2), []int{2, 3, 2}, func(t *testing.T, out *ndarray.Array[float64]) {
			require.Equal(t, 6.0, out.At(1, 2, 0))
			require.Equal(t, 36.0, out.At(1, 2, 1))
		}},
		{"new named axis", ndarray.DimNamed("version"), []int{2, 3, 2}, func(t *testing.T, out *ndarray.Array[float64]) {
			pos, ok := out.AxisIndex("version")
			require.True(t, ok)
			require.Equal(t, 2, pos)
			require.Equal(t, 4.0, out.At(0, 1, 1))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ArrayAppend(m, sq, tt.dim)
			require.NoError(t, err)
			require.Equal(t, tt.shape, out.Shape())
			tt.check(t, out)
		})
	}

	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
}

func TestArrayAppend_Reduced(t *testing.T) {
	m := matrix(t)
	delta, err := transform.NewLinearCombination(1, -1)
	require.NoError(t, err)

	out, err := ArrayAppend(m, delta, ndarray.DimAt(0), transform.WithDims(ndarray.DimAt(0)))
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, out.Shape())
	require.Equal(t, []float64{-3, -3, -3}, out.Data()[6:])

	_, err = ArrayAppend(m, delta, ndarray.DimAt(1), transform.WithDims(ndarray.DimAt(0)))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	_, err = ArrayAppend(m, delta, ndarray.DimAt(2), transform.WithDims(ndarray.DimAt(0)))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestArrayAppend_Errors(t *testing.T) {
	m := matrix(t)

	_, err := ArrayAppend(m, transform.NewPower(2), ndarray.DimAt(3))
	require.ErrorIs(t, err, errs.ErrUnknownAxis)

	_, err = ArrayAppend(m, transform.NewPower(2), ndarray.NoDim)
	require.ErrorIs(t, err, errs.ErrUnknownAxis)

	_, err = ArrayAppend(nil, transform.NewPower(2), ndarray.DimAt(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedData)
}
