package apply

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

// center subtracts the mean of each unit, so results depend on how units are cut.
type center struct{}

func (center) Cardinality() transform.Cardinality { return transform.OneToOne }

func (center) Map(unit [][]float64, _ *transform.Config) ([]float64, error) {
	seq := unit[0]
	var sum float64
	for _, v := range seq {
		sum += v
	}
	mean := sum / float64(len(seq))

	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = v - mean
	}

	return out, nil
}

// diff is a ManyToMany transform producing consecutive differences.
type diff struct{}

func (diff) Cardinality() transform.Cardinality { return transform.ManyToMany }

func (diff) Map(unit [][]float64, _ *transform.Config) ([]float64, error) {
	seq := unit[0]
	if len(seq) == 0 {
		return nil, nil
	}

	out := make([]float64, len(seq)-1)
	for i := range out {
		out[i] = seq[i+1] - seq[i]
	}

	return out, nil
}

// mirror is a OneToMany transform without FanOut: x becomes x, -x.
type mirror struct{}

func (mirror) Cardinality() transform.Cardinality { return transform.OneToMany }

func (mirror) Map(unit [][]float64, _ *transform.Config) ([]float64, error) {
	out := make([]float64, 0, 2*len(unit[0]))
	for _, v := range unit[0] {
		out = append(out, v, -v)
	}

	return out, nil
}

// broken claims OneToOne but returns one extra element.
type broken struct{}

func (broken) Cardinality() transform.Cardinality { return transform.OneToOne }

func (broken) Map(unit [][]float64, _ *transform.Config) ([]float64, error) {
	return append(append([]float64{}, unit[0]...), 0), nil
}

var errBoom = errors.New("boom")

// failAfter succeeds for the first n calls, doubling values, then fails.
type failAfter struct {
	n     int
	calls *int
}

func newFailAfter(n int) failAfter {
	return failAfter{n: n, calls: new(int)}
}

func (f failAfter) Cardinality() transform.Cardinality { return transform.OneToOne }

func (f failAfter) Map(unit [][]float64, _ *transform.Config) ([]float64, error) {
	*f.calls++
	if *f.calls > f.n {
		return nil, errBoom
	}

	out := make([]float64, len(unit[0]))
	for i, v := range unit[0] {
		out[i] = 2 * v
	}

	return out, nil
}

// matrix returns [[1,2,3],[4,5,6]] with axes "row" (r0, r1) and "feature" (a, b, c).
func matrix(t *testing.T) *ndarray.Array[float64] {
	t.Helper()

	m, err := ndarray.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.NoError(t, m.SetAxis(0, ndarray.Axis{Name: "row", Labels: []string{"r0", "r1"}}))
	require.NoError(t, m.SetAxis(1, ndarray.Axis{Name: "feature", Labels: []string{"a", "b", "c"}}))

	return m
}

func sampleTable(t *testing.T) *table.Table[float64] {
	t.Helper()

	tbl, err := table.New(
		table.Column[float64]{Name: "a", Values: []float64{1, 2, 3}},
		table.Column[float64]{Name: "b", Values: []float64{4, 5, 6}},
	)
	require.NoError(t, err)

	return tbl
}
