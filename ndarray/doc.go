// Package ndarray provides Array, the rectangular numeric container consumed by
// the featx apply engine.
//
// An Array stores its elements in a flat row-major slice together with its
// shape. Each axis may carry optional metadata (a name and one label per
// position). Metadata is only used to look axes up by name and to round-trip
// labels through transforms; it never takes part in computation.
//
// # Creating arrays
//
//	v := ndarray.FromSlice([]float64{1, 2, 3})
//	m, err := ndarray.FromRows([][]float64{{0, -0.5, 0.5}, {0, 1, 2}})
//	x, err := ndarray.New([]int{2, 2, 3}, data)
//
// # Axis selection
//
// Dim selects an axis by position or by name; the zero value selects no axis:
//
//	ndarray.DimAt(0)
//	ndarray.DimNamed("time")
//
// # Fibers
//
// Layout describes the 1-D fibers running along one axis, which is how the
// engine decomposes an array for per-axis application:
//
//	layout := m.Layout(1)
//	for f := range layout.Count() {
//	    for k := range layout.Len {
//	        _ = m.Data()[layout.Offset(f, k)]
//	    }
//	}
package ndarray
