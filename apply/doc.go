// Package apply is the transform application engine.
//
// It resolves the selection options of a call, hands the selected units to a
// transform's Map, verifies the output against the transform's declared
// cardinality, and reassembles the results:
//
//   - Array, ArrayInPlace and ArrayAppend operate on *ndarray.Array.
//   - Table, TableInPlace and TableAppend operate on *table.Table.
//   - Bind wraps a transform into a callable value.
//
// Copying operations never modify their input and never return partial
// results. In-place operations require a OneToOne transform and write only
// after every unit has been computed.
package apply
