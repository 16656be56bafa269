// Package table provides Table, the tabular container consumed by the featx
// apply engine: an ordered set of named columns of equal length.
//
// Column names are indexed by their xxHash64, so lookups are O(1). Column order
// is preserved and significant: it determines the default column selection and
// the position of appended columns.
//
//	tbl, err := table.New(
//	    table.Column[float64]{Name: "a", Values: []float64{1, 2, 3}},
//	    table.Column[float64]{Name: "b", Values: []float64{4, 5, 6}},
//	)
package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/internal/collision"
)

// Column is a named sequence of values.
type Column[T any] struct {
	Name   string
	Values []T
}

// Table is an ordered mapping from column name to an equal-length sequence of values.
//
// Table is not safe for concurrent mutation. Concurrent reads are safe.
type Table[T any] struct {
	index *collision.Tracker
	cols  [][]T
	rows  int
}

// New creates a table from columns in the given order.
//
// The table adopts each column's Values slice as its storage without copying.
// Names must be non-empty and unique, and all columns must have the same length.
func New[T any](columns ...Column[T]) (*Table[T], error) {
	t := &Table[T]{
		index: collision.NewTracker(len(columns)),
		cols:  make([][]T, 0, len(columns)),
	}
	for i, col := range columns {
		if err := t.add(col); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
	}

	return t, nil
}

// Must returns t or panics if err is non-nil. It is intended for literals in
// tests and examples.
func Must[T any](t *Table[T], err error) *Table[T] {
	if err != nil {
		panic(err)
	}

	return t
}

func (t *Table[T]) add(col Column[T]) error {
	if len(t.cols) > 0 && len(col.Values) != t.rows {
		return fmt.Errorf("%w: column %q has %d rows, want %d", errs.ErrShapeMismatch, col.Name, len(col.Values), t.rows)
	}
	if err := t.index.Track(col.Name); err != nil {
		return err
	}
	if len(t.cols) == 0 {
		t.rows = len(col.Values)
	}
	t.cols = append(t.cols, col.Values)

	return nil
}

// ContainerKind identifies Table as a transformable tabular container.
func (t *Table[T]) ContainerKind() format.ContainerKind {
	return format.KindTable
}

// NumCols returns the number of columns.
func (t *Table[T]) NumCols() int {
	return len(t.cols)
}

// NumRows returns the common column length.
func (t *Table[T]) NumRows() int {
	return t.rows
}

// Names returns a copy of the column names in table order.
func (t *Table[T]) Names() []string {
	return slices.Clone(t.index.Names())
}

// Index returns the position of the named column.
func (t *Table[T]) Index(name string) (int, bool) {
	return t.index.Lookup(name)
}

// Has reports whether the table has a column named name.
func (t *Table[T]) Has(name string) bool {
	return t.index.Contains(name)
}

// Column returns the storage of the named column. Writes through the returned
// slice modify the table.
func (t *Table[T]) Column(name string) ([]T, bool) {
	pos, ok := t.index.Lookup(name)
	if !ok {
		return nil, false
	}

	return t.cols[pos], true
}

// ColumnAt returns the column at position i.
func (t *Table[T]) ColumnAt(i int) Column[T] {
	return Column[T]{Name: t.index.Names()[i], Values: t.cols[i]}
}

// Columns returns every column in table order, sharing the table's storage.
func (t *Table[T]) Columns() []Column[T] {
	out := make([]Column[T], len(t.cols))
	for i := range t.cols {
		out[i] = t.ColumnAt(i)
	}

	return out
}

// Select resolves names to column positions in the given order. A nil or
// empty selection selects every column in table order.
func (t *Table[T]) Select(names []string) ([]int, error) {
	if len(names) == 0 {
		pos := make([]int, len(t.cols))
		for i := range pos {
			pos[i] = i
		}

		return pos, nil
	}

	pos := make([]int, len(names))
	for i, name := range names {
		p, ok := t.index.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
		}
		pos[i] = p
	}

	return pos, nil
}

// SetColumn overwrites the values of the named column in place. values must
// have NumRows elements.
func (t *Table[T]) SetColumn(name string, values []T) error {
	pos, ok := t.index.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("%w: %d values for column %q with %d rows", errs.ErrShapeMismatch, len(values), name, t.rows)
	}
	copy(t.cols[pos], values)

	return nil
}

// With returns a new table holding the columns of t followed by columns.
// t is not modified; the new table shares the storage of the existing columns.
// A name that already exists in t fails with ErrNameCollision.
func (t *Table[T]) With(columns ...Column[T]) (*Table[T], error) {
	for _, col := range columns {
		if t.index.Contains(col.Name) {
			return nil, fmt.Errorf("%w: %q", errs.ErrNameCollision, col.Name)
		}
	}

	out := &Table[T]{
		index: t.index.Clone(),
		cols:  slices.Clone(t.cols),
		rows:  t.rows,
	}
	for _, col := range columns {
		if err := out.add(col); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table[T]) Clone() *Table[T] {
	cols := make([][]T, len(t.cols))
	for i, c := range t.cols {
		cols[i] = slices.Clone(c)
	}

	return &Table[T]{index: t.index.Clone(), cols: cols, rows: t.rows}
}

// String returns a compact description of the table.
func (t *Table[T]) String() string {
	return fmt.Sprintf("Table{cols=%v, rows=%d}", t.index.Names(), t.rows)
}
