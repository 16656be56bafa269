package apply

import (
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

// defaultColumnPrefix names produced columns when no header is given: Column1, Column2, ...
const defaultColumnPrefix = "Column"

// Table applies t to the columns of tbl selected by WithCols and returns the
// produced columns in selection order. tbl is never modified.
//
// Each selected column is one unit, except for ManyToOne transforms which
// receive all selected columns as one group and produce a single column.
// A OneToMany transform with multiplier k produces k columns per selected
// column, split element-major.
//
// Columns are named by WithHeader, whose length must equal the number of
// produced columns (ErrHeaderLength), or Column1, Column2, ... otherwise.
func Table[In, Out any](tbl *table.Table[In], t transform.Transform[In, Out], opts ...transform.Option) ([]table.Column[Out], error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrUnsupportedData)
	}

	card, err := cardinalityOf(t)
	if err != nil {
		return nil, err
	}

	cfg, err := transform.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	pos, err := tbl.Select(cfg.Cols)
	if err != nil {
		return nil, err
	}

	if n, known := producedColumns(t, card, len(pos)); known {
		if err := checkHeader(cfg.Header, n); err != nil {
			return nil, err
		}
	}

	logging.Logger().Debug("apply table",
		zap.Stringer("cardinality", card),
		zap.Int("columns", len(pos)),
		zap.Int("rows", tbl.NumRows()),
	)

	values, err := mapColumns(tbl, t, card, cfg, pos)
	if err != nil {
		return nil, err
	}

	if err := checkHeader(cfg.Header, len(values)); err != nil {
		return nil, err
	}

	cols := make([]table.Column[Out], len(values))
	for i, v := range values {
		cols[i] = table.Column[Out]{Name: columnName(cfg.Header, i), Values: v}
	}

	return cols, nil
}

// mapColumns runs t over the selected columns and returns the produced column values.
func mapColumns[In, Out any](tbl *table.Table[In], t transform.Transform[In, Out], card transform.Cardinality, cfg *transform.Config, pos []int) ([][]Out, error) {
	rows := tbl.NumRows()

	if card == transform.ManyToOne {
		terms := make([][]In, len(pos))
		for i, p := range pos {
			terms[i] = slices.Clone(tbl.ColumnAt(p).Values)
		}
		out, err := mapUnit(t, card, terms, cfg, rows)
		if err != nil {
			return nil, err
		}

		return [][]Out{out}, nil
	}

	var produced [][]Out
	for _, p := range pos {
		col := slices.Clone(tbl.ColumnAt(p).Values)
		out, err := mapUnit(t, card, [][]In{col}, cfg, rows)
		if err != nil {
			return nil, err
		}

		if card != transform.OneToMany {
			produced = append(produced, out)
			continue
		}

		k, err := multiplier(t, rows, len(out))
		if err != nil {
			return nil, err
		}
		produced = append(produced, splitElementMajor(out, rows, k)...)
	}

	return produced, nil
}

// splitElementMajor splits n·k values laid out as out[i*k+j] into k columns of n rows.
func splitElementMajor[T any](out []T, n, k int) [][]T {
	cols := make([][]T, k)
	for j := range cols {
		col := make([]T, n)
		for i := range col {
			col[i] = out[i*k+j]
		}
		cols[j] = col
	}

	return cols
}

// producedColumns returns the number of columns t will produce from ncols
// selected columns, when that is known before running it.
func producedColumns[In, Out any](t transform.Transform[In, Out], card transform.Cardinality, ncols int) (int, bool) {
	switch card {
	case transform.ManyToOne:
		return 1, true
	case transform.OneToMany:
		k, ok := knownMultiplier(t)
		return ncols * k, ok
	default:
		return ncols, true
	}
}

func checkHeader(header []string, n int) error {
	if header != nil && len(header) != n {
		return fmt.Errorf("%w: %d names for %d produced columns", errs.ErrHeaderLength, len(header), n)
	}

	return nil
}

func columnName(header []string, i int) string {
	if header != nil {
		return header[i]
	}

	return defaultColumnPrefix + strconv.Itoa(i+1)
}

// TableInPlace applies a OneToOne transform to the selected columns of tbl,
// replacing their values in their existing storage, and returns tbl.
//
// The selection is validated and every column computed before the first write,
// so on error tbl is unchanged.
func TableInPlace[T any](tbl *table.Table[T], t transform.Transform[T, T], opts ...transform.Option) (*table.Table[T], error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrUnsupportedData)
	}

	card, err := cardinalityOf(t)
	if err != nil {
		return nil, err
	}
	if !card.InPlace() {
		return nil, fmt.Errorf("%w: got %s", errs.ErrInPlaceCardinality, card)
	}

	cfg, err := transform.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	pos, err := tbl.Select(cfg.Cols)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("apply table in place",
		zap.Int("columns", len(pos)),
		zap.Int("rows", tbl.NumRows()),
	)

	staged, err := mapColumns(tbl, t, card, cfg, pos)
	if err != nil {
		return nil, err
	}
	for i, p := range pos {
		copy(tbl.ColumnAt(p).Values, staged[i])
	}

	return tbl, nil
}

// TableAppend returns a new table holding copies of the columns of tbl
// followed by the columns Table produces. A produced name equal to an existing
// column name fails with ErrNameCollision. tbl is never modified, and the
// result shares no storage with it.
//
// Example:
//
//	out, err := apply.TableAppend(tbl, transform.NewPower(2),
//	    transform.WithCols("a", "b"),
//	    transform.WithHeader("a_sq", "b_sq"),
//	)
func TableAppend[T any](tbl *table.Table[T], t transform.Transform[T, T], opts ...transform.Option) (*table.Table[T], error) {
	cols, err := Table(tbl, t, opts...)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("append table", zap.Int("produced", len(cols)))

	return tbl.Clone().With(cols...)
}
