package snapshot

import (
	"fmt"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/table"
)

// EncodeTable encodes tbl with its column names in table order.
func EncodeTable(tbl *table.Table[float64], opts ...Option) ([]byte, error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrUnsupportedData)
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	w := newWriter(cfg, format.KindTable)
	defer w.release()

	w.u32(tbl.NumCols())
	w.u32(tbl.NumRows())
	cols := tbl.Columns()
	values := make([][]float64, len(cols))
	for i, col := range cols {
		if err := w.str(col.Name); err != nil {
			return nil, err
		}
		values[i] = col.Values
	}

	if err := w.payload(values...); err != nil {
		return nil, err
	}

	return w.bytes(), nil
}

// DecodeTable decodes a frame written by EncodeTable.
func DecodeTable(data []byte) (*table.Table[float64], error) {
	r, err := newReader(data, format.KindTable)
	if err != nil {
		return nil, err
	}

	ncols, err := r.count(2)
	if err != nil {
		return nil, err
	}
	nrows, err := r.u32()
	if err != nil {
		return nil, err
	}
	if ncols > 0 && uint64(nrows) > r.maxValues()/uint64(ncols) {
		return nil, fmt.Errorf("%w: %d×%d values exceed payload limit", errs.ErrInvalidSnapshot, ncols, nrows)
	}

	names := make([]string, ncols)
	for i := range names {
		if names[i], err = r.str(); err != nil {
			return nil, err
		}
	}

	values, err := r.payload(ncols * nrows)
	if err != nil {
		return nil, err
	}

	cols := make([]table.Column[float64], ncols)
	for i := range cols {
		cols[i] = table.Column[float64]{Name: names[i], Values: values[i*nrows : (i+1)*nrows : (i+1)*nrows]}
	}

	tbl, err := table.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	return tbl, nil
}
