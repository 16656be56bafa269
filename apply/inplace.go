package apply

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/internal/resolve"
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/transform"
)

// ArrayInPlace applies a OneToOne transform to a, overwriting the selected
// elements, and returns a.
//
// Any other cardinality fails with ErrInPlaceCardinality before a is touched.
// Every unit is computed and verified before the first write, so a failing
// transform leaves a unchanged.
func ArrayInPlace[T any](a *ndarray.Array[T], t transform.Transform[T, T], opts ...transform.Option) (*ndarray.Array[T], error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedData)
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

	sel, err := resolve.Resolve(a, cfg.Dims, cfg.Inds)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("apply array in place",
		zap.Stringer("mode", sel.Mode),
		zap.Int("axis", sel.Axis),
		zap.Ints("shape", a.Shape()),
	)

	data := a.Data()
	switch sel.Mode {
	case resolve.ModeWhole:
		out, err := mapUnit(t, card, [][]T{a.Flatten()}, cfg, len(data))
		if err != nil {
			return nil, err
		}
		copy(data, out)

	case resolve.ModeFlatIndexed:
		values, err := a.Gather(sel.Inds)
		if err != nil {
			return nil, err
		}
		out, err := mapUnit(t, card, [][]T{values}, cfg, len(values))
		if err != nil {
			return nil, err
		}
		for k, i := range sel.Inds {
			data[i] = out[k]
		}

	case resolve.ModeAxis:
		l := a.Layout(sel.Axis)
		positions := resolve.Positions(sel, l.Len)
		staged := make([][]T, l.Count())
		for f := range staged {
			fiber := resolve.GatherFiber(data, l, f, positions)
			out, err := mapUnit(t, card, [][]T{fiber}, cfg, len(fiber))
			if err != nil {
				return nil, err
			}
			staged[f] = out
		}
		for f, out := range staged {
			resolve.ScatterFiber(data, l, f, positions, out)
		}
	}

	return a, nil
}
