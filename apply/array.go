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

// Array applies t to a and returns a new array. a is never modified.
//
// The selection options decide the units handed to t:
//
//   - no WithDims, no WithInds: the flattened array is one unit. OneToOne keeps
//     the shape and axis metadata, OneToMany appends a trailing axis of length k,
//     ManyToOne yields shape [1] and ManyToMany a 1-D array.
//   - WithInds only: the elements at those flat positions form one unit and the
//     result is always 1-D.
//   - WithDims: t runs once per fiber along the axis and results are written
//     back along it. With WithInds the sub-array at those axis positions is
//     processed and returned alone. For ManyToOne the hyperplanes at each axis
//     position are the grouped terms and the axis collapses to length 1.
//
// Example:
//
//	p, _ := transform.NewPeriodic(transform.Sin, 24, 0)
//	encoded, err := apply.Array(hours, p, transform.WithDims(ndarray.DimNamed("hour")))
func Array[In, Out any](a *ndarray.Array[In], t transform.Transform[In, Out], opts ...transform.Option) (*ndarray.Array[Out], error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedData)
	}

	card, err := cardinalityOf(t)
	if err != nil {
		return nil, err
	}

	cfg, err := transform.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	sel, err := resolve.Resolve(a, cfg.Dims, cfg.Inds)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("apply array",
		zap.Stringer("cardinality", card),
		zap.Stringer("mode", sel.Mode),
		zap.Int("axis", sel.Axis),
		zap.Ints("shape", a.Shape()),
	)

	switch sel.Mode {
	case resolve.ModeFlatIndexed:
		return applyFlatIndexed(a, t, card, cfg, sel)
	case resolve.ModeAxis:
		src, err := resolve.AxisSource(a, sel)
		if err != nil {
			return nil, err
		}

		return applyAxis(src, t, card, cfg, sel.Axis)
	default:
		return applyWhole(a, t, card, cfg)
	}
}

func applyWhole[In, Out any](a *ndarray.Array[In], t transform.Transform[In, Out], card transform.Cardinality, cfg *transform.Config) (*ndarray.Array[Out], error) {
	flat := a.Flatten()

	if card == transform.ManyToOne {
		out, err := mapUnit(t, card, resolve.Singletons(flat), cfg, 1)
		if err != nil {
			return nil, err
		}

		return ndarray.New([]int{1}, out)
	}

	out, err := t.Map([][]In{flat}, cfg)
	if err != nil {
		return nil, err
	}

	switch card {
	case transform.OneToOne:
		if err := checkLen(card, len(out), len(flat)); err != nil {
			return nil, err
		}
		res, err := ndarray.New(a.Shape(), out)
		if err != nil {
			return nil, err
		}
		ndarray.InheritAxes(res, a)

		return res, nil
	case transform.OneToMany:
		k, err := multiplier(t, len(flat), len(out))
		if err != nil {
			return nil, err
		}
		res, err := ndarray.New(append(a.Shape(), k), out)
		if err != nil {
			return nil, err
		}
		ndarray.InheritAxes(res, a)

		return res, nil
	default:
		return ndarray.FromSlice(out), nil
	}
}

func applyFlatIndexed[In, Out any](a *ndarray.Array[In], t transform.Transform[In, Out], card transform.Cardinality, cfg *transform.Config, sel resolve.Selection) (*ndarray.Array[Out], error) {
	values, err := a.Gather(sel.Inds)
	if err != nil {
		return nil, err
	}

	var out []Out
	if card == transform.ManyToOne {
		out, err = mapUnit(t, card, resolve.Singletons(values), cfg, 1)
	} else {
		out, err = mapUnit(t, card, [][]In{values}, cfg, len(values))
	}
	if err != nil {
		return nil, err
	}

	return ndarray.FromSlice(out), nil
}

func applyAxis[In, Out any](src *ndarray.Array[In], t transform.Transform[In, Out], card transform.Cardinality, cfg *transform.Config, axis int) (*ndarray.Array[Out], error) {
	l := src.Layout(axis)
	shape := src.Shape()

	if card == transform.ManyToOne {
		out, err := mapUnit(t, card, resolve.Hyperplanes(src, axis), cfg, l.Count())
		if err != nil {
			return nil, err
		}
		shape[axis] = 1
		res, err := ndarray.New(shape, out)
		if err != nil {
			return nil, err
		}
		ndarray.InheritAxes(res, src)

		return res, nil
	}

	data := src.Data()
	positions := resolve.Positions(resolve.Selection{}, l.Len)
	outputs := make([][]Out, l.Count())
	width := -1
	for f := range outputs {
		out, err := t.Map([][]In{resolve.GatherFiber(data, l, f, positions)}, cfg)
		if err != nil {
			return nil, err
		}
		if width < 0 {
			width, err = fiberWidth(t, card, l.Len, len(out))
			if err != nil {
				return nil, err
			}
		}
		if len(out) != width {
			return nil, fmt.Errorf("%w: %s fiber %d produced %d elements, want %d",
				errs.ErrCardinalityViolation, card, f, len(out), width)
		}
		outputs[f] = out
	}
	if width < 0 {
		width = emptyWidth(t, card, l.Len)
	}

	result := make([]Out, l.Count()*width)
	wl := l.WithLen(width)
	outPositions := resolve.Positions(resolve.Selection{}, width)
	for f, out := range outputs {
		resolve.ScatterFiber(result, wl, f, outPositions, out)
	}

	shape[axis] = width
	res, err := ndarray.New(shape, result)
	if err != nil {
		return nil, err
	}
	ndarray.InheritAxes(res, src)

	return res, nil
}

// fiberWidth returns the expected output length of a fiber of n elements, given
// the length produced by the first fiber.
func fiberWidth[In, Out any](t transform.Transform[In, Out], card transform.Cardinality, n, got int) (int, error) {
	switch card {
	case transform.OneToOne:
		return n, checkLen(card, got, n)
	case transform.OneToMany:
		k, err := multiplier(t, n, got)
		return n * k, err
	default:
		return got, nil
	}
}

// emptyWidth is the output axis length when there are no fibers to run.
func emptyWidth[In, Out any](t transform.Transform[In, Out], card transform.Cardinality, n int) int {
	if card == transform.OneToMany {
		if k, ok := knownMultiplier(t); ok {
			return n * k
		}
	}

	return n
}
