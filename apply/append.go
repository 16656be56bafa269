package apply

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/transform"
)

// ArrayAppend applies t to a and joins the original and the result along appendDim.
//
// When appendDim names an existing axis the result is concatenated after a on
// that axis; all other axis lengths must match. DimAt(a.NDim()), or a DimNamed
// that is not an axis of a, stacks a and the result along a new trailing axis,
// which requires equal shapes. a is never modified.
func ArrayAppend[T any](a *ndarray.Array[T], t transform.Transform[T, T], appendDim ndarray.Dim, opts ...transform.Option) (*ndarray.Array[T], error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedData)
	}
	if appendDim.IsNone() {
		return nil, fmt.Errorf("%w: append requires a dimension", errs.ErrUnknownAxis)
	}

	out, err := Array(a, t, opts...)
	if err != nil {
		return nil, err
	}

	axis, stack, name, err := appendTarget(a, appendDim)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("append array",
		zap.Stringer("dim", appendDim),
		zap.Int("axis", axis),
		zap.Bool("stack", stack),
	)

	if stack {
		return ndarray.Stack(axis, name, a, out)
	}

	return ndarray.Concat(axis, a, out)
}

// appendTarget resolves appendDim to an existing axis to concatenate along or
// a new trailing axis to stack along.
func appendTarget[T any](a *ndarray.Array[T], d ndarray.Dim) (axis int, stack bool, name string, err error) {
	if i, ok := d.Index(); ok {
		switch {
		case i >= 0 && i < a.NDim():
			return i, false, "", nil
		case i == a.NDim():
			return i, true, "", nil
		default:
			return 0, false, "", fmt.Errorf("%w: append axis %d of %d", errs.ErrUnknownAxis, i, a.NDim())
		}
	}

	name, _ = d.Name()
	if i, ok := a.AxisIndex(name); ok {
		return i, false, "", nil
	}

	return a.NDim(), true, name, nil
}
