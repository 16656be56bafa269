package snapshot

import (
	"fmt"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/ndarray"
)

// EncodeArray encodes a with its shape and axis metadata.
func EncodeArray(a *ndarray.Array[float64], opts ...Option) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedData)
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	w := newWriter(cfg, format.KindArray)
	defer w.release()

	w.u32(a.NDim())
	for _, n := range a.Shape() {
		w.u32(n)
	}
	for i := range a.NDim() {
		axis := a.Axis(i)
		if err := w.str(axis.Name); err != nil {
			return nil, err
		}
		w.u32(len(axis.Labels))
		for _, label := range axis.Labels {
			if err := w.str(label); err != nil {
				return nil, err
			}
		}
	}

	if err := w.payload(a.Data()); err != nil {
		return nil, err
	}

	return w.bytes(), nil
}

// DecodeArray decodes a frame written by EncodeArray.
func DecodeArray(data []byte) (*ndarray.Array[float64], error) {
	r, err := newReader(data, format.KindArray)
	if err != nil {
		return nil, err
	}

	ndim, err := r.count(4)
	if err != nil {
		return nil, err
	}
	if ndim == 0 {
		return nil, fmt.Errorf("%w: array without axes", errs.ErrInvalidSnapshot)
	}

	shape := make([]int, ndim)
	size := uint64(1)
	for i := range shape {
		if shape[i], err = r.u32(); err != nil {
			return nil, err
		}
		if shape[i] > 0 && size > r.maxValues()/uint64(shape[i]) {
			return nil, fmt.Errorf("%w: shape %v exceeds payload limit", errs.ErrInvalidSnapshot, shape[:i+1])
		}
		size *= uint64(shape[i])
	}

	axes := make([]ndarray.Axis, ndim)
	for i := range axes {
		if axes[i].Name, err = r.str(); err != nil {
			return nil, err
		}
		nlabels, err := r.count(2)
		if err != nil {
			return nil, err
		}
		if nlabels == 0 {
			continue
		}
		axes[i].Labels = make([]string, nlabels)
		for j := range axes[i].Labels {
			if axes[i].Labels[j], err = r.str(); err != nil {
				return nil, err
			}
		}
	}

	values, err := r.payload(int(size))
	if err != nil {
		return nil, err
	}

	a, err := ndarray.New(shape, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	for i, axis := range axes {
		if axis.Name == "" && axis.Labels == nil {
			continue
		}
		if err := a.SetAxis(i, axis); err != nil {
			return nil, fmt.Errorf("%w: axis %d: %w", errs.ErrInvalidSnapshot, i, err)
		}
	}

	return a, nil
}
