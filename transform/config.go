package transform

import (
	"fmt"
	"math"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/options"
	"github.com/arloliu/featx/ndarray"
)

// DefaultEpsilon is the stabiliser added to the standard deviation by MeanStdScaling.
const DefaultEpsilon = 1e-12

// Config carries the selection and behaviour options of one apply or fit call.
type Config struct {
	// Dims selects the axis to operate along. The zero value flattens the array.
	Dims ndarray.Dim
	// Inds restricts the selection to flat positions (no Dims) or to positions
	// along the selected axis. Nil selects everything.
	Inds []int
	// Cols selects table columns in the given order. Nil selects every column.
	Cols []string
	// Header names the produced table columns.
	Header []string
	// Inverse requests the inverse mapping of invertible transforms.
	Inverse bool
	// Epsilon is added to the standard deviation when fitting MeanStdScaling.
	Epsilon float64
}

// Option configures a Config.
type Option = options.Option[*Config]

// NewConfig returns a Config with defaults applied, then opts.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{Epsilon: DefaultEpsilon}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDims selects the axis to operate along.
func WithDims(d ndarray.Dim) Option {
	return options.NoError(func(c *Config) {
		c.Dims = d
	})
}

// WithInds restricts the selection to the given positions. Calling it with no
// positions selects nothing.
func WithInds(inds ...int) Option {
	return options.New(func(c *Config) error {
		for _, i := range inds {
			if i < 0 {
				return fmt.Errorf("%w: negative index %d", errs.ErrIndexOutOfRange, i)
			}
		}
		c.Inds = append(make([]int, 0, len(inds)), inds...)

		return nil
	})
}

// WithCols selects table columns by name, in the given order.
func WithCols(names ...string) Option {
	return options.NoError(func(c *Config) {
		c.Cols = append(make([]string, 0, len(names)), names...)
	})
}

// WithHeader names the produced table columns.
func WithHeader(names ...string) Option {
	return options.New(func(c *Config) error {
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w: empty header name", errs.ErrInvalidColumnName)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: %q in header", errs.ErrDuplicateColumn, name)
			}
			seen[name] = struct{}{}
		}
		c.Header = append(make([]string, 0, len(names)), names...)

		return nil
	})
}

// WithInverse requests the inverse mapping of invertible transforms.
func WithInverse(inverse bool) Option {
	return options.NoError(func(c *Config) {
		c.Inverse = inverse
	})
}

// WithEpsilon sets the stabiliser used when fitting MeanStdScaling.
// eps must be a finite, non-negative number.
func WithEpsilon(eps float64) Option {
	return options.New(func(c *Config) error {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			return fmt.Errorf("%w: epsilon %v", errs.ErrInvalidParameter, eps)
		}
		c.Epsilon = eps

		return nil
	})
}
