package transform

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/internal/pool"
	"github.com/arloliu/featx/internal/resolve"
	"github.com/arloliu/featx/ndarray"
	"github.com/arloliu/featx/table"
)

// IdentityScaling is a scaler that leaves values unchanged, forward and inverse.
type IdentityScaling struct{}

var _ Transform[float64, float64] = IdentityScaling{}

// Cardinality returns OneToOne.
func (IdentityScaling) Cardinality() Cardinality {
	return OneToOne
}

// Map returns a copy of the unit.
func (IdentityScaling) Map(unit [][]float64, _ *Config) ([]float64, error) {
	return mapFloat(unit, func(x float64) float64 { return x })
}

// MeanStdScaling standardises values with statistics fitted once:
//
//	forward: y = (x - μ) / (σ + ε)
//	inverse: x = y·(σ + ε) + μ
//
// σ is the sample standard deviation. With σ = 0 a value equal to μ maps to 0
// for ε > 0 and to NaN for ε = 0.
type MeanStdScaling struct {
	mean    float64
	std     float64
	epsilon float64
}

var _ Transform[float64, float64] = (*MeanStdScaling)(nil)

// NewMeanStdScaling returns a scaler with known statistics. The only option
// consulted is WithEpsilon.
func NewMeanStdScaling(mean, std float64, opts ...Option) (*MeanStdScaling, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newMeanStdScaling(mean, std, cfg.Epsilon)
}

func newMeanStdScaling(mean, std, epsilon float64) (*MeanStdScaling, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: mean %v", errs.ErrInvalidParameter, mean)
	}
	if std < 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return nil, fmt.Errorf("%w: standard deviation %v", errs.ErrInvalidParameter, std)
	}
	if epsilon < 0 || math.IsNaN(epsilon) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("%w: epsilon %v", errs.ErrInvalidParameter, epsilon)
	}

	return &MeanStdScaling{mean: mean, std: std, epsilon: epsilon}, nil
}

// FitMeanStdScaling fits a scaler to the elements of a selected by WithDims and
// WithInds. A dimension without indices covers the whole array.
//
// Parameters:
//   - a: Sample data
//   - opts: WithDims, WithInds and WithEpsilon are consulted
//
// Returns:
//   - *MeanStdScaling: Scaler holding the fitted mean and sample standard deviation
//   - error: ErrEmptySelection when the scope holds no element, selection errors otherwise
//
// Example:
//
//	scaler, err := transform.FitMeanStdScaling(train)
//	if err != nil {
//	    return err
//	}
//	scaled, err := apply.Array(test, scaler)
func FitMeanStdScaling(a *ndarray.Array[float64], opts ...Option) (*MeanStdScaling, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedData)
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	values, err := resolve.Values(a, cfg.Dims, cfg.Inds)
	if err != nil {
		return nil, err
	}

	return fitMeanStd(values, cfg.Epsilon)
}

// FitMeanStdScalingTable fits a scaler to the pooled values of the columns
// selected by WithCols, every column when none is given.
func FitMeanStdScalingTable(tbl *table.Table[float64], opts ...Option) (*MeanStdScaling, error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrUnsupportedData)
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	pos, err := tbl.Select(cfg.Cols)
	if err != nil {
		return nil, err
	}

	values, cleanup := pool.GetFloat64Slice(len(pos) * tbl.NumRows())
	defer cleanup()

	n := 0
	for _, p := range pos {
		n += copy(values[n:], tbl.ColumnAt(p).Values)
	}

	return fitMeanStd(values[:n], cfg.Epsilon)
}

func fitMeanStd(values []float64, epsilon float64) (*MeanStdScaling, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to fit", errs.ErrEmptySelection)
	}

	mean, std := meanStd(values)
	s, err := newMeanStdScaling(mean, std, epsilon)
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug("fitted mean/std scaling",
		zap.Int("samples", len(values)),
		zap.Float64("mean", mean),
		zap.Float64("std", std),
		zap.Float64("epsilon", epsilon),
	)

	return s, nil
}

// meanStd returns the mean and the sample standard deviation of values.
// A single value has a standard deviation of 0.
func meanStd(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}

	return mean, math.Sqrt(ss / float64(len(values)-1))
}

// Mean returns μ.
func (s *MeanStdScaling) Mean() float64 { return s.mean }

// Std returns σ.
func (s *MeanStdScaling) Std() float64 { return s.std }

// Epsilon returns ε.
func (s *MeanStdScaling) Epsilon() float64 { return s.epsilon }

// Cardinality returns OneToOne.
func (s *MeanStdScaling) Cardinality() Cardinality {
	return OneToOne
}

// Forward returns (x - μ) / (σ + ε).
func (s *MeanStdScaling) Forward(x float64) float64 {
	return (x - s.mean) / (s.std + s.epsilon)
}

// Inverse returns y·(σ + ε) + μ.
func (s *MeanStdScaling) Inverse(y float64) float64 {
	return y*(s.std+s.epsilon) + s.mean
}

// Map scales the unit forward, or inverse when cfg.Inverse is set.
// The statistics are never refitted.
func (s *MeanStdScaling) Map(unit [][]float64, cfg *Config) ([]float64, error) {
	if cfg != nil && cfg.Inverse {
		return mapFloat(unit, s.Inverse)
	}

	return mapFloat(unit, s.Forward)
}

// String returns the fitted statistics.
func (s *MeanStdScaling) String() string {
	return fmt.Sprintf("MeanStdScaling{mean=%g, std=%g, epsilon=%g}", s.mean, s.std, s.epsilon)
}
