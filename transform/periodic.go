package transform

import (
	"fmt"
	"math"

	"github.com/arloliu/featx/errs"
)

// PeriodicFunc selects the trigonometric function of a Periodic transform.
type PeriodicFunc uint8

const (
	Sin PeriodicFunc = iota + 1
	Cos
)

// String returns "sin" or "cos".
func (f PeriodicFunc) String() string {
	switch f {
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	default:
		return "unknown"
	}
}

// ParsePeriodicFunc parses "sin" or "cos".
func ParsePeriodicFunc(s string) (PeriodicFunc, error) {
	switch s {
	case "sin":
		return Sin, nil
	case "cos":
		return Cos, nil
	default:
		return 0, fmt.Errorf("%w: periodic function %q", errs.ErrInvalidParameter, s)
	}
}

// Periodic encodes a cyclic quantity as f(2π/period·x + phase), f being sin or cos.
type Periodic struct {
	fn     PeriodicFunc
	period float64
	phase  float64
}

var _ Transform[float64, float64] = (*Periodic)(nil)

// NewPeriodic returns a Periodic transform.
// period must be finite and positive, phase finite.
func NewPeriodic(fn PeriodicFunc, period, phase float64) (*Periodic, error) {
	if fn != Sin && fn != Cos {
		return nil, fmt.Errorf("%w: periodic function %d", errs.ErrInvalidParameter, fn)
	}
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%w: period %v", errs.ErrInvalidParameter, period)
	}
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return nil, fmt.Errorf("%w: phase %v", errs.ErrInvalidParameter, phase)
	}

	return &Periodic{fn: fn, period: period, phase: phase}, nil
}

// Func returns the trigonometric function.
func (p *Periodic) Func() PeriodicFunc { return p.fn }

// Period returns the period.
func (p *Periodic) Period() float64 { return p.period }

// Phase returns the phase shift in radians.
func (p *Periodic) Phase() float64 { return p.phase }

// Cardinality returns OneToOne.
func (p *Periodic) Cardinality() Cardinality {
	return OneToOne
}

// Eval returns the periodic encoding of x.
func (p *Periodic) Eval(x float64) float64 {
	arg := 2*math.Pi/p.period*x + p.phase
	if p.fn == Cos {
		return math.Cos(arg)
	}

	return math.Sin(arg)
}

// Map encodes every element of the unit.
func (p *Periodic) Map(unit [][]float64, _ *Config) ([]float64, error) {
	return mapFloat(unit, p.Eval)
}
