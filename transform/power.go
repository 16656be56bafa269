package transform

import "math"

// Power raises every element to a fixed exponent.
type Power struct {
	exponent float64
}

var _ Transform[float64, float64] = (*Power)(nil)

// NewPower returns a Power transform computing x^exponent.
func NewPower(exponent float64) *Power {
	return &Power{exponent: exponent}
}

// Exponent returns the exponent.
func (p *Power) Exponent() float64 {
	return p.exponent
}

// Cardinality returns OneToOne.
func (p *Power) Cardinality() Cardinality {
	return OneToOne
}

// Eval returns x^p.
func (p *Power) Eval(x float64) float64 {
	return math.Pow(x, p.exponent)
}

// Map raises every element of the unit to the exponent.
func (p *Power) Map(unit [][]float64, _ *Config) ([]float64, error) {
	return mapFloat(unit, p.Eval)
}
