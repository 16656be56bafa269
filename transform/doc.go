// Package transform defines the Transform interface, its cardinality contract,
// the options shared by every apply call, and the transforms shipped with featx.
//
// A transform maps one unit of input to output:
//
//	type Transform[In, Out any] interface {
//	    Cardinality() Cardinality
//	    Map(unit [][]In, cfg *Config) ([]Out, error)
//	}
//
// For OneToOne, OneToMany and ManyToMany transforms the unit holds exactly one
// sequence. For ManyToOne transforms it holds one sequence per grouped term,
// all of equal length, and the output has that common length.
//
// Shipped transforms:
//
//   - Power: x^p, OneToOne
//   - Periodic: sin or cos of 2π/period·x + phase, OneToOne
//   - OneHot: indicator vector over a fixed category list, OneToMany
//   - LinearCombination: Σ cᵢ·termᵢ, ManyToOne
//   - HourOfDay: hour of a time.Time, OneToOne
//   - IdentityScaling and MeanStdScaling: scalers with exact inverses, OneToOne
//
// Transforms are immutable after construction and safe to share between
// goroutines. MeanStdScaling fixes its statistics once, when it is fitted.
package transform
