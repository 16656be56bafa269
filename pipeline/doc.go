// Package pipeline runs a YAML-configured sequence of transforms over float64 tables.
//
// A configuration lists steps; each step names a transform kind, the columns
// it reads and whether its result is appended as new columns or written back
// in place:
//
//	steps:
//	  - kind: power
//	    cols: [load]
//	    exponent: 2
//	    header: [load_sq]
//	  - kind: mean_std_scaling
//	    cols: [load_sq]
//	    mode: inplace
//	  - kind: periodic
//	    func: cos
//	    period: 24
//	    cols: [hour]
//	    header: [hour_cos]
//
// Appended columns of a step without a header are named after the step:
// step1-power_1, step1-power_2 and so on.
//
// Build fits scaling steps that carry no statistics against reference data,
// step by step. Pipeline.Config exports the fitted statistics so the same
// pipeline can be rebuilt later without the reference:
//
//	cfg, err := pipeline.LoadFile("features.yaml")
//	p, err := pipeline.Build(cfg, train)
//	out, err := p.Run(test)
package pipeline
