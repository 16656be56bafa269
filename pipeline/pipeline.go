package pipeline

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/arloliu/featx/apply"
	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/logging"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

// Step is one built step of a pipeline.
type Step struct {
	name    string
	conf    StepConfig
	t       transform.Transform[float64, float64]
	opts    []transform.Option
	inPlace bool
}

// Name returns the configured or generated step name.
func (s *Step) Name() string { return s.name }

// Kind returns the step kind.
func (s *Step) Kind() string { return s.conf.Kind }

// Transform returns the built transform.
func (s *Step) Transform() transform.Transform[float64, float64] { return s.t }

func (s *Step) run(tbl *table.Table[float64]) (*table.Table[float64], error) {
	if s.inPlace {
		return apply.TableInPlace(tbl, s.t, s.opts...)
	}

	if s.conf.Header != nil {
		return apply.TableAppend(tbl, s.t, s.opts...)
	}

	// without a header, produced columns are named <step>_1, <step>_2, ...
	cols, err := apply.Table(tbl, s.t, s.opts...)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i].Name = s.name + "_" + strconv.Itoa(i+1)
	}

	return tbl.With(cols...)
}

// Pipeline is an ordered sequence of table transforms built from a Config.
// It is immutable and may be shared between goroutines.
type Pipeline struct {
	steps []*Step
}

// Build validates cfg and builds its steps in order.
//
// Scaling steps without statistics are fitted once, against reference as it
// looks after the preceding steps have run, so a step may scale columns an
// earlier step appended. reference itself is not modified and may be nil when
// every scaling step carries its statistics.
func Build(cfg *Config, reference *table.Table[float64]) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ref *table.Table[float64]
	if reference != nil {
		ref = reference.Clone()
	}

	p := &Pipeline{steps: make([]*Step, 0, len(cfg.Steps))}
	for i, sc := range cfg.Steps {
		step, err := buildStep(i, sc, ref)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %q: %w", sc.name(i), err)
		}
		p.steps = append(p.steps, step)

		if ref != nil && i < len(cfg.Steps)-1 {
			if ref, err = step.run(ref); err != nil {
				return nil, fmt.Errorf("pipeline step %q on reference: %w", step.name, err)
			}
		}
	}

	return p, nil
}

func buildStep(i int, sc StepConfig, ref *table.Table[float64]) (*Step, error) {
	step := &Step{name: sc.name(i), conf: sc, inPlace: sc.mode() == ModeInPlace}

	if sc.Cols != nil {
		step.opts = append(step.opts, transform.WithCols(sc.Cols...))
	}
	if sc.Header != nil {
		step.opts = append(step.opts, transform.WithHeader(sc.Header...))
	}
	if sc.Inverse {
		step.opts = append(step.opts, transform.WithInverse(true))
	}

	var err error
	switch sc.Kind {
	case KindPeriodic:
		fn, _ := transform.ParsePeriodicFunc(sc.periodicFunc())
		step.t, err = transform.NewPeriodic(fn, sc.Period, sc.Phase)
	case KindPower:
		step.t = transform.NewPower(*sc.Exponent)
	case KindLinearCombination:
		step.t, err = transform.NewLinearCombination(sc.Coefficients...)
	case KindIdentityScaling:
		step.t = transform.IdentityScaling{}
	case KindMeanStdScaling:
		step.t, err = buildScaling(&step.conf, ref)
	default:
		err = fmt.Errorf("%w: unknown kind %q", errs.ErrInvalidParameter, sc.Kind)
	}
	if err != nil {
		return nil, err
	}

	return step, nil
}

// buildScaling returns a scaler from the configured statistics, or fits one to
// ref and records the fitted statistics in sc.
func buildScaling(sc *StepConfig, ref *table.Table[float64]) (*transform.MeanStdScaling, error) {
	var opts []transform.Option
	if sc.Epsilon != nil {
		opts = append(opts, transform.WithEpsilon(*sc.Epsilon))
	}

	if sc.Mean != nil {
		return transform.NewMeanStdScaling(*sc.Mean, *sc.Std, opts...)
	}

	if ref == nil {
		return nil, fmt.Errorf("%w: mean_std_scaling without statistics needs reference data", errs.ErrInvalidParameter)
	}
	if sc.Cols != nil {
		opts = append(opts, transform.WithCols(sc.Cols...))
	}

	s, err := transform.FitMeanStdScalingTable(ref, opts...)
	if err != nil {
		return nil, err
	}

	mean, std, eps := s.Mean(), s.Std(), s.Epsilon()
	sc.Mean, sc.Std, sc.Epsilon = &mean, &std, &eps

	return s, nil
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Steps returns the built steps in order.
func (p *Pipeline) Steps() []*Step {
	out := make([]*Step, len(p.steps))
	copy(out, p.steps)

	return out
}

// Config returns a configuration that rebuilds this pipeline without
// reference data: fitted statistics are filled in.
func (p *Pipeline) Config() *Config {
	cfg := &Config{Steps: make([]StepConfig, len(p.steps))}
	for i, s := range p.steps {
		cfg.Steps[i] = s.conf
		cfg.Steps[i].Name = s.name
	}

	return cfg
}

// Run applies every step to a copy of tbl and returns the result.
// tbl is never modified.
func (p *Pipeline) Run(tbl *table.Table[float64]) (*table.Table[float64], error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrUnsupportedData)
	}

	log := logging.Logger()
	out := tbl.Clone()
	for i, s := range p.steps {
		var err error
		if out, err = s.run(out); err != nil {
			return nil, fmt.Errorf("pipeline step %q: %w", s.name, err)
		}

		log.Debug("pipeline step",
			zap.Int("index", i),
			zap.String("name", s.name),
			zap.String("kind", s.conf.Kind),
			zap.Bool("in_place", s.inPlace),
			zap.Int("columns", out.NumCols()),
		)
	}

	return out, nil
}
