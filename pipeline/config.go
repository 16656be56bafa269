package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/transform"
)

// Step kinds.
const (
	KindPeriodic          = "periodic"
	KindPower             = "power"
	KindLinearCombination = "linear_combination"
	KindMeanStdScaling    = "mean_std_scaling"
	KindIdentityScaling   = "identity_scaling"
)

// Step modes.
const (
	ModeAppend  = "append"
	ModeInPlace = "inplace"
)

// Config is the YAML document describing a pipeline.
type Config struct {
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig describes one step. Only the fields of its kind are consulted.
type StepConfig struct {
	Name   string   `yaml:"name,omitempty"`
	Kind   string   `yaml:"kind"`
	Cols   []string `yaml:"cols,omitempty"`
	Header []string `yaml:"header,omitempty"`
	Mode   string   `yaml:"mode,omitempty"`

	// periodic
	Func   string  `yaml:"func,omitempty"`
	Period float64 `yaml:"period,omitempty"`
	Phase  float64 `yaml:"phase,omitempty"`

	// power
	Exponent *float64 `yaml:"exponent,omitempty"`

	// linear_combination
	Coefficients []float64 `yaml:"coefficients,omitempty"`

	// mean_std_scaling; statistics are fitted at build time when absent
	Mean    *float64 `yaml:"mean,omitempty"`
	Std     *float64 `yaml:"std,omitempty"`
	Epsilon *float64 `yaml:"epsilon,omitempty"`

	// scaling kinds
	Inverse bool `yaml:"inverse,omitempty"`
}

// LoadFile reads and parses a pipeline configuration file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("pipeline config file path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pipeline config file does not exist: %s", path)
		}

		return nil, fmt.Errorf("failed to stat pipeline config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("pipeline config path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config file: %w", err)
	}

	return Parse(data)
}

// Parse parses a YAML pipeline configuration. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}

		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}

	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ValidationError is a problem found in one field of a configuration.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}

	return e.Message
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}

	return sb.String()
}

// Is makes every validation failure match errs.ErrInvalidParameter.
func (e ValidationErrors) Is(target error) bool {
	return target == errs.ErrInvalidParameter
}

// Validate checks the configuration without building it. The returned error,
// if any, is a ValidationErrors listing every problem.
func (c *Config) Validate() error {
	if c == nil {
		return ValidationErrors{{Message: "configuration is nil"}}
	}

	var v ValidationErrors
	add := func(path, format string, args ...any) {
		v = append(v, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if len(c.Steps) == 0 {
		add("steps", "at least one step is required")
	}

	for i := range c.Steps {
		s := &c.Steps[i]
		path := fmt.Sprintf("steps[%d]", i)

		switch s.mode() {
		case ModeAppend, ModeInPlace:
		default:
			add(path+".mode", "unknown mode %q", s.Mode)
		}
		if s.mode() == ModeInPlace && len(s.Header) > 0 {
			add(path+".header", "in-place steps produce no columns to name")
		}
		if s.Inverse && s.Kind != KindMeanStdScaling && s.Kind != KindIdentityScaling {
			add(path+".inverse", "only scaling steps have an inverse")
		}

		switch s.Kind {
		case KindPeriodic:
			if _, err := transform.ParsePeriodicFunc(s.periodicFunc()); err != nil {
				add(path+".func", "must be sin or cos, got %q", s.Func)
			}
			if !(s.Period > 0) || math.IsInf(s.Period, 0) {
				add(path+".period", "must be a positive number")
			}
		case KindPower:
			if s.Exponent == nil {
				add(path+".exponent", "is required")
			}
		case KindLinearCombination:
			if len(s.Coefficients) == 0 {
				add(path+".coefficients", "at least one coefficient is required")
			}
			if len(s.Cols) > 0 && len(s.Cols) != len(s.Coefficients) {
				add(path+".cols", "%d columns for %d coefficients", len(s.Cols), len(s.Coefficients))
			}
			if s.mode() == ModeInPlace {
				add(path+".mode", "linear_combination reduces columns and cannot run in place")
			}
		case KindMeanStdScaling:
			if (s.Mean == nil) != (s.Std == nil) {
				add(path, "mean and std must be given together")
			}
			if s.Std != nil && *s.Std < 0 {
				add(path+".std", "must not be negative")
			}
			if s.Epsilon != nil && *s.Epsilon < 0 {
				add(path+".epsilon", "must not be negative")
			}
		case KindIdentityScaling:
		case "":
			add(path+".kind", "is required")
		default:
			add(path+".kind", "unknown kind %q", s.Kind)
		}
	}

	if len(v) > 0 {
		return v
	}

	return nil
}

func (s *StepConfig) mode() string {
	if s.Mode == "" {
		return ModeAppend
	}

	return s.Mode
}

func (s *StepConfig) periodicFunc() string {
	if s.Func == "" {
		return transform.Sin.String()
	}

	return s.Func
}

func (s *StepConfig) name(i int) string {
	if s.Name != "" {
		return s.Name
	}

	return fmt.Sprintf("step%d-%s", i+1, s.Kind)
}
