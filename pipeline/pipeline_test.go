package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/table"
	"github.com/arloliu/featx/transform"
)

const sampleYAML = `
steps:
  - kind: power
    cols: [a]
    exponent: 2
    header: [a_sq]
  - kind: mean_std_scaling
    cols: [a_sq]
    mode: inplace
  - kind: linear_combination
    cols: [a, b]
    coefficients: [1, -1]
    header: [a_minus_b]
  - name: hour-encoding
    kind: periodic
    func: cos
    period: 24
    cols: [hour]
    header: [hour_cos]
`

func sampleTable(t *testing.T) *table.Table[float64] {
	t.Helper()

	tbl, err := table.New(
		table.Column[float64]{Name: "a", Values: []float64{1, 2, 3}},
		table.Column[float64]{Name: "b", Values: []float64{4, 5, 6}},
		table.Column[float64]{Name: "hour", Values: []float64{0, 6, 12}},
	)
	require.NoError(t, err)

	return tbl
}

func column(t *testing.T, tbl *table.Table[float64], name string) []float64 {
	t.Helper()

	col, ok := tbl.Column(name)
	require.True(t, ok, "column %q missing from %s", name, tbl)

	return col
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, cfg.Steps, 4, spew.Sdump(cfg))
	require.NoError(t, cfg.Validate())

	require.Equal(t, KindPower, cfg.Steps[0].Kind)
	require.Equal(t, 2.0, *cfg.Steps[0].Exponent)
	require.Equal(t, ModeInPlace, cfg.Steps[1].Mode)
	require.Nil(t, cfg.Steps[1].Mean)
	require.Equal(t, []float64{1, -1}, cfg.Steps[2].Coefficients)
	require.Equal(t, "hour-encoding", cfg.Steps[3].Name)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - kind: power\n    exponnent: 2\n"))
	require.Error(t, err)

	_, err = Parse([]byte("steps: [unclosed"))
	require.Error(t, err)

	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), errs.ErrInvalidParameter)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Steps, 4)

	_, err = LoadFile("")
	require.Error(t, err)
	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	_, err = LoadFile(dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	neg := -1.0
	two := 2.0

	tests := []struct {
		name string
		step StepConfig
		path string
	}{
		{"missing kind", StepConfig{}, "steps[0].kind"},
		{"unknown kind", StepConfig{Kind: "log"}, "steps[0].kind"},
		{"unknown mode", StepConfig{Kind: KindIdentityScaling, Mode: "replace"}, "steps[0].mode"},
		{"periodic func", StepConfig{Kind: KindPeriodic, Func: "tan", Period: 1}, "steps[0].func"},
		{"periodic period", StepConfig{Kind: KindPeriodic}, "steps[0].period"},
		{"power exponent", StepConfig{Kind: KindPower}, "steps[0].exponent"},
		{"no coefficients", StepConfig{Kind: KindLinearCombination}, "steps[0].coefficients"},
		{"coefficient count", StepConfig{Kind: KindLinearCombination, Cols: []string{"a"}, Coefficients: []float64{1, 2}}, "steps[0].cols"},
		{"reduction in place", StepConfig{Kind: KindLinearCombination, Coefficients: []float64{1}, Mode: ModeInPlace}, "steps[0].mode"},
		{"mean without std", StepConfig{Kind: KindMeanStdScaling, Mean: &two}, "steps[0]"},
		{"negative std", StepConfig{Kind: KindMeanStdScaling, Mean: &two, Std: &neg}, "steps[0].std"},
		{"negative epsilon", StepConfig{Kind: KindMeanStdScaling, Epsilon: &neg}, "steps[0].epsilon"},
		{"inverse power", StepConfig{Kind: KindPower, Exponent: &two, Inverse: true}, "steps[0].inverse"},
		{"header in place", StepConfig{Kind: KindPower, Exponent: &two, Mode: ModeInPlace, Header: []string{"x"}}, "steps[0].header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{Steps: []StepConfig{tt.step}}).Validate()
			require.ErrorIs(t, err, errs.ErrInvalidParameter)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Equal(t, tt.path, verrs[0].Path, spew.Sdump(verrs))
		})
	}

	var nilCfg *Config
	require.ErrorIs(t, nilCfg.Validate(), errs.ErrInvalidParameter)
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := &Config{Steps: []StepConfig{{Kind: KindPower}, {Kind: "nope"}}}

	err := cfg.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	require.Contains(t, err.Error(), "2 validation errors")
}

func TestBuildAndRun(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	ref := sampleTable(t)
	p, err := Build(cfg, ref)
	require.NoError(t, err)
	require.Equal(t, 4, p.Len())
	require.Equal(t, []string{"a", "b", "hour"}, ref.Names())

	scaler, ok := p.Steps()[1].Transform().(*transform.MeanStdScaling)
	require.True(t, ok)
	require.InDelta(t, 14.0/3, scaler.Mean(), 1e-12)
	require.InDelta(t, math.Sqrt(49.0/3), scaler.Std(), 1e-12)
	require.Equal(t, "hour-encoding", p.Steps()[3].Name())
	require.Equal(t, "step1-power", p.Steps()[0].Name())

	out, err := p.Run(ref)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "hour", "a_sq", "a_minus_b", "hour_cos"}, out.Names())

	sq := column(t, out, "a_sq")
	require.InDelta(t, 0.0, sq[0]+sq[1]+sq[2], 1e-9)
	require.InDeltaSlice(t, []float64{-3, -3, -3}, column(t, out, "a_minus_b"), 1e-12)
	require.InDeltaSlice(t, []float64{1, 0, -1}, column(t, out, "hour_cos"), 1e-12)

	require.Equal(t, []string{"a", "b", "hour"}, ref.Names())
	require.Equal(t, []float64{1, 2, 3}, column(t, ref, "a"))
}

func TestPipeline_ConfigRebuild(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	ref := sampleTable(t)
	p, err := Build(cfg, ref)
	require.NoError(t, err)

	data, err := p.Config().Marshal()
	require.NoError(t, err)

	restored, err := Parse(data)
	require.NoError(t, err)
	require.NotNil(t, restored.Steps[1].Mean, string(data))

	rebuilt, err := Build(restored, nil)
	require.NoError(t, err)

	want, err := p.Run(ref)
	require.NoError(t, err)
	got, err := rebuilt.Run(ref)
	require.NoError(t, err)
	for _, name := range want.Names() {
		require.Equal(t, column(t, want, name), column(t, got, name), name)
	}
}

func TestBuild_Errors(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	_, err = Build(cfg, nil)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	missing := &Config{Steps: []StepConfig{{Kind: KindMeanStdScaling, Cols: []string{"zzz"}}}}
	_, err = Build(missing, sampleTable(t))
	require.ErrorIs(t, err, errs.ErrUnknownColumn)

	_, err = Build(&Config{}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestRun_DefaultColumnNames(t *testing.T) {
	cfg, err := Parse([]byte(`
steps:
  - kind: power
    cols: [a]
    exponent: 2
  - kind: power
    cols: [b]
    exponent: 2
  - name: sum
    kind: linear_combination
    cols: [a, b]
    coefficients: [1, 1]
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	p, err := Build(cfg, nil)
	require.NoError(t, err)

	out, err := p.Run(sampleTable(t))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "hour", "step1-power_1", "step2-power_1", "sum_1"}, out.Names())
	require.Equal(t, []float64{1, 4, 9}, column(t, out, "step1-power_1"))
	require.Equal(t, []float64{16, 25, 36}, column(t, out, "step2-power_1"))
	require.Equal(t, []float64{5, 7, 9}, column(t, out, "sum_1"))
}

func TestRun_Errors(t *testing.T) {
	one := 1.0
	p, err := Build(&Config{Steps: []StepConfig{
		{Kind: KindPower, Exponent: &one, Cols: []string{"a"}, Header: []string{"b"}},
	}}, nil)
	require.NoError(t, err)

	_, err = p.Run(sampleTable(t))
	require.ErrorIs(t, err, errs.ErrNameCollision)

	_, err = p.Run(nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedData)
}
