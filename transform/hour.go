package transform

import "time"

// HourOfDay extracts the hour (0-23) of each timestamp, in the timestamp's location.
type HourOfDay struct{}

var _ Transform[time.Time, float64] = HourOfDay{}

// Cardinality returns OneToOne.
func (HourOfDay) Cardinality() Cardinality {
	return OneToOne
}

// Map returns the hour of every timestamp as a float64.
func (HourOfDay) Map(unit [][]time.Time, _ *Config) ([]float64, error) {
	seq, err := single(unit)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(seq))
	for i, ts := range seq {
		out[i] = float64(ts.Hour())
	}

	return out, nil
}
