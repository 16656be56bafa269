package transform

import (
	"fmt"
	"math"

	"github.com/arloliu/featx/endian"
	"github.com/arloliu/featx/errs"
)

const (
	scalingVersion     = 1
	scalingEncodedSize = 1 + 3*8
)

// MarshalBinary encodes the fitted statistics as a version byte followed by
// mean, std and epsilon as little-endian IEEE-754 float64 values.
func (s *MeanStdScaling) MarshalBinary() ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, scalingEncodedSize)
	buf = append(buf, scalingVersion)
	buf = engine.AppendUint64(buf, math.Float64bits(s.mean))
	buf = engine.AppendUint64(buf, math.Float64bits(s.std))
	buf = engine.AppendUint64(buf, math.Float64bits(s.epsilon))

	return buf, nil
}

// DecodeMeanStdScaling returns a new scaler from data produced by MarshalBinary.
func DecodeMeanStdScaling(data []byte) (*MeanStdScaling, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty scaler state", errs.ErrInvalidSnapshot)
	}
	if data[0] != scalingVersion {
		return nil, fmt.Errorf("%w: scaler state version %d", errs.ErrUnsupportedVersion, data[0])
	}
	if len(data) != scalingEncodedSize {
		return nil, fmt.Errorf("%w: scaler state is %d bytes, want %d", errs.ErrInvalidSnapshot, len(data), scalingEncodedSize)
	}

	engine := endian.GetLittleEndianEngine()
	mean := math.Float64frombits(engine.Uint64(data[1:9]))
	std := math.Float64frombits(engine.Uint64(data[9:17]))
	eps := math.Float64frombits(engine.Uint64(data[17:25]))

	s, err := newMeanStdScaling(mean, std, eps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	return s, nil
}
