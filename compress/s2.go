package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/featx/format"
)

// S2Compressor compresses payloads with S2, a Snappy-compatible format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns the S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses data using S2 block encoding.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block whose decoded length must be size.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize(format.CompressionS2, 0, size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if err := checkSize(format.CompressionS2, n, size); err != nil {
		return nil, err
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
