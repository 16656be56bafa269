package compress

import "github.com/arloliu/featx/format"

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns the pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns data itself, without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking its length.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkSize(format.CompressionNone, len(data), size); err != nil {
		return nil, err
	}

	return data, nil
}
