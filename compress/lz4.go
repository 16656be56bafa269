package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/featx/format"
)

// lz4.Compressor keeps hash tables between calls, so instances are pooled.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads with LZ4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns the LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses data into a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block into a buffer of exactly size bytes.
func (c LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize(format.CompressionLZ4, 0, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if err := checkSize(format.CompressionLZ4, n, size); err != nil {
		return nil, err
	}

	return buf[:n], nil
}
