//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/featx/format"
)

const gozstdLevel = 3

// Compress compresses data with the cgo Zstandard binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decompresses data into a buffer of size bytes.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize(format.CompressionZstd, 0, size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSize(format.CompressionZstd, len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
