//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/featx/format"
)

// Decoders and encoders are pooled; klauspost/compress/zstd runs without
// allocations once an instance is warm.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses data with a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses data with a pooled decoder into a buffer of size bytes.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize(format.CompressionZstd, 0, size)
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSize(format.CompressionZstd, len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
