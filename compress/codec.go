package compress

import (
	"fmt"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
)

// Compressor compresses a snapshot payload.
type Compressor interface {
	// Compress returns the compressed form of data. data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload compressed by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload, which must be exactly size
	// bytes long. data is not modified.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions and reports its algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// GetCodec returns the codec for compressionType.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//
// Returns:
//   - Codec: Codec for the algorithm
//   - error: ErrInvalidParameter for an unknown compression type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: compression %s", errs.ErrInvalidParameter, compressionType)
	}
}

func checkSize(algo format.CompressionType, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s payload expanded to %d bytes, want %d", errs.ErrCorruptPayload, algo, got, want)
	}

	return nil
}
