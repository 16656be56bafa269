package compress

import "github.com/arloliu/featx/format"

// ZstdCompressor compresses payloads with Zstandard. It gives the best ratio
// of the supported codecs and suits snapshots kept on disk.
//
// The backend is pure Go unless built with cgo and the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns the Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
