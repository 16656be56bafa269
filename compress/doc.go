// Package compress provides the payload codecs used by featx snapshots.
//
// A snapshot stores its raw float64 payload either as is or compressed with one
// of the supported algorithms:
//   - None: no compression
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Every frame records the raw payload length, so decompression takes the
// expected size, preallocates exactly once and rejects payloads that expand
// to anything else with errs.ErrCorruptPayload.
//
// # Zstd backends
//
// Zstd uses github.com/klauspost/compress/zstd, a pure-Go implementation, by
// default. Building with cgo and the gozstd tag switches to the cgo binding
// github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both backends produce standard Zstandard frames and are interchangeable.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(raw)
//	...
//	raw, err = codec.Decompress(stored, rawLen)
//
// Codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
