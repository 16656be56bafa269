package snapshot

import (
	"fmt"
	"math"

	"github.com/arloliu/featx/compress"
	"github.com/arloliu/featx/endian"
	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/internal/encoding"
	"github.com/arloliu/featx/internal/hash"
	"github.com/arloliu/featx/internal/pool"
)

const (
	// Magic opens every frame.
	Magic = "FXSN"
	// Version is the frame format version written by this package.
	Version = 1

	flagBigEndian = 0x1
	flagGorilla   = 0x2
	knownFlags    = flagBigEndian | flagGorilla

	preambleSize      = 8
	payloadHeaderSize = 16
	maxStringLen      = math.MaxUint16
	// a changed gorilla value costs at most 2 control bits, 11 window bits and 64 value bits
	maxGorillaBits = 77
)

// Header describes a frame without decoding its payload.
type Header struct {
	Version     uint8
	Kind        format.ContainerKind
	Encoding    format.EncodingType
	Compression format.CompressionType
	BigEndian   bool
}

// Inspect parses and validates the preamble of a frame.
func Inspect(data []byte) (Header, error) {
	if len(data) < preambleSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the preamble", errs.ErrInvalidSnapshot, len(data))
	}
	if string(data[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[:4])
	}

	h := Header{
		Version:     data[4],
		Kind:        format.ContainerKind(data[5]),
		Encoding:    format.EncodingRaw,
		Compression: format.CompressionType(data[7]),
		BigEndian:   data[6]&flagBigEndian != 0,
	}
	if data[6]&flagGorilla != 0 {
		h.Encoding = format.EncodingGorilla
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: frame version %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if h.Kind != format.KindArray && h.Kind != format.KindTable {
		return Header{}, fmt.Errorf("%w: container kind %d", errs.ErrInvalidSnapshot, h.Kind)
	}
	if data[6]&^knownFlags != 0 {
		return Header{}, fmt.Errorf("%w: unknown flags %#x", errs.ErrInvalidSnapshot, data[6])
	}
	if _, err := compress.GetCodec(h.Compression); err != nil {
		return Header{}, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	return h, nil
}

// writer builds a frame in a pooled buffer.
type writer struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	codec    compress.Codec
	encoding format.EncodingType
}

func newWriter(cfg *config, kind format.ContainerKind) *writer {
	w := &writer{buf: pool.GetFrameBuffer(), engine: cfg.engine, codec: cfg.codec, encoding: cfg.encoding}

	var flags byte
	if endian.IsBigEndian(cfg.engine) {
		flags |= flagBigEndian
	}
	if cfg.encoding == format.EncodingGorilla {
		flags |= flagGorilla
	}
	w.buf.B = append(w.buf.B, Magic...)
	w.buf.B = append(w.buf.B, Version, byte(kind), flags, byte(cfg.codec.Type()))

	return w
}

func (w *writer) release() {
	pool.PutFrameBuffer(w.buf)
	w.buf = nil
}

func (w *writer) u32(v int) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v))
}

func (w *writer) str(s string) error {
	if len(s) > maxStringLen {
		return fmt.Errorf("%w: string of %d bytes exceeds %d", errs.ErrInvalidParameter, len(s), maxStringLen)
	}
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(len(s)))
	w.buf.B = append(w.buf.B, s...)

	return nil
}

// payload encodes the values of every slice in order as one stream,
// compresses it and appends the payload section.
func (w *writer) payload(parts ...[]float64) error {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if uint64(n)*8 > math.MaxUint32 {
		return fmt.Errorf("%w: payload of %d values is too large", errs.ErrInvalidParameter, n)
	}

	raw := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(raw)

	switch w.encoding {
	case format.EncodingGorilla:
		enc := encoding.NewGorillaEncoder(raw)
		for _, p := range parts {
			enc.WriteSlice(p)
		}
		enc.Flush()
	default:
		raw.Grow(n * 8)
		for _, p := range parts {
			for _, v := range p {
				raw.B = w.engine.AppendUint64(raw.B, math.Float64bits(v))
			}
		}
	}
	if uint64(raw.Len()) > math.MaxUint32 {
		return fmt.Errorf("%w: encoded payload of %d bytes is too large", errs.ErrInvalidParameter, raw.Len())
	}

	stored, err := w.codec.Compress(raw.Bytes())
	if err != nil {
		return fmt.Errorf("snapshot: %s compression: %w", w.codec.Type(), err)
	}

	w.buf.Grow(payloadHeaderSize + len(stored))
	w.u32(raw.Len())
	w.u32(len(stored))
	w.buf.B = w.engine.AppendUint64(w.buf.B, hash.Checksum(raw.Bytes()))
	w.buf.B = append(w.buf.B, stored...)

	return nil
}

// bytes returns a copy of the frame that outlives the pooled buffer.
func (w *writer) bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	return out
}

// reader walks a frame, reporting truncation as ErrInvalidSnapshot.
type reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
	header Header
}

func newReader(data []byte, kind format.ContainerKind) (*reader, error) {
	h, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if h.Kind != kind {
		return nil, fmt.Errorf("%w: frame holds %s, want %s", errs.ErrInvalidSnapshot, h.Kind, kind)
	}

	return &reader{data: data, off: preambleSize, engine: endian.FromFlag(h.BigEndian), header: h}, nil
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("%w: truncated at offset %d", errs.ErrInvalidSnapshot, r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *reader) u32() (int, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return int(r.engine.Uint32(b)), nil
}

func (r *reader) str() (string, error) {
	b, err := r.take(2)
	if err != nil {
		return "", err
	}
	s, err := r.take(int(r.engine.Uint16(b)))
	if err != nil {
		return "", err
	}

	return string(s), nil
}

// count reads a u32 element count and rejects counts that cannot fit in the
// rest of the frame at minSize bytes per element.
func (r *reader) count(minSize int) (int, error) {
	n, err := r.u32()
	if err != nil {
		return 0, err
	}
	if minSize > 0 && n > r.remaining()/minSize {
		return 0, fmt.Errorf("%w: count %d exceeds frame size", errs.ErrInvalidSnapshot, n)
	}

	return n, nil
}

// maxValues returns the most float64 values a payload of the frame's encoding
// can describe within the u32 raw length.
func (r *reader) maxValues() uint64 {
	if r.header.Encoding == format.EncodingGorilla {
		// at least one bit per value
		return math.MaxUint32 * 8
	}

	return math.MaxUint32 / 8
}

// payload decompresses and verifies the payload section, which must hold
// exactly want float64 values and end the frame.
func (r *reader) payload(want int) ([]float64, error) {
	rawLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	storedLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	sum, err := r.take(8)
	if err != nil {
		return nil, err
	}
	stored, err := r.take(storedLen)
	if err != nil {
		return nil, err
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, r.remaining())
	}
	switch r.header.Encoding {
	case format.EncodingGorilla:
		if uint64(rawLen) > (uint64(want)*maxGorillaBits+7)/8 {
			return nil, fmt.Errorf("%w: gorilla payload of %d bytes for %d values", errs.ErrInvalidSnapshot, rawLen, want)
		}
		// the first value takes 64 bits and every later one at least 1
		if want > 0 && uint64(want-1)+64 > uint64(rawLen)*8 {
			return nil, fmt.Errorf("%w: gorilla payload of %d bytes cannot hold %d values", errs.ErrInvalidSnapshot, rawLen, want)
		}
	default:
		if rawLen != want*8 {
			return nil, fmt.Errorf("%w: payload holds %d bytes, header describes %d values", errs.ErrInvalidSnapshot, rawLen, want)
		}
	}

	codec, err := compress.GetCodec(r.header.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	raw, err := codec.Decompress(stored, rawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	if hash.Checksum(raw) != r.engine.Uint64(sum) {
		return nil, errs.ErrChecksumMismatch
	}

	if r.header.Encoding == format.EncodingGorilla {
		values, err := encoding.DecodeGorilla(raw, want)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
		}

		return values, nil
	}

	values := make([]float64, want)
	for i := range values {
		values[i] = math.Float64frombits(r.engine.Uint64(raw[i*8:]))
	}

	return values, nil
}
