// Package encoding holds the bit-level float64 codec used for snapshot payloads.
package encoding

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/featx/endian"
	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/pool"
)

// GorillaEncoder XOR-compresses float64 values with the Gorilla scheme
// (https://www.vldb.org/pvldb/vol8/p1816-teller.pdf):
//
//  1. The first value is stored as-is in 64 bits.
//  2. An unchanged value is a single 0 bit.
//  3. A changed value is a 1 bit followed by either a 0 bit and the
//     meaningful bits inside the previous window, or a 1 bit, 5 bits of
//     leading zeros, 6 bits of window length minus one and the meaningful bits.
//
// Bits are packed most significant first. Values written by successive
// WriteSlice calls form one stream.
type GorillaEncoder struct {
	buf      *pool.ByteBuffer
	bitBuf   uint64
	bitCount int
	count    int
	prev     uint64
	leading  int
	trailing int
	window   int
}

// NewGorillaEncoder returns an encoder appending to buf.
func NewGorillaEncoder(buf *pool.ByteBuffer) *GorillaEncoder {
	return &GorillaEncoder{buf: buf}
}

// Len returns the number of values written.
func (e *GorillaEncoder) Len() int {
	return e.count
}

// WriteSlice encodes values in order.
func (e *GorillaEncoder) WriteSlice(values []float64) {
	for _, v := range values {
		e.Write(v)
	}
}

// Write encodes one value.
func (e *GorillaEncoder) Write(v float64) {
	cur := math.Float64bits(v)
	e.count++

	if e.count == 1 {
		e.prev = cur
		e.writeBits(cur, 64)

		return
	}

	xor := cur ^ e.prev
	e.prev = cur
	if xor == 0 {
		e.writeBits(0, 1)
		return
	}
	e.writeBits(1, 1)

	// the leading-zero count has 5 bits; extra zeros stay inside the window
	leading := min(bits.LeadingZeros64(xor), 31)
	trailing := bits.TrailingZeros64(xor)

	if e.window > 0 && leading >= e.leading && trailing >= e.trailing {
		e.writeBits(0, 1)
		e.writeBits(xor>>e.trailing, e.window)

		return
	}

	window := 64 - leading - trailing
	e.writeBits(1, 1)
	e.writeBits(uint64(leading), 5)  //nolint:gosec // 0..31
	e.writeBits(uint64(window-1), 6) //nolint:gosec // 0..63
	e.writeBits(xor>>trailing, window)
	e.leading, e.trailing, e.window = leading, trailing, window
}

// Flush writes pending bits, padding the last byte with zeros. It must be
// called once after the last Write.
func (e *GorillaEncoder) Flush() {
	if e.bitCount == 0 {
		return
	}

	aligned := e.bitBuf << (64 - e.bitCount)
	for i := range (e.bitCount + 7) / 8 {
		e.buf.B = append(e.buf.B, byte(aligned>>(56-8*i)))
	}
	e.bitBuf, e.bitCount = 0, 0
}

func (e *GorillaEncoder) writeBits(value uint64, n int) {
	if n < 64 {
		value &= 1<<n - 1
	}

	free := 64 - e.bitCount
	if n < free {
		e.bitBuf = e.bitBuf<<n | value
		e.bitCount += n

		return
	}

	// fill the word, emit it and keep the low bits that did not fit
	rest := n - free
	e.bitBuf = e.bitBuf<<free | value>>rest
	e.buf.B = endian.GetBigEndianEngine().AppendUint64(e.buf.B, e.bitBuf)
	e.bitBuf = value & (1<<rest - 1)
	e.bitCount = rest
}

// DecodeGorilla decodes exactly count values from a stream written by
// GorillaEncoder. The stream must end with the last value's byte.
func DecodeGorilla(data []byte, count int) ([]float64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", errs.ErrInvalidParameter, count)
	}

	if count > 0 && uint64(count-1)+64 > uint64(len(data))*8 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d values", errs.ErrCorruptPayload, len(data), count)
	}

	out := make([]float64, count)
	br := bitReader{data: data}

	var prev uint64
	var trailing, window int
	for i := range out {
		if i == 0 {
			first, ok := br.readBits(64)
			if !ok {
				return nil, truncated(i)
			}
			prev = first
			out[i] = math.Float64frombits(prev)

			continue
		}

		changed, ok := br.readBits(1)
		if !ok {
			return nil, truncated(i)
		}
		if changed == 0 {
			out[i] = math.Float64frombits(prev)
			continue
		}

		fresh, ok := br.readBits(1)
		if !ok {
			return nil, truncated(i)
		}
		if fresh == 1 {
			leading, ok1 := br.readBits(5)
			length, ok2 := br.readBits(6)
			if !ok1 || !ok2 {
				return nil, truncated(i)
			}
			window = int(length) + 1
			trailing = 64 - int(leading) - window
			if trailing < 0 {
				return nil, fmt.Errorf("%w: gorilla window of %d bits after %d leading zeros", errs.ErrCorruptPayload, window, leading)
			}
		} else if window == 0 {
			return nil, fmt.Errorf("%w: gorilla value %d reuses an undefined window", errs.ErrCorruptPayload, i)
		}

		meaningful, ok := br.readBits(window)
		if !ok {
			return nil, truncated(i)
		}
		prev ^= meaningful << trailing
		out[i] = math.Float64frombits(prev)
	}

	if used := (br.consumed() + 7) / 8; used != len(data) {
		return nil, fmt.Errorf("%w: gorilla stream has %d bytes, %d used", errs.ErrCorruptPayload, len(data), used)
	}

	return out, nil
}

func truncated(i int) error {
	return fmt.Errorf("%w: gorilla stream ends before value %d", errs.ErrCorruptPayload, i)
}

// bitReader reads bits most significant first.
type bitReader struct {
	data     []byte
	pos      int
	bitBuf   uint64
	bitCount int
}

// consumed returns the number of bits read so far.
func (br *bitReader) consumed() int {
	return br.pos*8 - br.bitCount
}

func (br *bitReader) fill() bool {
	if br.pos >= len(br.data) {
		return false
	}

	if len(br.data)-br.pos >= 8 {
		br.bitBuf = endian.GetBigEndianEngine().Uint64(br.data[br.pos:])
		br.pos += 8
		br.bitCount = 64

		return true
	}

	n := len(br.data) - br.pos
	br.bitBuf = 0
	for _, b := range br.data[br.pos:] {
		br.bitBuf = br.bitBuf<<8 | uint64(b)
	}
	br.bitBuf <<= 64 - 8*n
	br.pos += n
	br.bitCount = 8 * n

	return true
}

func (br *bitReader) readBits(n int) (uint64, bool) {
	var result uint64
	for n > 0 {
		if br.bitCount == 0 && !br.fill() {
			return 0, false
		}

		take := min(n, br.bitCount)
		result = result<<take | br.bitBuf>>(64-take)
		br.bitBuf <<= take
		br.bitCount -= take
		n -= take
	}

	return result, true
}
