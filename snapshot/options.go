package snapshot

import (
	"fmt"

	"github.com/arloliu/featx/compress"
	"github.com/arloliu/featx/endian"
	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/format"
	"github.com/arloliu/featx/internal/options"
)

type config struct {
	engine   endian.EndianEngine
	codec    compress.Codec
	encoding format.EncodingType
}

// Option configures an encoder.
type Option = options.Option[*config]

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		engine:   endian.GetLittleEndianEngine(),
		codec:    compress.NewNoOpCompressor(),
		encoding: format.EncodingRaw,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression selects the payload codec. The default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		codec, err := compress.GetCodec(c)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		cfg.codec = codec

		return nil
	})
}

// WithLittleEndian writes the frame in little-endian byte order, the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes the frame in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithValueEncoding selects how payload values are laid out before
// compression: format.EncodingRaw (the default) or format.EncodingGorilla.
func WithValueEncoding(e format.EncodingType) Option {
	return options.New(func(cfg *config) error {
		switch e {
		case format.EncodingRaw, format.EncodingGorilla:
			cfg.encoding = e
			return nil
		default:
			return fmt.Errorf("snapshot: %w: value encoding %s (%d)", errs.ErrInvalidParameter, e, e)
		}
	})
}
