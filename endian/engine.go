// Package endian selects the byte order used by featx binary formats.
//
// Snapshot frames and persisted scaler state are written with an EndianEngine,
// which combines binary.ByteOrder and binary.AppendByteOrder so writers can
// append directly into their buffers:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(len(names)))
//
// All functions are safe for concurrent use; the returned engines are stateless.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the featx default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes big-endian data.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromFlag returns the big-endian engine when big is set, little-endian otherwise.
// Frame decoders use it to pick the order recorded in a frame header.
func FromFlag(big bool) EndianEngine {
	if big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
