// Package snapshot encodes float64 arrays and tables into self-describing
// binary frames and decodes them back.
//
// Frame layout:
//
//	preamble (8 bytes)
//	    magic "FXSN" | version u8 | kind u8 | flags u8 | compression u8
//	header (frame byte order)
//	    array: ndim u32 | shape u32 × ndim | per axis: name, nlabels u32, labels
//	    table: ncols u32 | nrows u32 | names
//	payload
//	    rawLen u32 | storedLen u32 | xxhash64(raw) u64 | stored bytes
//
// Strings are a u16 length followed by UTF-8 bytes. Bit 0 of flags marks a
// big-endian frame. The raw payload holds the float64 values, row-major for
// arrays and column after column for tables, either as 8-byte IEEE-754 words
// or, when bit 1 of flags is set, as one Gorilla XOR stream
// (WithValueEncoding). It is compressed with the codec named in the preamble
// and verified against its checksum on decode.
//
//	data, err := snapshot.EncodeArray(a, snapshot.WithCompression(format.CompressionZstd))
//	...
//	restored, err := snapshot.DecodeArray(data)
package snapshot
