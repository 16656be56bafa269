package format

type (
	ContainerKind   uint8
	EncodingType    uint8
	CompressionType uint8
)

const (
	KindArray ContainerKind = 0x1 // KindArray is a rectangular numeric array.
	KindTable ContainerKind = 0x2 // KindTable is a table of named, equal-length columns.

	EncodingRaw     EncodingType = 0x1 // EncodingRaw stores float64 values as fixed 8-byte words.
	EncodingGorilla EncodingType = 0x2 // EncodingGorilla stores float64 values XOR-compressed.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k ContainerKind) String() string {
	switch k {
	case KindArray:
		return "Array"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

func (e EncodingType) String() string {
	switch e {
	case EncodingRaw:
		return "Raw"
	case EncodingGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
