package compress

import (
	"fmt"
	"testing"
)

func BenchmarkAllCodecs_Compress(b *testing.B) {
	sizes := []int{128, 1024, 16384}

	for name, codec := range getAllCodecs() {
		for _, n := range sizes {
			raw := float64Payload(n)
			b.Run(fmt.Sprintf("%s/Values_%d", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(raw)))
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, _ = codec.Compress(raw)
				}
			})
		}
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	sizes := []int{128, 1024, 16384}

	for name, codec := range getAllCodecs() {
		for _, n := range sizes {
			raw := float64Payload(n)
			stored, err := codec.Compress(raw)
			if err != nil {
				b.Fatal(err)
			}
			b.Run(fmt.Sprintf("%s/Values_%d", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(raw)))
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, _ = codec.Decompress(stored, len(raw))
				}
			})
		}
	}
}
