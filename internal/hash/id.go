// Package hash provides the 64-bit hashes used to index column names and to
// checksum snapshot payloads.
package hash

import "github.com/cespare/xxhash/v2"

// ColumnID returns the xxHash64 of a column name.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum returns the xxHash64 of a byte payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
