package pool

import "sync"

// float64SlicePool holds scratch slices for gathering selected values,
// for example while fitting scaler statistics.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of exactly size elements.
//
// The contents are unspecified. The caller must call the returned cleanup
// function (typically with defer) once the slice is no longer used, and must
// not retain the slice afterwards.
//
// Example:
//
//	values, cleanup := pool.GetFloat64Slice(n)
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := *ptr
	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
