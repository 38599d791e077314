package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice returns a float64 slice of length size and a release function
// that must be called, usually deferred, once the slice is no longer referenced.
// The contents of the returned slice are unspecified.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	if cap(*ptr) < size {
		*ptr = make([]float64, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { float64SlicePool.Put(ptr) }
}
