package utils

import (
	"math"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// GetBuffer returns a byte slice from the pool, sized exactly to size. The
// framing helper in internal/streamio borrows its scratch buffer from this
// pool instead of allocating per call.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) >= size {
		return buf[:size]
	}

	grown, err := SafeMultiply(uint64(size), 2)
	if err != nil || grown > math.MaxInt {
		// size itself is a valid int, so allocating exactly that much is
		// always safe even when doubling it would overflow.
		return make([]byte, size)
	}
	return make([]byte, size, int(grown))
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
