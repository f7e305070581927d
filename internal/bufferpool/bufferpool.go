// Package bufferpool recycles the scratch buffers of snapshot encoding.
package bufferpool

import (
	"math/bits"
	"sync"
)

const (
	minClassBits = 8
	classCount   = 20
)

// classes[n] holds slices with a capacity of exactly 2^(n+minClassBits).
// Buffers above the largest class are left to the garbage collector.
var classes [classCount]sync.Pool

// Get returns an empty slice whose capacity is at least size.
func Get(size int) []byte {
	id, capacity := classOf(size)
	if id < 0 {
		return make([]byte, 0, size)
	}
	if b, ok := classes[id].Get().(*[]byte); ok {
		return (*b)[:0]
	}
	return make([]byte, 0, capacity)
}

// Put hands buf back for reuse. The caller must not touch buf afterwards.
func Put(buf []byte) {
	id, capacity := classOf(cap(buf))
	if id < 0 || cap(buf) != capacity {
		// only exact class sizes go back, so Get never hands out less than asked
		return
	}
	buf = buf[:0]
	classes[id].Put(&buf)
}

// classOf returns the smallest class that fits size and that class's
// capacity, or -1 when size exceeds every class.
func classOf(size int) (int, int) {
	size--
	size = max(size, 0)
	id := bits.Len(uint(size >> minClassBits))
	if id >= classCount {
		return -1, 0
	}
	return id, 1 << (id + minClassBits)
}
