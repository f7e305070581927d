package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		size     int
		id       int
		capacity int
	}{
		{size: 0, id: 0, capacity: 256},
		{size: 1, id: 0, capacity: 256},
		{size: 256, id: 0, capacity: 256},
		{size: 257, id: 1, capacity: 512},
		{size: 1024, id: 2, capacity: 1024},
		{size: 1025, id: 3, capacity: 2048},
		{size: 1 << 27, id: 19, capacity: 1 << 27},
		{size: 1<<27 + 1, id: -1, capacity: 0},
	}

	for _, tc := range tests {
		id, capacity := classOf(tc.size)
		assert.Equal(t, tc.id, id, "size %d", tc.size)
		assert.Equal(t, tc.capacity, capacity, "size %d", tc.size)
	}
}

func TestGetPut(t *testing.T) {
	for _, size := range []int{0, 10, 300, 5000, 70000} {
		buf := Get(size)
		assert.Empty(t, buf)
		assert.GreaterOrEqual(t, cap(buf), size)

		buf = append(buf, make([]byte, size)...)
		Put(buf)

		again := Get(size)
		assert.Empty(t, again)
		assert.GreaterOrEqual(t, cap(again), size)
	}

	// odd capacities are dropped, never handed out for a larger request
	Put(make([]byte, 0, 300))
	assert.GreaterOrEqual(t, cap(Get(500)), 500)
}
