package compression

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []Type{None, Snappy, Zstd}

func TestNewCompressor(t *testing.T) {
	for _, ct := range allTypes {
		c, err := NewCompressor(ct)
		require.NoError(t, err)
		assert.Equal(t, ct, c.GetType())
	}

	_, err := NewCompressor(Type(42))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "unknown(42)", Type(42).String())
}

func TestCompressor_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		dst  []byte
	}{
		{
			name: "empty input",
			src:  []byte{},
			dst:  make([]byte, 0, 100),
		},
		{
			name: "simple text",
			src:  []byte("hello world"),
			dst:  make([]byte, 0, 100),
		},
		{
			name: "repeated keys",
			src:  bytes.Repeat([]byte{0x02, 0x81, 0x80}, 1000),
			dst:  make([]byte, 0, 16),
		},
		{
			name: "binary data",
			src:  []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0xfd, 0xfc},
			dst:  nil,
		},
		{
			name: "unicode text",
			src:  []byte("Hello 世界 🌍"),
			dst:  make([]byte, 0, 4096),
		},
	}

	for _, ct := range allTypes {
		c, err := NewCompressor(ct)
		require.NoError(t, err)

		for _, tt := range tests {
			t.Run(ct.String()+"/"+tt.name, func(t *testing.T) {
				compressed, err := c.Compress(tt.dst, tt.src)
				require.NoError(t, err)

				n, err := c.DecompressedLen(compressed)
				require.NoError(t, err)
				require.Equal(t, len(tt.src), n)

				buf := make([]byte, n)
				require.NoError(t, c.Decompress(buf, compressed))
				assert.Equal(t, tt.src, buf)
			})
		}
	}
}

func TestCompressor_Corrupted(t *testing.T) {
	src := bytes.Repeat([]byte("fractional"), 64)

	for _, ct := range allTypes {
		c, err := NewCompressor(ct)
		require.NoError(t, err)

		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := c.Compress(nil, src)
			require.NoError(t, err)

			// a buffer of the wrong size is rejected rather than partially filled
			err = c.Decompress(make([]byte, len(src)+1), compressed)
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}

	t.Run("snappy garbage", func(t *testing.T) {
		c, _ := NewCompressor(Snappy)
		_, err := c.DecompressedLen([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("snappy length beyond any expansion", func(t *testing.T) {
		c, _ := NewCompressor(Snappy)
		// varint header claiming 1 GiB followed by a 2 byte body
		payload := binary.AppendUvarint(nil, 1<<30)
		payload = append(payload, 0x00, 0x00)
		_, err := c.DecompressedLen(payload)
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("zstd length beyond any expansion", func(t *testing.T) {
		c, _ := NewCompressor(Zstd)
		small, err := c.Compress(nil, []byte("tiny"))
		require.NoError(t, err)
		_, prefixLen := binary.Uvarint(small)

		forged := binary.AppendUvarint(nil, 1<<31)
		forged = append(forged, small[prefixLen:]...)
		_, err = c.DecompressedLen(forged)
		assert.ErrorIs(t, err, ErrCorrupted)
		assert.ErrorIs(t, c.Decompress(nil, forged), ErrCorrupted)
	})

	t.Run("zstd empty frame", func(t *testing.T) {
		c, _ := NewCompressor(Zstd)
		_, err := c.DecompressedLen([]byte{0x05})
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("zstd truncated prefix", func(t *testing.T) {
		c, _ := NewCompressor(Zstd)
		_, err := c.DecompressedLen([]byte{0x80})
		assert.ErrorIs(t, err, ErrCorrupted)
	})
}
