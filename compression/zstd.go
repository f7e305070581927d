package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/DataDog/zstd"
)

const (
	defaultZstdLevel = 3

	// An RLE block spends 4 bytes on at most 128 KiB of output, no frame
	// decodes to more than zstdMaxRatio times its own size.
	zstdMaxRatio = 1 << 15
)

// zstdCompressor prefixes every payload with the uvarint length of the
// uncompressed data so DecompressedLen needs no decoding.
type zstdCompressor struct{}

func (z *zstdCompressor) GetType() Type {
	return Zstd
}

func (z *zstdCompressor) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return binary.AppendUvarint(dst[:0], 0), nil
	}

	bound := zstd.CompressBound(len(src))
	if cap(dst) < binary.MaxVarintLen64+bound {
		dst = make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+bound)
	}
	dst = dst[:binary.MaxVarintLen64+bound]

	varIntLen := binary.PutUvarint(dst, uint64(len(src)))
	result, err := zstd.NewCtx().CompressLevel(dst[varIntLen:varIntLen+bound], src, defaultZstdLevel)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if &result[0] != &dst[varIntLen] {
		// the library re-allocated, move the frame back behind the prefix
		copy(dst[varIntLen:], result)
	}
	return dst[:varIntLen+len(result)], nil
}

func (z *zstdCompressor) Decompress(buf, compressed []byte) error {
	n, err := z.DecompressedLen(compressed)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("%w: zstd: want %d bytes, buffer has %d", ErrCorrupted, n, len(buf))
	}
	if n == 0 {
		return nil
	}

	_, prefixLen := binary.Uvarint(compressed)
	out, err := zstd.NewCtx().DecompressInto(buf, compressed[prefixLen:])
	if err != nil {
		return fmt.Errorf("%w: zstd: %v", ErrCorrupted, err)
	}
	if out != len(buf) {
		return fmt.Errorf("%w: zstd: decoded %d of %d bytes", ErrCorrupted, out, len(buf))
	}
	return nil
}

func (z *zstdCompressor) DecompressedLen(b []byte) (int, error) {
	n, varIntLen := binary.Uvarint(b)
	if varIntLen <= 0 {
		return 0, fmt.Errorf("%w: zstd: bad length prefix", ErrCorrupted)
	}
	frame := uint64(len(b) - varIntLen)
	if n > 0 && frame == 0 {
		return 0, fmt.Errorf("%w: zstd: empty frame", ErrCorrupted)
	}
	if n > frame*zstdMaxRatio {
		return 0, fmt.Errorf("%w: zstd: %d bytes cannot decode to %d", ErrCorrupted, frame, n)
	}
	return int(n), nil
}

var _ ICompressor = (*zstdCompressor)(nil)
