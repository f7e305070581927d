package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

// A snappy copy element of 3 bytes emits at most 64 bytes, no stream
// decodes to more than snappyMaxRatio times its own size.
const snappyMaxRatio = 22

type snappyCompressor struct{}

func (s *snappyCompressor) GetType() Type {
	return Snappy
}

func (s *snappyCompressor) Compress(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst[:cap(dst)], src), nil
}

func (s *snappyCompressor) Decompress(buf, compressed []byte) error {
	n, err := s.DecompressedLen(compressed)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("%w: snappy: want %d bytes, buffer has %d", ErrCorrupted, n, len(buf))
	}
	// buf has the exact decoded length, so snappy decodes in place
	if _, err := snappy.Decode(buf, compressed); err != nil {
		return fmt.Errorf("%w: snappy: %v", ErrCorrupted, err)
	}
	return nil
}

func (s *snappyCompressor) DecompressedLen(b []byte) (int, error) {
	n, err := snappy.DecodedLen(b)
	if err != nil {
		return 0, fmt.Errorf("%w: snappy: %v", ErrCorrupted, err)
	}
	if n > len(b)*snappyMaxRatio {
		return 0, fmt.Errorf("%w: snappy: %d bytes cannot decode to %d", ErrCorrupted, len(b), n)
	}
	return n, nil
}

var _ ICompressor = (*snappyCompressor)(nil)
