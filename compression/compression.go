// Package compression holds the block compressors used by list snapshots.
package compression

import (
	"errors"
	"fmt"
)

// Type is the compression algorithm of a snapshot payload. It is written as
// the first byte of every snapshot, so the values must never be renumbered.
type Type byte

const (
	None Type = iota
	Snappy
	Zstd
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

var (
	ErrUnknownType = errors.New("unknown compression type")
	ErrCorrupted   = errors.New("corrupted compressed payload")
)

type ICompressor interface {
	GetType() Type
	// Compress a payload, writing the compressed data to dst[:0] when it
	// has room.
	Compress(dst, src []byte) ([]byte, error)
	// Decompress decompresses compressed into buf. The buf slice must have the
	// exact size as the decompressed value. Callers may use DecompressedLen to
	// determine the correct size.
	Decompress(buf, compressed []byte) error
	// DecompressedLen returns the length of the provided payload once
	// decompressed. A length the payload cannot possibly decode to is
	// rejected, so callers may allocate the result safely.
	DecompressedLen(b []byte) (int, error)
}

func NewCompressor(t Type) (ICompressor, error) {
	switch t {
	case None:
		return &noneCompressor{}, nil
	case Snappy:
		return &snappyCompressor{}, nil
	case Zstd:
		return &zstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

type noneCompressor struct{}

func (n *noneCompressor) GetType() Type {
	return None
}

func (n *noneCompressor) Compress(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}

func (n *noneCompressor) Decompress(buf, compressed []byte) error {
	if len(buf) != len(compressed) {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrCorrupted, len(buf), len(compressed))
	}
	copy(buf, compressed)
	return nil
}

func (n *noneCompressor) DecompressedLen(b []byte) (int, error) {
	return len(b), nil
}

var _ ICompressor = (*noneCompressor)(nil)
