package sequence

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/benbjohnson/immutable"
	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/compression"
	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/internal/bufferpool"
	"go.uber.org/zap"
)

// Snapshot layout:
//
//	+---------------+----------------------+--------------------+------------------+
//	| type (1 byte) | raw length (uvarint) | compressed payload | crc32 (4 bytes)  |
//	+---------------+----------------------+--------------------+------------------+
//
// The checksum covers the compressed payload followed by the type byte.
//
// The raw payload is the list in key order, each element written as
//
//	uvarint(len(key)) | key byte form | uvarint(len(value)) | value
const (
	entryOverhead = 2 * binary.MaxVarintLen32
	maxRawLen     = 1 << 32
	checksumLen   = 4
)

func checksum(payload []byte, t compression.Type) uint32 {
	sum := crc32.ChecksumIEEE(payload)
	return crc32.Update(sum, crc32.IEEETable, []byte{byte(t)})
}

// Snapshot writes every element of the list to w. The elements written are
// the ones present when Snapshot is called.
func (l *List[V]) Snapshot(ctx context.Context, w io.Writer, codec ValueCodec[V]) error {
	m := l.snapshot()

	c, err := compression.NewCompressor(l.opts.compression)
	if err != nil {
		return err
	}

	raw := bufferpool.Get(m.Len() * (entryOverhead + 8))
	defer func() { bufferpool.Put(raw) }()

	itr := m.Iterator()
	itr.First()
	for !itr.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		kb, e, _ := itr.Next()
		vb, err := codec.Encode(e.v)
		if err != nil {
			l.opts.logger.Error("Failed to encode value", zap.Stringer("key", e.k), zap.Error(err))
			return err
		}
		raw = binary.AppendUvarint(raw, uint64(len(kb)))
		raw = append(raw, kb...)
		raw = binary.AppendUvarint(raw, uint64(len(vb)))
		raw = append(raw, vb...)
	}

	header := make([]byte, 0, 1+binary.MaxVarintLen64)
	header = append(header, byte(c.GetType()))
	header = binary.AppendUvarint(header, uint64(len(raw)))

	out, err := c.Compress(bufferpool.Get(len(raw)), raw)
	if err != nil {
		l.opts.logger.Error("Failed to compress snapshot", zap.Stringer("compression", c.GetType()), zap.Error(err))
		return err
	}
	defer func() { bufferpool.Put(out) }()

	if _, err := w.Write(header); err != nil {
		l.opts.logger.Error("Failed to write snapshot header", zap.Error(err))
		return err
	}
	if _, err := w.Write(out); err != nil {
		l.opts.logger.Error("Failed to write snapshot payload", zap.Error(err))
		return err
	}
	trailer := binary.LittleEndian.AppendUint32(nil, checksum(out, c.GetType()))
	if _, err := w.Write(trailer); err != nil {
		l.opts.logger.Error("Failed to write snapshot checksum", zap.Error(err))
		return err
	}
	return nil
}

// Restore replaces the content of the list with the snapshot read from r.
// The list is left untouched when the snapshot is rejected.
func (l *List[V]) Restore(ctx context.Context, r io.Reader, codec ValueCodec[V]) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m, err := l.decodeSnapshot(ctx, data, codec)
	if err != nil {
		l.opts.logger.Warn("Rejected snapshot", zap.Int("size", len(data)), zap.Error(err))
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.m = m
	return nil
}

func (l *List[V]) decodeSnapshot(ctx context.Context, data []byte, codec ValueCodec[V]) (*immutable.SortedMap[string, entry[V]], error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrCorruptSnapshot)
	}
	c, err := compression.NewCompressor(compression.Type(data[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	rawLen, n := binary.Uvarint(data[1:])
	if n <= 0 || rawLen > maxRawLen {
		return nil, fmt.Errorf("%w: bad raw length", ErrCorruptSnapshot)
	}
	payload := data[1+n:]
	if len(payload) < checksumLen {
		return nil, fmt.Errorf("%w: missing checksum", ErrCorruptSnapshot)
	}
	payload, trailer := payload[:len(payload)-checksumLen], payload[len(payload)-checksumLen:]
	if binary.LittleEndian.Uint32(trailer) != checksum(payload, c.GetType()) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}
	// DecompressedLen rejects lengths the payload cannot expand to, so the
	// allocation below is bounded by the input size
	dl, err := c.DecompressedLen(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if uint64(dl) != rawLen {
		return nil, fmt.Errorf("%w: raw length %d does not match payload", ErrCorruptSnapshot, rawLen)
	}

	raw := bufferpool.Get(int(rawLen))[:rawLen]
	defer bufferpool.Put(raw)
	if err := c.Decompress(raw, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	builder := immutable.NewSortedMapBuilder[string, entry[V]](byteFormComparer{})
	var prev *key
	for i := 0; len(raw) > 0; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kb, rest, err := readChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d key: %v", ErrCorruptSnapshot, i, err)
		}
		vb, rest, err := readChunk(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d value: %v", ErrCorruptSnapshot, i, err)
		}
		raw = rest

		k, err := go_fractional_index.FromBytes(kb)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptSnapshot, i, err)
		}
		if prev != nil && !prev.Less(k) {
			return nil, fmt.Errorf("%w: entry %d: key %s out of order", ErrCorruptSnapshot, i, k)
		}
		prev = &k

		v, err := codec.Decode(bytes.Clone(vb))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptSnapshot, i, err)
		}
		builder.Set(mapKey(k), entry[V]{k: k, v: v})
	}
	return builder.Map(), nil
}

func readChunk(b []byte) ([]byte, []byte, error) {
	n, k := binary.Uvarint(b)
	if k <= 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}
	b = b[k:]
	if n > uint64(len(b)) {
		return nil, nil, io.ErrUnexpectedEOF
	}
	return b[:n], b[n:], nil
}
