package go_fractional_index

import (
	"bytes"

	"go.uber.org/zap"
)

// comparer orders byte forms of FractionalIndex. Since the byte form is
// order preserving, Compare is a plain bytes.Compare; Separator and Successor
// build real keys, so their output can be decoded back into a FractionalIndex.
type comparer struct {
	logger *zap.Logger
}

func (c comparer) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

func (c comparer) Separator(dst, a, b []byte) []byte {
	low, err := FromBytes(a)
	if err != nil {
		c.logger.Warn("Separator got an undecodable lower key", zap.Binary("key", a), zap.Error(err))
		return append(dst, a...)
	}
	high, err := FromBytes(b)
	if err != nil {
		c.logger.Warn("Separator got an undecodable upper key", zap.Binary("key", b), zap.Error(err))
		return append(dst, a...)
	}
	if Compare(low, high) >= 0 {
		return append(dst, a...)
	}

	sep, err := NewBetween(low, high)
	if err != nil {
		return append(dst, a...)
	}
	// a itself is a valid separator, prefer it when it is not longer
	if len(a) <= len(sep.digits)+1 {
		return append(dst, a...)
	}
	return append(dst, sep.Bytes()...)
}

func (c comparer) Successor(dst, b []byte) []byte {
	ref, err := FromBytes(b)
	if err != nil {
		c.logger.Warn("Successor got an undecodable key", zap.Binary("key", b), zap.Error(err))
		return append(dst, b...)
	}
	return append(dst, NewAfter(ref).Bytes()...)
}

// NewComparer returns an IComparer over byte forms. Undecodable keys are
// reported to logger, or to zap.L() when logger is nil.
func NewComparer(logger *zap.Logger) IComparer {
	if logger == nil {
		logger = zap.L()
	}
	return &comparer{logger: logger}
}

var _ IComparer = (*comparer)(nil)
