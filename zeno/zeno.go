// Package zeno implements the legacy ZenoIndex key scheme.
//
// A ZenoIndex denotes the same kind of fraction as a FractionalIndex but its
// byte form is a length-prefixed digit string that cannot be ordered with
// bytes.Compare; use Compare instead. Keys of the two schemes are distinct
// types and must not be mixed, ToFractional converts one way.
//
// Deprecated: new code should use go_fractional_index.FractionalIndex.
package zeno

import (
	"fmt"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/internal/digit"
)

// ZenoIndex is an opaque, immutable sort key of the legacy scheme.
type ZenoIndex struct {
	digits string
}

func Default() ZenoIndex {
	return ZenoIndex{}
}

// NewBefore decrements the last non-zero digit of ref and drops what follows
// it. When every digit is zero a digit just below the midpoint is appended.
func NewBefore(ref ZenoIndex) ZenoIndex {
	d := []byte(ref.digits)
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] > 0 {
			res := d[: i+1 : i+1]
			res[i]--
			return ZenoIndex{digits: string(res)}
		}
	}
	return ZenoIndex{digits: string(append(d, digit.Terminator-1))}
}

// NewAfter increments the last digit below 0xff and drops what follows it.
// When every digit is 0xff a digit just above the midpoint is appended.
func NewAfter(ref ZenoIndex) ZenoIndex {
	d := []byte(ref.digits)
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < 0xff {
			res := d[: i+1 : i+1]
			res[i]++
			return ZenoIndex{digits: string(res)}
		}
	}
	return ZenoIndex{digits: string(append(d, digit.Terminator))}
}

// NewBetween returns a key strictly between low and high, or ErrOrder when
// low >= high. If the common prefix of low and high already lies between them
// the prefix itself is returned, which lets a gap left by deleted keys be
// refilled with a shorter key than either neighbour.
func NewBetween(low, high ZenoIndex) (ZenoIndex, error) {
	i, c := digit.FirstDifference(low.digits, high.digits)
	if c >= 0 {
		return ZenoIndex{}, fmt.Errorf("%w: %s >= %s", go_fractional_index.ErrOrder, low, high)
	}

	// both keys share their first i digits
	prefix := []byte(low.digits[:i])
	a, b := digit.At(low.digits, i), digit.At(high.digits, i)

	var res []byte
	switch {
	case a.Compare(digit.Half) < 0 && digit.Half.Compare(b) < 0:
		res = prefix
	case a.IsHalf():
		// low is the prefix and high continues above the midpoint
		if hi := int(b.Value()); hi > int(digit.Terminator) {
			res = append(prefix, byte(int(digit.Terminator)+(hi-int(digit.Terminator))/2))
		} else {
			res = append(append(prefix, b.Value()), digit.Before([]byte(high.digits[i+1:]))...)
		}
	case b.IsHalf():
		// high is the prefix and low continues below the midpoint
		if lo := int(a.Value()); lo < int(digit.Terminator)-1 {
			res = append(prefix, byte(lo+(int(digit.Terminator)-lo)/2))
		} else {
			res = append(append(prefix, a.Value()), digit.After([]byte(low.digits[i+1:]))...)
		}
	default:
		lo, hi := int(a.Value()), int(b.Value())
		if lo+1 < hi {
			res = append(prefix, byte(lo+(hi-lo)/2))
		} else {
			res = append(append(prefix, a.Value()), digit.After([]byte(low.digits[i+1:]))...)
		}
	}
	return ZenoIndex{digits: string(res)}, nil
}

// Compare orders keys by their digits padded with the virtual midpoint.
func Compare(a, b ZenoIndex) int {
	return digit.Compare(a.digits, b.digits)
}

func (z ZenoIndex) Compare(o ZenoIndex) int {
	return Compare(z, o)
}

func (z ZenoIndex) Equal(o ZenoIndex) bool {
	return z.digits == o.digits
}

func (z ZenoIndex) Less(o ZenoIndex) bool {
	return Compare(z, o) < 0
}

// ToFractional returns the FractionalIndex denoting the same value as z.
// Order is preserved across the conversion.
func ToFractional(z ZenoIndex) go_fractional_index.FractionalIndex {
	f, err := go_fractional_index.FromBytes(append([]byte(z.digits), digit.Terminator))
	if err != nil {
		// unreachable, the terminator is always appended
		return go_fractional_index.Default()
	}
	return f
}

// FromFractional returns the ZenoIndex denoting the same value as f.
func FromFractional(f go_fractional_index.FractionalIndex) ZenoIndex {
	b := f.Bytes()
	return ZenoIndex{digits: string(b[:len(b)-1])}
}
