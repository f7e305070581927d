package go_fractional_index

import (
	"fmt"

	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/internal/digit"
)

// FractionalIndex is an opaque, immutable sort key. It denotes a fraction in
// (0, 1) written as base-256 digits followed by an implicit midpoint, so a new
// key can always be made before, after or between existing ones without
// touching them.
//
// FractionalIndex values are comparable with == and can be used as map keys.
// The zero value equals Default().
type FractionalIndex struct {
	digits string
}

// Default returns the anchor key, denoting exactly 1/2.
func Default() FractionalIndex {
	return FractionalIndex{}
}

// NewBefore returns a key strictly less than ref.
func NewBefore(ref FractionalIndex) FractionalIndex {
	return FractionalIndex{digits: string(digit.Before([]byte(ref.digits)))}
}

// NewAfter returns a key strictly greater than ref.
func NewAfter(ref FractionalIndex) FractionalIndex {
	return FractionalIndex{digits: string(digit.After([]byte(ref.digits)))}
}

// NewBetween returns a key strictly between low and high. It returns ErrOrder
// when low >= high.
func NewBetween(low, high FractionalIndex) (FractionalIndex, error) {
	if Compare(low, high) >= 0 {
		return FractionalIndex{}, fmt.Errorf("%w: %s >= %s", ErrOrder, low, high)
	}

	l, r := []byte(low.digits), []byte(high.digits)
	n := min(len(l), len(r))
	for i := 0; i < n; i++ {
		lo, hi := int(l[i]), int(r[i])
		switch {
		case lo+1 < hi:
			res := append(l[:i:i], byte(lo+(hi-lo)/2))
			return FractionalIndex{digits: string(res)}, nil
		case lo+1 == hi:
			// no room at this position, keep low's digit and go one level deeper
			res := append(l[:i+1:i+1], digit.After(l[i+1:])...)
			return FractionalIndex{digits: string(res)}, nil
		case lo > hi:
			return FractionalIndex{}, fmt.Errorf("%w: %s >= %s", ErrOrder, low, high)
		}
	}

	// one key is a prefix of the other. The shorter one is terminated at
	// position n, so the longer one decides with its remaining tail.
	switch {
	case len(l) < len(r):
		res := append(r[:n+1:n+1], digit.Before(r[n+1:])...)
		return FractionalIndex{digits: string(res)}, nil
	case len(l) > len(r):
		res := append(l[:n+1:n+1], digit.After(l[n+1:])...)
		return FractionalIndex{digits: string(res)}, nil
	default:
		return FractionalIndex{}, fmt.Errorf("%w: %s == %s", ErrOrder, low, high)
	}
}

// Compare returns -1, 0, or +1 depending on whether a is less than, equal to
// or greater than b.
func Compare(a, b FractionalIndex) int {
	return digit.Compare(a.digits, b.digits)
}

func (f FractionalIndex) Compare(o FractionalIndex) int {
	return Compare(f, o)
}

func (f FractionalIndex) Equal(o FractionalIndex) bool {
	return f.digits == o.digits
}

func (f FractionalIndex) Less(o FractionalIndex) bool {
	return Compare(f, o) < 0
}
