package go_fractional_index

import (
	"errors"
	"fmt"
)

var (
	// ErrOrder is returned by NewBetween when low >= high: no key exists
	// strictly between them.
	ErrOrder = errors.New("no key strictly between the given bounds")

	// ErrDecode is the parent of every error returned while decoding a byte
	// or string form.
	ErrDecode = errors.New("malformed fractional index encoding")

	ErrEmptyInput        = fmt.Errorf("%w: empty input", ErrDecode)
	ErrMissingTerminator = fmt.Errorf("%w: missing terminator", ErrDecode)
	ErrInvalidHex        = fmt.Errorf("%w: invalid hex", ErrDecode)
	ErrInvalidLength     = fmt.Errorf("%w: invalid length", ErrDecode)
)
