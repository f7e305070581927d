package go_fractional_index

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/hex"
	"fmt"

	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/internal/digit"
)

// Bytes returns the byte form of f: its digits followed by the terminator.
// Plain bytes.Compare of two byte forms orders them like Compare.
func (f FractionalIndex) Bytes() []byte {
	res := make([]byte, len(f.digits)+1)
	copy(res, f.digits)
	res[len(f.digits)] = digit.Terminator
	return res
}

// FromBytes decodes a byte form produced by Bytes. The input is copied.
func FromBytes(b []byte) (FractionalIndex, error) {
	if len(b) == 0 {
		return FractionalIndex{}, ErrEmptyInput
	}
	if b[len(b)-1] != digit.Terminator {
		return FractionalIndex{}, fmt.Errorf("%w: last byte is %#02x", ErrMissingTerminator, b[len(b)-1])
	}
	return FractionalIndex{digits: string(b[:len(b)-1])}, nil
}

// String returns the string form of f: the lowercase hex of its byte form.
// Plain string comparison of two string forms orders them like Compare.
func (f FractionalIndex) String() string {
	return hex.EncodeToString(f.Bytes())
}

// FromString decodes a string form produced by String.
func FromString(s string) (FractionalIndex, error) {
	b, err := decodeHex(s)
	if err != nil {
		return FractionalIndex{}, err
	}
	return FromBytes(b)
}

// decodeHex accepts lowercase hex only, so every key has exactly one string
// form.
func decodeHex(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrEmptyInput
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd hex length %d", ErrInvalidLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return nil, fmt.Errorf("%w: character %q at %d", ErrInvalidHex, c, i)
		}
	}
	return hex.DecodeString(s)
}

func (f FractionalIndex) MarshalBinary() ([]byte, error) {
	return f.Bytes(), nil
}

func (f *FractionalIndex) UnmarshalBinary(data []byte) error {
	res, err := FromBytes(data)
	if err != nil {
		return err
	}
	*f = res
	return nil
}

func (f FractionalIndex) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FractionalIndex) UnmarshalText(text []byte) error {
	res, err := FromString(string(text))
	if err != nil {
		return err
	}
	*f = res
	return nil
}

// Value stores f as its byte form, e.g. in a blob / bytea column.
func (f FractionalIndex) Value() (driver.Value, error) {
	return f.Bytes(), nil
}

// Scan reads a byte form, or a string form from text columns. A NULL column
// scans as Default().
func (f *FractionalIndex) Scan(src any) error {
	var (
		res FractionalIndex
		err error
	)
	switch v := src.(type) {
	case nil:
		res = Default()
	case []byte:
		res, err = FromBytes(v)
	case string:
		res, err = FromString(v)
	default:
		err = fmt.Errorf("%w: cannot scan %T", ErrDecode, src)
	}
	if err != nil {
		return err
	}
	*f = res
	return nil
}

var (
	_ encoding.BinaryMarshaler   = FractionalIndex{}
	_ encoding.BinaryUnmarshaler = (*FractionalIndex)(nil)
	_ encoding.TextMarshaler     = FractionalIndex{}
	_ encoding.TextUnmarshaler   = (*FractionalIndex)(nil)
	_ driver.Valuer              = FractionalIndex{}
	_ sql.Scanner                = (*FractionalIndex)(nil)
	_ fmt.Stringer               = FractionalIndex{}
)
