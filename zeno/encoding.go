package zeno

import (
	"encoding"
	"encoding/binary"
	"fmt"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
)

// Bytes returns the legacy byte form: a uvarint digit count followed by the
// digits. It is self-delimiting but NOT ordered under bytes.Compare.
func (z ZenoIndex) Bytes() []byte {
	res := make([]byte, 0, binary.MaxVarintLen64+len(z.digits))
	res = binary.AppendUvarint(res, uint64(len(z.digits)))
	return append(res, z.digits...)
}

func FromBytes(b []byte) (ZenoIndex, error) {
	if len(b) == 0 {
		return ZenoIndex{}, go_fractional_index.ErrEmptyInput
	}
	n, k := binary.Uvarint(b)
	if k <= 0 {
		return ZenoIndex{}, fmt.Errorf("%w: bad length prefix", go_fractional_index.ErrInvalidLength)
	}
	if uint64(len(b)-k) != n {
		return ZenoIndex{}, fmt.Errorf("%w: prefix says %d digits, got %d", go_fractional_index.ErrInvalidLength, n, len(b)-k)
	}
	return ZenoIndex{digits: string(b[k:])}, nil
}

// String returns the lexico form: the lowercase hex digits followed by "80".
// Unlike the byte form it orders correctly under plain string comparison.
func (z ZenoIndex) String() string {
	return ToFractional(z).String()
}

func FromString(s string) (ZenoIndex, error) {
	f, err := go_fractional_index.FromString(s)
	if err != nil {
		return ZenoIndex{}, err
	}
	return FromFractional(f), nil
}

func (z ZenoIndex) MarshalBinary() ([]byte, error) {
	return z.Bytes(), nil
}

func (z *ZenoIndex) UnmarshalBinary(data []byte) error {
	res, err := FromBytes(data)
	if err != nil {
		return err
	}
	*z = res
	return nil
}

func (z ZenoIndex) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *ZenoIndex) UnmarshalText(text []byte) error {
	res, err := FromString(string(text))
	if err != nil {
		return err
	}
	*z = res
	return nil
}

var (
	_ encoding.BinaryMarshaler   = ZenoIndex{}
	_ encoding.BinaryUnmarshaler = (*ZenoIndex)(nil)
	_ encoding.TextMarshaler     = ZenoIndex{}
	_ encoding.TextUnmarshaler   = (*ZenoIndex)(nil)
)
