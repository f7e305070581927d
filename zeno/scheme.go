package zeno

import go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"

// Scheme exposes the ZenoIndex operations through IScheme.
var Scheme go_fractional_index.IScheme[ZenoIndex] = scheme{}

type scheme struct{}

func (scheme) Default() ZenoIndex                                { return Default() }
func (scheme) NewBefore(ref ZenoIndex) ZenoIndex                 { return NewBefore(ref) }
func (scheme) NewAfter(ref ZenoIndex) ZenoIndex                  { return NewAfter(ref) }
func (scheme) NewBetween(low, high ZenoIndex) (ZenoIndex, error) { return NewBetween(low, high) }
func (scheme) Compare(a, b ZenoIndex) int                        { return Compare(a, b) }
func (scheme) Encode(k ZenoIndex) []byte                         { return k.Bytes() }
func (scheme) Decode(b []byte) (ZenoIndex, error)                { return FromBytes(b) }
func (scheme) EncodeString(k ZenoIndex) string                   { return k.String() }
func (scheme) DecodeString(s string) (ZenoIndex, error)          { return FromString(s) }
