package go_fractional_index

// Scheme exposes the FractionalIndex operations through IScheme.
var Scheme IScheme[FractionalIndex] = scheme{}

type scheme struct{}

func (scheme) Default() FractionalIndex                      { return Default() }
func (scheme) NewBefore(ref FractionalIndex) FractionalIndex { return NewBefore(ref) }
func (scheme) NewAfter(ref FractionalIndex) FractionalIndex  { return NewAfter(ref) }
func (scheme) Compare(a, b FractionalIndex) int              { return Compare(a, b) }
func (scheme) Encode(k FractionalIndex) []byte               { return k.Bytes() }
func (scheme) EncodeString(k FractionalIndex) string         { return k.String() }

func (scheme) NewBetween(low, high FractionalIndex) (FractionalIndex, error) {
	return NewBetween(low, high)
}

func (scheme) Decode(b []byte) (FractionalIndex, error) {
	return FromBytes(b)
}

func (scheme) DecodeString(s string) (FractionalIndex, error) {
	return FromString(s)
}

// IsSorted reports whether keys are strictly increasing under s.
func IsSorted[K any](s IScheme[K], keys []K) bool {
	for i := 1; i < len(keys); i++ {
		if s.Compare(keys[i-1], keys[i]) >= 0 {
			return false
		}
	}
	return true
}

// Spread returns n keys strictly increasing and strictly between low and
// high. It builds them by repeated bisection so their lengths stay close to
// each other.
func Spread[K any](s IScheme[K], low, high K, n int) ([]K, error) {
	if n <= 0 {
		return nil, nil
	}
	mid, err := s.NewBetween(low, high)
	if err != nil {
		return nil, err
	}
	left, err := Spread(s, low, mid, (n-1)/2)
	if err != nil {
		return nil, err
	}
	right, err := Spread(s, mid, high, n-1-(n-1)/2)
	if err != nil {
		return nil, err
	}
	res := make([]K, 0, n)
	res = append(res, left...)
	res = append(res, mid)
	return append(res, right...), nil
}
