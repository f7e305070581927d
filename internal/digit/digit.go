package digit

// Terminator closes the byte form of a key. It is the first digit above the
// virtual midpoint, which is what keeps the byte form ordered under a plain
// bytes.Compare.
const Terminator byte = 0x80

// Digit is one position of a key in the extended digit domain: either a real
// byte or the virtual midpoint Half that pads every key to infinity.
//
//	0 < 1 < ... < 127 < Half < 128 < ... < 255
type Digit struct {
	value uint8
	half  bool
}

// Half sits between 127 and 128.
var Half = Digit{half: true}

func Of(b byte) Digit {
	return Digit{value: b}
}

func (d Digit) IsHalf() bool {
	return d.half
}

// Value returns the byte held by d. It is meaningless for Half.
func (d Digit) Value() byte {
	return d.value
}

// rank maps the extended domain onto integers preserving order.
func (d Digit) rank() int {
	switch {
	case d.half:
		return 255
	case d.value < Terminator:
		return int(d.value) * 2
	default:
		return int(d.value)*2 + 1
	}
}

// Compare returns -1, 0, or +1 depending on whether d is less than, equal to
// or greater than o.
func (d Digit) Compare(o Digit) int {
	a, b := d.rank(), o.rank()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sequence is a run of digits, held either as a string or as a byte slice.
type Sequence interface {
	~string | ~[]byte
}

// At returns the i-th extended digit of seq, Half past its end.
func At[S Sequence](seq S, i int) Digit {
	if i < len(seq) {
		return Of(seq[i])
	}
	return Half
}

// Compare orders two digit sequences, each padded on the right with Half.
func Compare[S Sequence](a, b S) int {
	_, c := FirstDifference(a, b)
	return c
}

// FirstDifference returns the first index at which the extended digits of a
// and b differ together with the comparison of those digits. When the
// sequences are identical it returns (max(len(a), len(b)), 0).
func FirstDifference[S Sequence](a, b S) (int, int) {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := At(a, i).Compare(At(b, i)); c != 0 {
			return i, c
		}
	}
	return n, 0
}
