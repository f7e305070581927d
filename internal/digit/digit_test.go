package digit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigit_Compare(t *testing.T) {
	tests := []struct {
		name string
		a    Digit
		b    Digit
		want int
	}{
		{name: "equal bytes", a: Of(7), b: Of(7), want: 0},
		{name: "plain bytes", a: Of(3), b: Of(200), want: -1},
		{name: "half vs half", a: Half, b: Half, want: 0},
		{name: "127 below half", a: Of(127), b: Half, want: -1},
		{name: "128 above half", a: Of(128), b: Half, want: 1},
		{name: "half below 255", a: Half, b: Of(255), want: -1},
		{name: "half above 0", a: Half, b: Of(0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    []byte
		b    []byte
		want int
	}{
		{name: "both empty", a: nil, b: []byte{}, want: 0},
		{name: "equal", a: []byte{1, 2, 3}, b: []byte{1, 2, 3}, want: 0},
		{name: "differ inside bounds", a: []byte{1, 2, 3}, b: []byte{1, 9}, want: -1},
		{name: "longer with low extra digit is smaller", a: []byte{5, 127}, b: []byte{5}, want: -1},
		{name: "longer with high extra digit is larger", a: []byte{5, 128}, b: []byte{5}, want: 1},
		{name: "empty against low digit", a: []byte{}, b: []byte{0}, want: 1},
		{name: "empty against high digit", a: []byte{}, b: []byte{255}, want: -1},
		{name: "trailing zeros still differ", a: []byte{9}, b: []byte{9, 0, 0, 0}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a))
		})
	}
}

func TestFirstDifference(t *testing.T) {
	i, c := FirstDifference([]byte{4, 4, 4}, []byte{4, 4, 4, 200})
	assert.Equal(t, 3, i)
	assert.Equal(t, -1, c)

	i, c = FirstDifference([]byte{4, 4}, []byte{4, 4})
	assert.Equal(t, 2, i)
	assert.Equal(t, 0, c)

	assert.True(t, At([]byte{1}, 1).IsHalf())
	assert.Equal(t, byte(1), At([]byte{1}, 0).Value())
}

func TestCompare_String(t *testing.T) {
	assert.Equal(t, -1, Compare("\x05\x7f", "\x05"))
	assert.Equal(t, 1, Compare("\x05\x80", "\x05"))
	assert.Equal(t, 0, Compare("", ""))
}
