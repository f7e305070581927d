// Package schemetest holds the property suite shared by every key scheme.
package schemetest

import (
	"math/rand/v2"
	"testing"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Options struct {
	// OrderedBytes is set when plain bytes.Compare of two byte forms must
	// agree with the scheme's Compare.
	OrderedBytes bool
	// Rounds is the number of times the corpus is densified by inserting a
	// key between every pair of neighbours.
	Rounds int
}

// Corpus returns a strictly increasing list of keys: a run of NewBefore and
// NewAfter around Default, densified rounds times with NewBetween.
func Corpus[K any](t *testing.T, s go_fractional_index.IScheme[K], rounds int) []K {
	t.Helper()

	c := s.Default()
	var low []K
	m := c
	for i := 0; i < 20; i++ {
		m = s.NewBefore(m)
		low = append(low, m)
	}

	keys := make([]K, 0, len(low)*2+1)
	for i := len(low) - 1; i >= 0; i-- {
		keys = append(keys, low[i])
	}
	keys = append(keys, c)

	m = c
	for i := 0; i < 20; i++ {
		m = s.NewAfter(m)
		keys = append(keys, m)
	}

	for r := 0; r < rounds; r++ {
		next := make([]K, 0, len(keys)*2)
		for i := 0; i < len(keys)-1; i++ {
			mid, err := s.NewBetween(keys[i], keys[i+1])
			require.NoError(t, err)
			next = append(next, keys[i], mid)
		}
		keys = append(next, keys[len(keys)-1])
	}
	return keys
}

// Run checks the ordering, construction and encoding contracts of s.
func Run[K any](t *testing.T, s go_fractional_index.IScheme[K], opts Options) {
	keys := Corpus(t, s, opts.Rounds)
	require.True(t, go_fractional_index.IsSorted(s, keys), "corpus must be strictly increasing")

	t.Run("anchor", func(t *testing.T) {
		a, b := s.Default(), s.Default()
		assert.Equal(t, 0, s.Compare(a, b))
		assert.Equal(t, -1, s.Compare(s.NewBefore(a), a))
		assert.Equal(t, 1, s.Compare(s.NewAfter(a), a))
	})

	t.Run("relative bounds", func(t *testing.T) {
		for _, k := range keys {
			assert.Equal(t, -1, s.Compare(s.NewBefore(k), k))
			assert.Equal(t, 1, s.Compare(s.NewAfter(k), k))
		}
	})

	t.Run("totality and transitivity", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(7, 11))
		for n := 0; n < 5000; n++ {
			i, j, k := rnd.IntN(len(keys)), rnd.IntN(len(keys)), rnd.IntN(len(keys))
			a, b, c := keys[i], keys[j], keys[k]

			assert.Equal(t, cmpInt(i, j), s.Compare(a, b))
			assert.Equal(t, -s.Compare(a, b), s.Compare(b, a))
			if s.Compare(a, b) < 0 && s.Compare(b, c) < 0 {
				assert.Equal(t, -1, s.Compare(a, c))
			}
		}
	})

	t.Run("interpolation", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(3, 5))
		for n := 0; n < 2000; n++ {
			i, j := rnd.IntN(len(keys)), rnd.IntN(len(keys))
			low, high := keys[i], keys[j]
			mid, err := s.NewBetween(low, high)
			if i >= j {
				assert.ErrorIs(t, err, go_fractional_index.ErrOrder)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, -1, s.Compare(low, mid))
			assert.Equal(t, -1, s.Compare(mid, high))

			again, err := s.NewBetween(low, high)
			require.NoError(t, err)
			assert.Equal(t, 0, s.Compare(mid, again), "construction must be deterministic")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, k := range keys {
			b, err := s.Decode(s.Encode(k))
			require.NoError(t, err)
			assert.Equal(t, k, b)

			str, err := s.DecodeString(s.EncodeString(k))
			require.NoError(t, err)
			assert.Equal(t, k, str)
		}
	})

	t.Run("encoding order", func(t *testing.T) {
		for i := 0; i < len(keys)-1; i++ {
			assert.Less(t, s.EncodeString(keys[i]), s.EncodeString(keys[i+1]))
			if opts.OrderedBytes {
				assert.Less(t, string(s.Encode(keys[i])), string(s.Encode(keys[i+1])))
			}
		}
	})

	t.Run("churn at a fixed location", func(t *testing.T) {
		low, high := keys[len(keys)/2], keys[len(keys)/2+1]
		first, err := s.NewBetween(low, high)
		require.NoError(t, err)
		size := len(s.Encode(first))
		for n := 0; n < 100; n++ {
			// the previous key was removed again, so the gap is unchanged
			k, err := s.NewBetween(low, high)
			require.NoError(t, err)
			assert.Equal(t, size, len(s.Encode(k)))
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := s.DecodeString("")
		assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
		_, err = s.DecodeString("8g")
		assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
		_, err = s.DecodeString("808")
		assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
		_, err = s.DecodeString("7f")
		assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
		_, err = s.Decode(nil)
		assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
	})
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
