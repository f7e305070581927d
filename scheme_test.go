package go_fractional_index_test

import (
	"testing"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/internal/schemetest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestScheme_Properties(t *testing.T) {
	schemetest.Run(t, go_fractional_index.Scheme, schemetest.Options{
		OrderedBytes: true,
		Rounds:       8,
	})
}

func TestSpread(t *testing.T) {
	s := go_fractional_index.Scheme
	low := s.Default()
	high := s.NewAfter(low)

	keys, err := go_fractional_index.Spread(s, low, high, 100)
	require.NoError(t, err)
	require.Len(t, keys, 100)

	all := append([]go_fractional_index.FractionalIndex{low}, keys...)
	all = append(all, high)
	assert.True(t, go_fractional_index.IsSorted(s, all))

	again, err := go_fractional_index.Spread(s, low, high, 100)
	require.NoError(t, err)
	if diff := cmp.Diff(keys, again, cmp.Comparer(go_fractional_index.FractionalIndex.Equal)); diff != "" {
		t.Errorf("Spread is not deterministic (-first +second):\n%s", diff)
	}

	_, err = go_fractional_index.Spread(s, high, low, 3)
	assert.ErrorIs(t, err, go_fractional_index.ErrOrder)

	empty, err := go_fractional_index.Spread(s, high, low, 0)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIsSorted(t *testing.T) {
	s := go_fractional_index.Scheme
	a := s.Default()
	b := s.NewAfter(a)

	assert.True(t, go_fractional_index.IsSorted(s, nil))
	assert.True(t, go_fractional_index.IsSorted(s, []go_fractional_index.FractionalIndex{a, b}))
	assert.False(t, go_fractional_index.IsSorted(s, []go_fractional_index.FractionalIndex{b, a}))
	assert.False(t, go_fractional_index.IsSorted(s, []go_fractional_index.FractionalIndex{a, a}))
}

func TestScheme_ConcurrentReaders(t *testing.T) {
	keys := schemetest.Corpus(t, go_fractional_index.Scheme, 4)

	serial := make([]go_fractional_index.FractionalIndex, len(keys)-1)
	for i := range serial {
		mid, err := go_fractional_index.NewBetween(keys[i], keys[i+1])
		require.NoError(t, err)
		serial[i] = mid
	}

	// keys are shared read-only between goroutines
	results := make([][]go_fractional_index.FractionalIndex, 8)
	eg := errgroup.Group{}
	for g := range results {
		eg.Go(func() error {
			res := make([]go_fractional_index.FractionalIndex, len(keys)-1)
			for i := range res {
				mid, err := go_fractional_index.NewBetween(keys[i], keys[i+1])
				if err != nil {
					return err
				}
				res[i] = mid
			}
			results[g] = res
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for _, res := range results {
		assert.Empty(t, cmp.Diff(serial, res, cmp.Comparer(go_fractional_index.FractionalIndex.Equal)))
	}
}
