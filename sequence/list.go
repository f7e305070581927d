// Package sequence implements an in-memory ordered list keyed by
// fractional indexes.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/benbjohnson/immutable"
	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"go.uber.org/zap"
)

type key = go_fractional_index.FractionalIndex

// entry keeps the decoded key next to the value, the map itself is keyed by
// the byte form.
type entry[V any] struct {
	k key
	v V
}

// List is safe for concurrent use. Writers are serialised; readers work on
// the persistent map current at the time of the call and never block
// writers for longer than a pointer copy.
type List[V any] struct {
	mu   sync.RWMutex
	m    *immutable.SortedMap[string, entry[V]]
	opts options
}

func New[V any](opts ...OptionFn) *List[V] {
	l := &List[V]{
		m:    newMap[V](),
		opts: defaultOptions,
	}
	for _, o := range opts {
		o(&l.opts)
	}
	if l.opts.logger == nil {
		l.opts.logger = zap.L()
	}
	return l
}

func (l *List[V]) PushFront(ctx context.Context, v V) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	k := go_fractional_index.Default()
	if first, ok := bound(l.m, false); ok {
		k = go_fractional_index.NewBefore(first.k)
	}
	l.m = l.m.Set(mapKey(k), entry[V]{k: k, v: v})
	return k, nil
}

func (l *List[V]) PushBack(ctx context.Context, v V) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	k := go_fractional_index.Default()
	if last, ok := bound(l.m, true); ok {
		k = go_fractional_index.NewAfter(last.k)
	}
	l.m = l.m.Set(mapKey(k), entry[V]{k: k, v: v})
	return k, nil
}

func (l *List[V]) InsertBefore(ctx context.Context, mark key, v V) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	k, err := keyBefore(l.m, mark)
	if err != nil {
		return key{}, err
	}
	l.m = l.m.Set(mapKey(k), entry[V]{k: k, v: v})
	return k, nil
}

func (l *List[V]) InsertAfter(ctx context.Context, mark key, v V) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	k, err := keyAfter(l.m, mark)
	if err != nil {
		return key{}, err
	}
	l.m = l.m.Set(mapKey(k), entry[V]{k: k, v: v})
	return k, nil
}

// MoveBefore is a no-op returning key when key equals mark.
func (l *List[V]) MoveBefore(ctx context.Context, k, mark key) (key, error) {
	return move(ctx, l, k, mark, keyBefore[V])
}

// MoveAfter is a no-op returning key when key equals mark.
func (l *List[V]) MoveAfter(ctx context.Context, k, mark key) (key, error) {
	return move(ctx, l, k, mark, keyAfter[V])
}

func move[V any](ctx context.Context, l *List[V], k, mark key, place func(*immutable.SortedMap[string, entry[V]], key) (key, error)) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.m.Get(mapKey(k))
	if !ok {
		return key{}, fmt.Errorf("%w: moved key %s", ErrNonExist, k)
	}
	if k.Equal(mark) {
		return k, nil
	}

	m := l.m.Delete(mapKey(k))
	nk, err := place(m, mark)
	if err != nil {
		return key{}, err
	}
	l.m = m.Set(mapKey(nk), entry[V]{k: nk, v: e.v})
	return nk, nil
}

func (l *List[V]) Put(ctx context.Context, k key, v V) (V, bool, error) {
	if err := ctx.Err(); err != nil {
		return *new(V), false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.m.Get(mapKey(k))
	l.m = l.m.Set(mapKey(k), entry[V]{k: k, v: v})
	return prev.v, ok, nil
}

func (l *List[V]) Get(ctx context.Context, k key) (V, error) {
	if err := ctx.Err(); err != nil {
		return *new(V), err
	}
	e, ok := l.snapshot().Get(mapKey(k))
	if !ok {
		return *new(V), fmt.Errorf("%w: %s", ErrNonExist, k)
	}
	return e.v, nil
}

func (l *List[V]) Delete(ctx context.Context, k key) (V, error) {
	if err := ctx.Err(); err != nil {
		return *new(V), err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.m.Get(mapKey(k))
	if !ok {
		return *new(V), fmt.Errorf("%w: %s", ErrNonExist, k)
	}
	l.m = l.m.Delete(mapKey(k))
	return e.v, nil
}

// Front reports false for an empty list or a cancelled ctx.
func (l *List[V]) Front(ctx context.Context) (key, V, bool) {
	if ctx.Err() != nil {
		return key{}, *new(V), false
	}
	e, ok := bound(l.snapshot(), false)
	return e.k, e.v, ok
}

// Back reports false for an empty list or a cancelled ctx.
func (l *List[V]) Back(ctx context.Context) (key, V, bool) {
	if ctx.Err() != nil {
		return key{}, *new(V), false
	}
	e, ok := bound(l.snapshot(), true)
	return e.k, e.v, ok
}

func (l *List[V]) Len() int {
	return l.snapshot().Len()
}

// Walk visits the elements in ascending key order. Writes made during the
// walk are not observed.
func (l *List[V]) Walk(ctx context.Context, fn WalkFn[V]) error {
	itr := l.snapshot().Iterator()
	itr.First()
	for !itr.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, e, _ := itr.Next()
		if !fn(e.k, e.v) {
			return nil
		}
	}
	return nil
}

func (l *List[V]) WalkBackwards(ctx context.Context, fn WalkFn[V]) error {
	itr := l.snapshot().Iterator()
	itr.Last()
	for !itr.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, e, _ := itr.Prev()
		if !fn(e.k, e.v) {
			return nil
		}
	}
	return nil
}

func (l *List[V]) snapshot() *immutable.SortedMap[string, entry[V]] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m
}

// keyBefore returns a fresh key between mark and its predecessor in m.
func keyBefore[V any](m *immutable.SortedMap[string, entry[V]], mark key) (key, error) {
	mk := mapKey(mark)
	if _, ok := m.Get(mk); !ok {
		return key{}, fmt.Errorf("%w: mark %s", ErrNonExist, mark)
	}
	itr := m.Iterator()
	itr.Seek(mk)
	itr.Prev()
	prev, ok := current(itr, true)
	if !ok {
		return go_fractional_index.NewBefore(mark), nil
	}
	return go_fractional_index.NewBetween(prev.k, mark)
}

// keyAfter returns a fresh key between mark and its successor in m.
func keyAfter[V any](m *immutable.SortedMap[string, entry[V]], mark key) (key, error) {
	mk := mapKey(mark)
	if _, ok := m.Get(mk); !ok {
		return key{}, fmt.Errorf("%w: mark %s", ErrNonExist, mark)
	}
	itr := m.Iterator()
	itr.Seek(mk)
	itr.Next()
	next, ok := current(itr, false)
	if !ok {
		return go_fractional_index.NewAfter(mark), nil
	}
	return go_fractional_index.NewBetween(mark, next.k)
}

// bound returns the first, or with last set the final, entry of m.
func bound[V any](m *immutable.SortedMap[string, entry[V]], last bool) (entry[V], bool) {
	itr := m.Iterator()
	if last {
		itr.Last()
	} else {
		itr.First()
	}
	return current(itr, last)
}

// current returns the entry under itr, stepping in the direction of travel.
func current[V any](itr *immutable.SortedMapIterator[string, entry[V]], backwards bool) (entry[V], bool) {
	var (
		e  entry[V]
		ok bool
	)
	if backwards {
		_, e, ok = itr.Prev()
	} else {
		_, e, ok = itr.Next()
	}
	return e, ok
}

// mapKey is the byte form as a string. The byte form is order preserving,
// so plain string comparison orders the map.
func mapKey(k key) string {
	return string(k.Bytes())
}

type byteFormComparer struct{}

func (byteFormComparer) Compare(a, b string) int {
	return strings.Compare(a, b)
}

func newMap[V any]() *immutable.SortedMap[string, entry[V]] {
	return immutable.NewSortedMap[string, entry[V]](byteFormComparer{})
}

var (
	_ IList[any]                 = (*List[any])(nil)
	_ immutable.Comparer[string] = byteFormComparer{}
)
