package sequence

import (
	"context"
	"errors"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/fxamacker/cbor/v2"
)

var (
	ErrNonExist        = errors.New("key does not exist")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// WalkFn is called for every element in list order. Returning false stops
// the walk.
type WalkFn[V any] func(k go_fractional_index.FractionalIndex, v V) bool

// ValueCodec turns values into snapshot bytes and back.
type ValueCodec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(b []byte) (V, error)
}

// IList is an ordered list whose positions are fractional indexes, so an
// element can be inserted or moved without renumbering its neighbours.
type IList[V any] interface {
	PushFront(ctx context.Context, v V) (go_fractional_index.FractionalIndex, error)
	PushBack(ctx context.Context, v V) (go_fractional_index.FractionalIndex, error)
	// InsertBefore stores v right before mark and returns its key.
	InsertBefore(ctx context.Context, mark go_fractional_index.FractionalIndex, v V) (go_fractional_index.FractionalIndex, error)
	// InsertAfter stores v right after mark and returns its key.
	InsertAfter(ctx context.Context, mark go_fractional_index.FractionalIndex, v V) (go_fractional_index.FractionalIndex, error)
	// MoveBefore re-keys the element at key so it sits right before mark.
	MoveBefore(ctx context.Context, key, mark go_fractional_index.FractionalIndex) (go_fractional_index.FractionalIndex, error)
	// MoveAfter re-keys the element at key so it sits right after mark.
	MoveAfter(ctx context.Context, key, mark go_fractional_index.FractionalIndex) (go_fractional_index.FractionalIndex, error)
	// Put stores v under a key built elsewhere. An element already stored
	// under an equal key is replaced and returned.
	Put(ctx context.Context, key go_fractional_index.FractionalIndex, v V) (V, bool, error)
	Get(ctx context.Context, key go_fractional_index.FractionalIndex) (V, error)
	Delete(ctx context.Context, key go_fractional_index.FractionalIndex) (V, error)
	Front(ctx context.Context) (go_fractional_index.FractionalIndex, V, bool)
	Back(ctx context.Context) (go_fractional_index.FractionalIndex, V, bool)
	Len() int
	Walk(ctx context.Context, fn WalkFn[V]) error
	WalkBackwards(ctx context.Context, fn WalkFn[V]) error
}

// CBORCodec encodes values with CBOR.
type CBORCodec[V any] struct{}

func (CBORCodec[V]) Encode(v V) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBORCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := cbor.Unmarshal(b, &v)
	return v, err
}

var _ ValueCodec[any] = CBORCodec[any]{}
