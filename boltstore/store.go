// Package boltstore keeps an ordered list in a bbolt bucket. Keys are the
// byte form of fractional indexes, so the bucket's cursor order is the list
// order.
package boltstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var ErrNonExist = errors.New("key does not exist")

type key = go_fractional_index.FractionalIndex

// WalkFn is called for every element in list order. v is only valid until
// fn returns. Returning false stops the walk.
type WalkFn func(k key, v []byte) bool

type Store struct {
	db   *bolt.DB
	opts options
}

// Open opens, creating it if needed, the database file at path.
func Open(path string, opts ...OptionFn) (*Store, error) {
	s := &Store{opts: defaultOptions}
	for _, o := range opts {
		o(&s.opts)
	}
	if s.opts.logger == nil {
		s.opts.logger = zap.L()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.opts.logger.Error("Failed to create dir", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: s.opts.timeout, NoSync: s.opts.noSync})
	if err != nil {
		s.opts.logger.Error("Failed to open database", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	s.db = db

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.opts.bucket)
		return err
	})
	if err != nil {
		s.opts.logger.Error("Failed to create bucket", zap.ByteString("bucket", s.opts.bucket), zap.Error(err))
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores v after the last element and returns its key.
func (s *Store) Append(ctx context.Context, v []byte) (key, error) {
	return s.insert(ctx, v, func(c *bolt.Cursor) (key, error) {
		last, _ := c.Last()
		if last == nil {
			return go_fractional_index.Default(), nil
		}
		k, err := s.decode(last)
		if err != nil {
			return key{}, err
		}
		return go_fractional_index.NewAfter(k), nil
	})
}

// Prepend stores v before the first element and returns its key.
func (s *Store) Prepend(ctx context.Context, v []byte) (key, error) {
	return s.insert(ctx, v, func(c *bolt.Cursor) (key, error) {
		first, _ := c.First()
		if first == nil {
			return go_fractional_index.Default(), nil
		}
		k, err := s.decode(first)
		if err != nil {
			return key{}, err
		}
		return go_fractional_index.NewBefore(k), nil
	})
}

func (s *Store) InsertBefore(ctx context.Context, mark key, v []byte) (key, error) {
	return s.insert(ctx, v, func(c *bolt.Cursor) (key, error) {
		if err := seekExact(c, mark); err != nil {
			return key{}, err
		}
		prev, _ := c.Prev()
		if prev == nil {
			return go_fractional_index.NewBefore(mark), nil
		}
		k, err := s.decode(prev)
		if err != nil {
			return key{}, err
		}
		return go_fractional_index.NewBetween(k, mark)
	})
}

func (s *Store) InsertAfter(ctx context.Context, mark key, v []byte) (key, error) {
	return s.insert(ctx, v, func(c *bolt.Cursor) (key, error) {
		if err := seekExact(c, mark); err != nil {
			return key{}, err
		}
		next, _ := c.Next()
		if next == nil {
			return go_fractional_index.NewAfter(mark), nil
		}
		k, err := s.decode(next)
		if err != nil {
			return key{}, err
		}
		return go_fractional_index.NewBetween(mark, k)
	})
}

// insert picks a key with place and stores v under it, both in one
// read-write transaction.
func (s *Store) insert(ctx context.Context, v []byte, place func(*bolt.Cursor) (key, error)) (key, error) {
	if err := ctx.Err(); err != nil {
		return key{}, err
	}
	var res key
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.opts.bucket)
		k, err := place(b.Cursor())
		if err != nil {
			return err
		}
		res = k
		return b.Put(k.Bytes(), v)
	})
	if err != nil {
		return key{}, err
	}
	return res, nil
}

// Get returns a copy of the value stored under k.
func (s *Store) Get(ctx context.Context, k key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.opts.bucket).Get(k.Bytes())
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNonExist, k)
		}
		res = bytes.Clone(v)
		return nil
	})
	return res, err
}

func (s *Store) Delete(ctx context.Context, k key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.opts.bucket)
		if b.Get(k.Bytes()) == nil {
			return fmt.Errorf("%w: %s", ErrNonExist, k)
		}
		return b.Delete(k.Bytes())
	})
}

func (s *Store) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.opts.bucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Walk visits the elements in list order inside one read transaction.
func (s *Store) Walk(ctx context.Context, fn WalkFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.opts.bucket).Cursor()
		for kb, v := c.First(); kb != nil; kb, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			k, err := s.decode(kb)
			if err != nil {
				return err
			}
			if !fn(k, v) {
				return nil
			}
		}
		return nil
	})
}

func (s *Store) decode(b []byte) (key, error) {
	k, err := go_fractional_index.FromBytes(b)
	if err != nil {
		s.opts.logger.Error("Failed to decode stored key",
			zap.ByteString("bucket", s.opts.bucket),
			zap.Binary("key", b),
			zap.Error(err),
		)
		return key{}, fmt.Errorf("bucket %q: %w", s.opts.bucket, err)
	}
	return k, nil
}

// seekExact positions c on mark, failing when mark is not stored.
func seekExact(c *bolt.Cursor, mark key) error {
	want := mark.Bytes()
	got, _ := c.Seek(want)
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%w: mark %s", ErrNonExist, mark)
	}
	return nil
}
