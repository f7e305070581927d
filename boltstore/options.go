package boltstore

import (
	"time"

	"go.uber.org/zap"
)

type OptionFn func(*options)

type options struct {
	// bucket is the name of the bbolt bucket holding the list.
	bucket []byte

	// timeout is how long Open waits for the file lock held by another
	// process before giving up. Zero waits forever.
	timeout time.Duration

	// noSync skips the fsync after each commit. Faster, but a machine
	// crash may lose the latest writes.
	noSync bool

	logger *zap.Logger
}

var defaultOptions = options{
	bucket:  []byte("fractional-index"),
	timeout: 1 * time.Second,
}

func WithBucket(name string) OptionFn {
	return func(o *options) {
		o.bucket = []byte(name)
	}
}

func WithTimeout(d time.Duration) OptionFn {
	return func(o *options) {
		o.timeout = d
	}
}

func WithNoSync(noSync bool) OptionFn {
	return func(o *options) {
		o.noSync = noSync
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *options) {
		o.logger = logger
	}
}
