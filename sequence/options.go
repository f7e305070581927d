package sequence

import (
	"github.com/datnguyenzzz/nogodb/lib/go-fractional-index/compression"
	"go.uber.org/zap"
)

type OptionFn func(*options)

type options struct {
	// logger receives snapshot and restore failures. Defaults to zap.L().
	logger *zap.Logger

	// compression is applied to the payload written by Snapshot. Restore
	// reads the type from the snapshot itself.
	compression compression.Type
}

var defaultOptions = options{
	compression: compression.Snappy,
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *options) {
		o.logger = logger
	}
}

func WithCompression(t compression.Type) OptionFn {
	return func(o *options) {
		o.compression = t
	}
}
