package storage

import (
	"context"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
)

// Factory creates a Storage backend for one location. S3 backends are bound
// to the location's bucket; file backends ignore it.
type Factory func(ctx context.Context, loc Location, cfg Config, log *logger.Logger) (Storage, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory for the given scheme.
// Implementation packages call this (typically in an init function) to make
// themselves available to Open. Ensure the desired backend package has been
// imported (e.g. _ "github.com/debatelab/speakerkit/storage/local") so its
// factory is registered.
func RegisterFactory(scheme string, f Factory) {
	factories[scheme] = f
}

// Open creates the Storage backend the location's scheme routes to.
func Open(ctx context.Context, loc Location, cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, ok := factories[loc.Scheme]
	if !ok {
		return nil, errors.UnsupportedScheme(loc.Scheme)
	}

	l := log.WithComponent("storage")
	l.Debug("opening storage backend", map[string]interface{}{
		"scheme": loc.Scheme,
		"bucket": loc.Bucket,
	})
	return f(ctx, loc, cfg, l)
}
