package platform

import (
	"context"

	"github.com/aretw0/localnotes/pkg/core"
)

// New prepares the storage and opens the note store on top of it.
//
//	store, err := localnotes.New(ctx, "~/notes", localnotes.WithFormat("yaml"))
//
// The URI argument is adapter-specific (see Init).
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := resolveOptions(opts)

	storage, err := initStorage(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	codec, err := core.CodecFor(o.format)
	if err != nil {
		return nil, err
	}

	storeOpts := []core.Option{
		core.WithKey(o.key),
		core.WithCodec(codec),
	}
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}
	if o.idGenerator != nil {
		storeOpts = append(storeOpts, core.WithIDGenerator(o.idGenerator))
	}
	if o.logger != nil {
		storeOpts = append(storeOpts, core.WithLogger(o.logger))
	}
	if o.errorHandler != nil {
		storeOpts = append(storeOpts, core.WithErrorHandler(o.errorHandler))
	}

	return core.Open(ctx, storage, storeOpts...)
}
