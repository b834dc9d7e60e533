package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/localnotes/pkg/adapters/fs"
	"github.com/aretw0/localnotes/pkg/adapters/memory"
	"github.com/aretw0/localnotes/pkg/core"
)

// Init prepares the storage a Store persists to.
// The 'uri' argument is adapter-specific: the data directory for 'fs',
// ignored for 'memory'.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return initStorage(ctx, uri, resolveOptions(opts))
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	// 1. Injected storage wins
	if o.storage != nil {
		return o.storage, nil
	}

	// 2. Initialize based on Adapter
	switch o.adapter {
	case AdapterFS:
		return initFS(ctx, uri, o)
	case AdapterMemory:
		return memory.NewStorage(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(ctx context.Context, path string, o *options) (*fs.Storage, error) {
	codec, err := core.CodecFor(o.format)
	if err != nil {
		return nil, err
	}

	// Safety & Path Resolution
	devRun := IsDevRun()
	useTemp := o.forceTemp || (devRun && o.devSafety)
	resolvedPath := ResolveDataDir(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "original_path", path, "resolved_path", resolvedPath)
		case devRun:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		}
	}

	storage := fs.NewStorage(fs.Config{
		Dir:          resolvedPath,
		Ext:          codec.Ext(),
		MustExist:    o.mustExist,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})

	if err := storage.Initialize(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}
