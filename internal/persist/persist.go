// Package persist defines how the in-memory store reaches durable storage.
// Loading is best effort: whatever cannot be read falls back to its empty
// default. Saving never fails a request; callers log the error and go on.
package persist

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/scoop/internal/store"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved store")

// Gateway loads and saves store snapshots.
type Gateway interface {
	// Load returns the saved snapshot. Along with an error it may still
	// return the fields it managed to read.
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
	Close() error
}

// Nop neither loads nor saves. It backs test mode.
type Nop struct{}

func (Nop) Load(context.Context) (store.Snapshot, error) { return store.Snapshot{}, ErrNotFound }

func (Nop) Save(context.Context, store.Snapshot) error { return nil }

func (Nop) Close() error { return nil }

// Open builds the store from whatever gw can load.
func Open(ctx context.Context, gw Gateway, logger *zap.SugaredLogger) *store.Store {
	snap, err := gw.Load(ctx)

	switch {
	case errors.Is(err, ErrNotFound):
		logger.Infow("no saved store, starting empty")
	case err != nil:
		logger.Warnw("saved store partly unreadable, missing fields start empty", "error", err)
	}

	return store.Restore(snap)
}
