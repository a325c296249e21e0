// Package badgerdb keeps the store in an embedded BadgerDB. Every top-level
// field of the store lives under its own key, so a missing or unreadable
// key only resets that field.
package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/scoop/internal/persist"
	"github.com/SergeyParamoshkin/scoop/internal/store"
)

const (
	keyUsers         = "users"
	keyArticles      = "articles"
	keyNextArticleID = "nextArticleId"
	keyComments      = "comments"
	keyNextCommentID = "nextCommentId"
)

// Config holds configuration for the BadgerDB instance.
type Config struct {
	// Dir is the directory for BadgerDB files. Ignored when InMemory is set.
	Dir string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	// Logger receives BadgerDB's own log lines. Nil silences them.
	Logger *zap.SugaredLogger
}

type Gateway struct {
	db *badger.DB
}

// badgerLogger adapts zap to BadgerDB's Logger interface.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func Open(cfg Config) (*Gateway, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("badger directory is required")
		}
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &Gateway{db: db}, nil
}

func (g *Gateway) Load(ctx context.Context) (store.Snapshot, error) {
	var (
		snap  store.Snapshot
		errs  []error
		found int
	)

	fields := map[string]interface{}{
		keyUsers:         &snap.Users,
		keyArticles:      &snap.Articles,
		keyNextArticleID: &snap.NextArticleID,
		keyComments:      &snap.Comments,
		keyNextCommentID: &snap.NextCommentID,
	}

	err := g.db.View(func(txn *badger.Txn) error {
		for key, dst := range fields {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}
			found++

			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, dst)
			}); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}

		return nil
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	if found == 0 {
		return snap, persist.ErrNotFound
	}

	return snap, errors.Join(errs...)
}

func (g *Gateway) Save(ctx context.Context, snap store.Snapshot) error {
	fields := map[string]interface{}{
		keyUsers:         snap.Users,
		keyArticles:      snap.Articles,
		keyNextArticleID: snap.NextArticleID,
		keyComments:      snap.Comments,
		keyNextCommentID: snap.NextCommentID,
	}

	return g.db.Update(func(txn *badger.Txn) error {
		for key, v := range fields {
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", key, err)
			}
			if err := txn.Set([]byte(key), val); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}

		return nil
	})
}

func (g *Gateway) Close() error {
	return g.db.Close()
}
