// Package yamlfile keeps the store in a single flat file. The file is
// written as YAML; JSON written by older deployments reads back as well.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/persist"
	"github.com/SergeyParamoshkin/scoop/internal/store"
)

const DefaultPath = "./database.yml"

type Gateway struct {
	path string
}

func New(path string) *Gateway {
	if path == "" {
		path = DefaultPath
	}

	return &Gateway{path: path}
}

// Load reads the file. Each top-level field is decoded on its own, so one
// corrupt table does not discard the others.
func (g *Gateway) Load(ctx context.Context) (store.Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return store.Snapshot{}, persist.ErrNotFound
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read %s: %w", g.path, err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return store.Snapshot{}, fmt.Errorf("parse %s: %w", g.path, err)
	}

	var (
		snap store.Snapshot
		errs []error
	)

	if err := decode(doc, "users", &snap.Users); err != nil {
		errs = append(errs, err)
	}
	if snap.Articles, err = decodeTable[model.Article](doc, "articles"); err != nil {
		errs = append(errs, err)
	}
	if err := decode(doc, "nextArticleId", &snap.NextArticleID); err != nil {
		errs = append(errs, err)
	}
	if snap.Comments, err = decodeTable[model.Comment](doc, "comments"); err != nil {
		errs = append(errs, err)
	}
	if err := decode(doc, "nextCommentId", &snap.NextCommentID); err != nil {
		errs = append(errs, err)
	}

	return snap, errors.Join(errs...)
}

// Save replaces the file atomically.
func (g *Gateway) Save(ctx context.Context, snap store.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(g.path), filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace %s: %w", g.path, err)
	}

	return nil
}

func (g *Gateway) Close() error {
	return nil
}

func decode[T any](doc map[string]yaml.Node, key string, dst *T) error {
	node, ok := doc[key]
	if !ok {
		return nil
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v

	return nil
}

// decodeTable reads an ID-keyed table. Keys may be plain integers or, in
// JSON files, quoted ones.
func decodeTable[T any](doc map[string]yaml.Node, key string) (map[int64]*T, error) {
	var raw map[string]*T
	if err := decode(doc, key, &raw); err != nil || raw == nil {
		return nil, err
	}

	table := make(map[int64]*T, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad id %q", key, k)
		}
		table[id] = v
	}

	return table, nil
}
