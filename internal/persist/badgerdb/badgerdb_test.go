package badgerdb

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/persist"
	"github.com/SergeyParamoshkin/scoop/internal/store"
)

func openInMemory(t *testing.T) *Gateway {
	t.Helper()

	gw, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	return gw
}

func TestLoadEmpty(t *testing.T) {
	_, err := openInMemory(t).Load(context.Background())
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := openInMemory(t)

	s := store.New()
	alice := s.CreateUser("alice")
	a := s.InsertArticle(&model.Article{Title: "T", URL: "u", Username: "alice", CommentIDs: []int64{}, Votes: model.NewVotes()})
	alice.ArticleIDs = append(alice.ArticleIDs, a.ID)
	gone := s.InsertArticle(&model.Article{Title: "gone", URL: "u", Username: "alice", CommentIDs: []int64{}, Votes: model.NewVotes()})
	s.TombstoneArticle(gone.ID)

	want := s.Snapshot()
	require.NoError(t, gw.Save(ctx, want))

	got, err := gw.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSkipsCorruptKey(t *testing.T) {
	ctx := context.Background()
	gw := openInMemory(t)

	require.NoError(t, gw.Save(ctx, store.Snapshot{
		Users:         map[string]*model.User{"alice": model.NewUser("alice")},
		NextArticleID: 9,
	}))
	require.NoError(t, gw.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyArticles), []byte("{broken"))
	}))

	snap, err := gw.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), keyArticles)
	assert.Contains(t, snap.Users, "alice")
	assert.Equal(t, int64(9), snap.NextArticleID)
}
