//go:build !integration

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/persist"
	"github.com/SergeyParamoshkin/scoop/internal/router"
	"github.com/SergeyParamoshkin/scoop/internal/store"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newClient(t *testing.T) *Client {
	t.Helper()

	r := chi.NewRouter()
	router.NewServer(router.New(store.New()), persist.Nop{}, zap.NewNop().Sugar()).Mount(r)
	ts := httptest.NewServer(r)

	c := &Client{Addr: ts.URL}
	t.Cleanup(func() {
		c.CloseIdleConnections()
		ts.Close()
	})

	return c
}

func TestUsers(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	u, err := c.GetOrCreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.ArticleIDs)

	again, err := c.GetOrCreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, again)

	detail, err := c.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.User.Username)
	assert.Empty(t, detail.UserArticles)

	_, err = c.GetUser(ctx, "nobody")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestArticles(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.GetOrCreateUser(ctx, "alice")
	require.NoError(t, err)

	a, err := c.CreateArticle(ctx, payload.NewArticle{Title: "Go", URL: "https://go.dev", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	a, err = c.UpdateArticle(ctx, a.ID, payload.ArticlePatch{Title: "Go 1.25"})
	require.NoError(t, err)
	assert.Equal(t, "Go 1.25", a.Title)
	assert.Equal(t, "https://go.dev", a.URL)

	a, err = c.VoteArticle(ctx, a.ID, "alice", vote.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, a.UpvotedBy)

	list, err := c.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go 1.25", list[0].Title)

	got, err := c.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Empty(t, got.Comments)

	require.NoError(t, c.DeleteArticle(ctx, a.ID))

	var se *StatusError
	err = c.DeleteArticle(ctx, a.ID)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)

	_, err = c.CreateArticle(ctx, payload.NewArticle{Title: "x", URL: "y", Username: "ghost"})
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
}

func TestComments(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.GetOrCreateUser(ctx, "alice")
	require.NoError(t, err)
	_, err = c.GetOrCreateUser(ctx, "bob")
	require.NoError(t, err)
	a, err := c.CreateArticle(ctx, payload.NewArticle{Title: "Go", URL: "https://go.dev", Username: "alice"})
	require.NoError(t, err)

	cm, err := c.CreateComment(ctx, payload.NewComment{Body: "nice", Username: "bob", ArticleID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cm.ID)

	cm.Body = "very nice"
	text, err := c.UpdateComment(ctx, cm)
	require.NoError(t, err)
	assert.Equal(t, "very nice", text)

	cm, err = c.VoteComment(ctx, cm.ID, "alice", vote.Down)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, cm.DownvotedBy)

	got, err := c.GetComment(ctx, cm.ID)
	require.NoError(t, err)
	assert.Equal(t, "very nice", got.Body)

	article, err := c.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, article.Comments, 1)

	require.NoError(t, c.DeleteComment(ctx, cm.ID))

	var se *StatusError
	_, err = c.GetComment(ctx, cm.ID)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}
