package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSegments(t *testing.T) {
	req := Request{Path: "//articles/12/upvote/"}
	assert.Equal(t, []string{"articles", "12", "upvote"}, req.Segments())
	assert.Equal(t, "12", req.Segment(1))
	assert.Equal(t, "", req.Segment(3))
	assert.Equal(t, "", req.Segment(-1))
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		path   string
		want   int64
		wantOK bool
	}{
		{"/articles/1", 1, true},
		{"/comments/42/downvote", 42, true},
		{"/articles/-3", -3, true},
		{"/articles", 0, false},
		{"/articles/0", 0, false},
		{"/articles/abc", 0, false},
		{"/articles/1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := Request{Path: tt.path}.ID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	err := Request{Body: []byte("  ")}.Decode(&UsernameRequest{})
	require.ErrorIs(t, err, ErrEmptyBody)
}

func TestDecodeInvalidJSON(t *testing.T) {
	err := Request{Body: []byte(`{"username":`)}.Decode(&UsernameRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode body")
}

func TestUsernameRequestRequiresUsername(t *testing.T) {
	require.Error(t, Request{Body: []byte(`{}`)}.Decode(&UsernameRequest{}))
	require.Error(t, Request{Body: []byte(`{"username":""}`)}.Decode(&UsernameRequest{}))

	data := &UsernameRequest{}
	require.NoError(t, Request{Body: []byte(`{"username":"alice"}`)}.Decode(data))
	assert.Equal(t, "alice", data.Username)
}

func TestArticleRequestBind(t *testing.T) {
	wrapped := &ArticleRequest{}
	require.NoError(t, Request{Body: []byte(`{"article":{"title":"T","url":"u","username":"alice"}}`)}.Decode(wrapped))
	assert.Equal(t, NewArticle{Title: "T", URL: "u", Username: "alice"}, *wrapped.Article)

	bare := &ArticleRequest{}
	require.NoError(t, Request{Body: []byte(`{"title":"T","url":"u","username":"alice"}`)}.Decode(bare))
	assert.Equal(t, "T", bare.Article.Title)

	for _, body := range []string{
		`{}`,
		`{"article":{}}`,
		`{"article":{"title":"T","url":"u"}}`,
		`{"title":"T","username":"alice"}`,
	} {
		assert.Error(t, Request{Body: []byte(body)}.Decode(&ArticleRequest{}), body)
	}
}

func TestArticleUpdateRequestBind(t *testing.T) {
	data := &ArticleUpdateRequest{}
	require.NoError(t, Request{Body: []byte(`{"article":{}}`)}.Decode(data))
	assert.Equal(t, ArticlePatch{}, *data.Article)

	data = &ArticleUpdateRequest{}
	require.NoError(t, Request{Body: []byte(`{"url":"new"}`)}.Decode(data))
	assert.Equal(t, "new", data.Article.URL)

	assert.Error(t, Request{Body: []byte(`{}`)}.Decode(&ArticleUpdateRequest{}))
}

func TestCommentRequestBind(t *testing.T) {
	data := &CommentRequest{}
	require.NoError(t, Request{Body: []byte(`{"comment":{"body":"hi","username":"alice","articleId":1}}`)}.Decode(data))
	assert.Equal(t, NewComment{Body: "hi", Username: "alice", ArticleID: 1}, *data.Comment)

	for _, body := range []string{
		`{}`,
		`{"comment":{"body":"hi","username":"alice"}}`,
		`{"comment":{"body":"","username":"alice","articleId":1}}`,
		`{"body":"hi","username":"alice","articleId":1}`,
	} {
		assert.Error(t, Request{Body: []byte(body)}.Decode(&CommentRequest{}), body)
	}
}

func TestCommentUpdateRequestBind(t *testing.T) {
	data := &CommentUpdateRequest{}
	require.NoError(t, Request{Body: []byte(`{"comment":{"id":3,"body":"hi","username":"alice","articleId":1}}`)}.Decode(data))
	assert.Equal(t, int64(3), data.Comment.ID)
	assert.Equal(t, "hi", data.Comment.Body)

	assert.Error(t, Request{Body: []byte(`{"comment":{"body":"hi","username":"alice","articleId":1}}`)}.Decode(&CommentUpdateRequest{}))
}
