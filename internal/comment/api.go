// Package comment serves the comment routes. Every reference a comment
// makes is checked by asking the user and article handlers for the record,
// the same way a client would.
package comment

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/store"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

// Getter answers a GET for a single resource.
type Getter interface {
	Get(req payload.Request) payload.Response
}

type Handler struct {
	store    *store.Store
	users    Getter
	articles Getter
}

func NewHandler(s *store.Store, users, articles Getter) *Handler {
	return &Handler{store: s, users: users, articles: articles}
}

func (h *Handler) userExists(username string) bool {
	return h.users.Get(payload.Request{Path: "/users/" + username}).Status == http.StatusOK
}

func (h *Handler) articleExists(id int64) bool {
	return h.articles.Get(payload.Request{Path: "/articles/" + strconv.FormatInt(id, 10)}).Status == http.StatusOK
}

// Create stores a new comment and registers its ID on both the author and
// the article.
func (h *Handler) Create(req payload.Request) payload.Response {
	data := &payload.CommentRequest{}
	if err := req.Decode(data); err != nil {
		return payload.Fail(http.StatusBadRequest, err)
	}

	in := data.Comment
	if !h.userExists(in.Username) || !h.articleExists(in.ArticleID) {
		return payload.Fail(http.StatusBadRequest,
			fmt.Errorf("comment by %q on article %d: unknown reference", in.Username, in.ArticleID))
	}

	author, _ := h.store.User(in.Username)
	article, _ := h.store.Article(in.ArticleID)

	comment := h.store.InsertComment(&model.Comment{
		Body:      in.Body,
		Username:  author.Username,
		ArticleID: article.ID,
		Votes:     model.NewVotes(),
	})
	author.CommentIDs = append(author.CommentIDs, comment.ID)
	article.CommentIDs = append(article.CommentIDs, comment.ID)

	return payload.Created(&payload.CommentResponse{Comment: comment})
}

// Get returns a single comment.
func (h *Handler) Get(req payload.Request) payload.Response {
	comment, resp, ok := h.lookup(req)
	if !ok {
		return resp
	}

	return payload.OK(&payload.CommentResponse{Comment: comment})
}

// Update replaces the text of a comment. The request must carry the whole
// comment, but only its body is written.
func (h *Handler) Update(req payload.Request) payload.Response {
	data := &payload.CommentUpdateRequest{}
	if err := req.Decode(data); err != nil {
		return payload.Fail(http.StatusBadRequest, err)
	}

	comment, _, ok := h.lookup(req)
	if !ok || comment.ID != data.Comment.ID {
		return payload.Status(http.StatusNotFound)
	}

	comment.Body = data.Comment.Body

	return payload.OK(&payload.CommentTextResponse{Comment: comment.Body})
}

// Delete tombstones the comment and unlinks it from its author and article.
// A missing comment answers 404, unlike articles.
func (h *Handler) Delete(req payload.Request) payload.Response {
	comment, _, ok := h.lookup(req)
	if !ok {
		return payload.Status(http.StatusNotFound)
	}

	h.store.TombstoneComment(comment.ID)

	if author, ok := h.store.User(comment.Username); ok {
		author.CommentIDs = model.RemoveID(author.CommentIDs, comment.ID)
	}
	if article, ok := h.store.Article(comment.ArticleID); ok {
		article.CommentIDs = model.RemoveID(article.CommentIDs, comment.ID)
	}

	return payload.Status(http.StatusNoContent)
}

// Vote returns the handler casting a vote in direction d.
func (h *Handler) Vote(d vote.Direction) func(payload.Request) payload.Response {
	return func(req payload.Request) payload.Response {
		data := &payload.UsernameRequest{}
		if err := req.Decode(data); err != nil {
			return payload.Fail(http.StatusBadRequest, err)
		}

		comment, _, ok := h.lookup(req)
		if !ok {
			return payload.Fail(http.StatusBadRequest, errors.New("no such comment"))
		}
		if !h.userExists(data.Username) {
			return payload.Fail(http.StatusBadRequest, fmt.Errorf("unknown voter %q", data.Username))
		}

		vote.Toggle(&comment.Votes, data.Username, d)

		return payload.OK(&payload.CommentResponse{Comment: comment})
	}
}

func (h *Handler) lookup(req payload.Request) (*model.Comment, payload.Response, bool) {
	id, ok := req.ID()
	if !ok {
		return nil, payload.Fail(http.StatusBadRequest, errors.New("missing comment id")), false
	}

	comment, ok := h.store.Comment(id)
	if !ok {
		return nil, payload.Status(http.StatusNotFound), false
	}

	return comment, payload.Response{}, true
}
