package article

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/store"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// List returns every live article, newest first.
func (h *Handler) List(req payload.Request) payload.Response {
	return payload.OK(&payload.ArticleListResponse{Articles: h.store.Articles()})
}

// Get returns the article with its comments resolved.
func (h *Handler) Get(req payload.Request) payload.Response {
	article, resp, ok := h.lookup(req)
	if !ok {
		return resp
	}

	return payload.OK(&payload.ArticleDetailResponse{
		Article: payload.ArticleWithComments{
			Article:  article,
			Comments: h.store.CommentsOf(article.CommentIDs),
		},
	})
}

// Create persists the posted Article and registers it with its author.
// An unknown author is a validation failure, not a missing resource.
func (h *Handler) Create(req payload.Request) payload.Response {
	data := &payload.ArticleRequest{}
	if err := req.Decode(data); err != nil {
		return payload.Fail(http.StatusBadRequest, err)
	}

	author, ok := h.store.User(data.Article.Username)
	if !ok {
		return payload.Fail(http.StatusBadRequest, fmt.Errorf("unknown author %q", data.Article.Username))
	}

	article := h.store.InsertArticle(&model.Article{
		Title:      data.Article.Title,
		URL:        data.Article.URL,
		Username:   author.Username,
		CommentIDs: []int64{},
		Votes:      model.NewVotes(),
	})
	author.ArticleIDs = append(author.ArticleIDs, article.ID)

	return payload.Created(&payload.ArticleResponse{Article: article})
}

// Update overwrites the title and url of an existing Article. Fields left
// empty in the request keep their stored value.
func (h *Handler) Update(req payload.Request) payload.Response {
	id, ok := req.ID()
	if !ok {
		return payload.Fail(http.StatusBadRequest, errors.New("missing article id"))
	}

	data := &payload.ArticleUpdateRequest{}
	if err := req.Decode(data); err != nil {
		return payload.Fail(http.StatusBadRequest, err)
	}

	article, ok := h.store.Article(id)
	if !ok {
		return payload.Status(http.StatusNotFound)
	}

	if data.Article.Title != "" {
		article.Title = data.Article.Title
	}
	if data.Article.URL != "" {
		article.URL = data.Article.URL
	}

	return payload.OK(&payload.ArticleResponse{Article: article})
}

// Delete tombstones the Article together with every comment on it and
// removes the IDs from the users that authored them.
// Unlike comments, a missing article answers 400.
func (h *Handler) Delete(req payload.Request) payload.Response {
	id, _ := req.ID()

	article, ok := h.store.Article(id)
	if !ok {
		return payload.Fail(http.StatusBadRequest, fmt.Errorf("no article %d", id))
	}

	for _, commentID := range article.CommentIDs {
		comment, ok := h.store.Comment(commentID)
		if !ok {
			continue
		}

		h.store.TombstoneComment(commentID)
		if author, ok := h.store.User(comment.Username); ok {
			author.CommentIDs = model.RemoveID(author.CommentIDs, commentID)
		}
	}

	h.store.TombstoneArticle(id)
	if owner, ok := h.store.User(article.Username); ok {
		owner.ArticleIDs = model.RemoveID(owner.ArticleIDs, id)
	}

	return payload.Status(http.StatusNoContent)
}

// Vote returns the handler casting a vote in direction d.
func (h *Handler) Vote(d vote.Direction) func(payload.Request) payload.Response {
	return func(req payload.Request) payload.Response {
		id, _ := req.ID()

		data := &payload.UsernameRequest{}
		if err := req.Decode(data); err != nil {
			return payload.Fail(http.StatusBadRequest, err)
		}

		article, ok := h.store.Article(id)
		if !ok {
			return payload.Fail(http.StatusBadRequest, fmt.Errorf("no article %d", id))
		}
		if _, ok := h.store.User(data.Username); !ok {
			return payload.Fail(http.StatusBadRequest, fmt.Errorf("unknown voter %q", data.Username))
		}

		vote.Toggle(&article.Votes, data.Username, d)

		return payload.OK(&payload.ArticleResponse{Article: article})
	}
}
