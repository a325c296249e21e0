package user

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// GetOrCreate returns the user named in the body, registering it first
// when it does not exist yet.
func (h *Handler) GetOrCreate(req payload.Request) payload.Response {
	data := &payload.UsernameRequest{}
	if err := req.Decode(data); err != nil {
		return payload.Fail(http.StatusBadRequest, err)
	}

	if u, ok := h.store.User(data.Username); ok {
		return payload.OK(&payload.UserResponse{User: u})
	}

	return payload.Created(&payload.UserResponse{User: h.store.CreateUser(data.Username)})
}

// Get returns the user named in the path together with the articles and
// comments it authored.
func (h *Handler) Get(req payload.Request) payload.Response {
	username := req.Segment(1)
	if username == "" {
		return payload.Fail(http.StatusBadRequest, errors.New("missing username"))
	}

	u, ok := h.store.User(username)
	if !ok {
		return payload.Status(http.StatusNotFound)
	}

	return payload.OK(&payload.UserDetailResponse{
		User:         u,
		UserArticles: h.store.ArticlesOf(u.ArticleIDs),
		UserComments: h.store.CommentsOf(u.CommentIDs),
	})
}
