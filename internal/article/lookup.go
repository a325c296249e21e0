package article

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/payload"
)

// lookup loads the Article named by the path. When it can't, the returned
// response is 400 for a malformed ID and 404 for an unknown one.
func (h *Handler) lookup(req payload.Request) (*model.Article, payload.Response, bool) {
	id, ok := req.ID()
	if !ok {
		return nil, payload.Fail(http.StatusBadRequest, errors.New("missing article id")), false
	}

	article, ok := h.store.Article(id)
	if !ok {
		return nil, payload.Status(http.StatusNotFound), false
	}

	return article, payload.Response{}, true
}
