package payload

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/scoop/internal/model"
)

// Response is what every handler returns. A nil Body yields an empty
// response payload. Err explains a failure to the server log and is never
// sent to the client.
type Response struct {
	Status int
	Body   render.Renderer
	Err    error
}

func Status(code int) Response {
	return Response{Status: code}
}

// Fail is a bodiless failure response carrying the reason for the log.
func Fail(code int, err error) Response {
	return Response{Status: code, Err: err}
}

func OK(body render.Renderer) Response {
	return Response{Status: http.StatusOK, Body: body}
}

func Created(body render.Renderer) Response {
	return Response{Status: http.StatusCreated, Body: body}
}

// UserResponse wraps a single user: {"user": {...}}.
type UserResponse struct {
	User *model.User `json:"user"`
}

func (u *UserResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// UserDetailResponse is a user with every article and comment it authored
// resolved to the live record.
type UserDetailResponse struct {
	User         *model.User      `json:"user"`
	UserArticles []*model.Article `json:"userArticles"`
	UserComments []*model.Comment `json:"userComments"`
}

func (u *UserDetailResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if u.UserArticles == nil {
		u.UserArticles = []*model.Article{}
	}
	if u.UserComments == nil {
		u.UserComments = []*model.Comment{}
	}

	return nil
}

// ArticleListResponse is the body of GET /articles.
type ArticleListResponse struct {
	Articles []*model.Article `json:"articles"`
}

func (l *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if l.Articles == nil {
		l.Articles = []*model.Article{}
	}

	return nil
}

// ArticleResponse wraps a single article: {"article": {...}}.
type ArticleResponse struct {
	Article *model.Article `json:"article"`
}

func (a *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleWithComments is an article with its comment IDs resolved.
type ArticleWithComments struct {
	*model.Article

	Comments []*model.Comment `json:"comments"`
}

// ArticleDetailResponse is the body of GET /articles/:id.
type ArticleDetailResponse struct {
	Article ArticleWithComments `json:"article"`
}

func (a *ArticleDetailResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if a.Article.Comments == nil {
		a.Article.Comments = []*model.Comment{}
	}

	return nil
}

// CommentResponse wraps a single comment: {"comment": {...}}.
type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}

func (c *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// CommentTextResponse is the body of PUT /comments/:id: the new text only.
type CommentTextResponse struct {
	Comment string `json:"comment"`
}

func (c *CommentTextResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
