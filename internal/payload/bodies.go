package payload

import "errors"

// UsernameRequest is the body of POST /users and of every vote route.
type UsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

func (u *UsernameRequest) Bind() error {
	return validate.Struct(u)
}

// NewArticle carries the fields required to create an article.
type NewArticle struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// ArticleRequest is the body of POST /articles. The article normally comes
// wrapped as {"article": {...}}; bare top-level fields are accepted too.
type ArticleRequest struct {
	Article *NewArticle `json:"article"`

	NewArticle
}

func (a *ArticleRequest) Bind() error {
	if a.Article == nil && a.NewArticle != (NewArticle{}) {
		a.Article = &a.NewArticle
	}

	// a.Article is nil if no Article fields are sent in the request.
	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	return validate.Struct(a.Article)
}

// ArticlePatch lists the article fields an update may overwrite. Empty
// fields keep the stored value.
type ArticlePatch struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ArticleUpdateRequest is the body of PUT /articles/:id.
type ArticleUpdateRequest struct {
	Article *ArticlePatch `json:"article"`

	ArticlePatch
}

func (a *ArticleUpdateRequest) Bind() error {
	if a.Article == nil && a.ArticlePatch != (ArticlePatch{}) {
		a.Article = &a.ArticlePatch
	}

	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	return nil
}

// NewComment carries the fields required to create a comment.
type NewComment struct {
	Body      string `json:"body" validate:"required"`
	Username  string `json:"username" validate:"required"`
	ArticleID int64  `json:"articleId" validate:"required"`
}

// CommentRequest is the body of POST /comments: {"comment": {...}}.
type CommentRequest struct {
	Comment *NewComment `json:"comment" validate:"required"`
}

func (c *CommentRequest) Bind() error {
	return validate.Struct(c)
}

// CommentUpdate is a full comment as sent back by a client. Only the body
// is ever written.
type CommentUpdate struct {
	ID int64 `json:"id" validate:"required"`

	NewComment
}

// CommentUpdateRequest is the body of PUT /comments/:id.
type CommentUpdateRequest struct {
	Comment *CommentUpdate `json:"comment" validate:"required"`
}

func (c *CommentUpdateRequest) Bind() error {
	return validate.Struct(c)
}
