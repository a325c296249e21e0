// Package client is a typed HTTP client for the scoop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/scoop/internal/model"
	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

type Client struct {
	http.Client
	Addr string
}

// StatusError reports a response outside the 2xx range. The API never
// explains failures, so the status code is all there is.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// GetOrCreateUser registers username, or returns the existing user.
func (c *Client) GetOrCreateUser(ctx context.Context, username string) (*model.User, error) {
	var out payload.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", payload.UsernameRequest{Username: username}, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*payload.UserDetailResponse, error) {
	var out payload.UserDetailResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]*model.Article, error) {
	var out payload.ArticleListResponse
	if err := c.do(ctx, http.MethodGet, "/articles", nil, &out); err != nil {
		return nil, err
	}

	return out.Articles, nil
}

// GetArticle returns the article with its comments resolved.
func (c *Client) GetArticle(ctx context.Context, id int64) (*payload.ArticleWithComments, error) {
	var out payload.ArticleDetailResponse
	if err := c.do(ctx, http.MethodGet, articlePath(id), nil, &out); err != nil {
		return nil, err
	}

	return &out.Article, nil
}

func (c *Client) CreateArticle(ctx context.Context, a payload.NewArticle) (*model.Article, error) {
	var out payload.ArticleResponse
	if err := c.do(ctx, http.MethodPost, "/articles", map[string]payload.NewArticle{"article": a}, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

// UpdateArticle overwrites the non-empty fields of p.
func (c *Client) UpdateArticle(ctx context.Context, id int64, p payload.ArticlePatch) (*model.Article, error) {
	var out payload.ArticleResponse
	if err := c.do(ctx, http.MethodPut, articlePath(id), map[string]payload.ArticlePatch{"article": p}, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, articlePath(id), nil, nil)
}

func (c *Client) VoteArticle(ctx context.Context, id int64, username string, d vote.Direction) (*model.Article, error) {
	var out payload.ArticleResponse
	path := articlePath(id) + "/" + string(d)
	if err := c.do(ctx, http.MethodPut, path, payload.UsernameRequest{Username: username}, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

func (c *Client) CreateComment(ctx context.Context, nc payload.NewComment) (*model.Comment, error) {
	var out payload.CommentResponse
	if err := c.do(ctx, http.MethodPost, "/comments", payload.CommentRequest{Comment: &nc}, &out); err != nil {
		return nil, err
	}

	return out.Comment, nil
}

func (c *Client) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	var out payload.CommentResponse
	if err := c.do(ctx, http.MethodGet, commentPath(id), nil, &out); err != nil {
		return nil, err
	}

	return out.Comment, nil
}

// UpdateComment sends cm back with its new body and returns the stored text.
func (c *Client) UpdateComment(ctx context.Context, cm *model.Comment) (string, error) {
	in := payload.CommentUpdateRequest{Comment: &payload.CommentUpdate{
		ID: cm.ID,
		NewComment: payload.NewComment{
			Body:      cm.Body,
			Username:  cm.Username,
			ArticleID: cm.ArticleID,
		},
	}}

	var out payload.CommentTextResponse
	if err := c.do(ctx, http.MethodPut, commentPath(cm.ID), in, &out); err != nil {
		return "", err
	}

	return out.Comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, commentPath(id), nil, nil)
}

func (c *Client) VoteComment(ctx context.Context, id int64, username string, d vote.Direction) (*model.Comment, error) {
	var out payload.CommentResponse
	path := commentPath(id) + "/" + string(d)
	if err := c.do(ctx, http.MethodPut, path, payload.UsernameRequest{Username: username}, &out); err != nil {
		return nil, err
	}

	return out.Comment, nil
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

func commentPath(id int64) string {
	return "/comments/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)

		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}
