// Package router maps a method and a path to the handler serving it and
// adapts the result to HTTP.
package router

import (
	"net/http"

	"github.com/SergeyParamoshkin/scoop/internal/article"
	"github.com/SergeyParamoshkin/scoop/internal/comment"
	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/store"
	"github.com/SergeyParamoshkin/scoop/internal/user"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

type HandlerFunc func(req payload.Request) payload.Response

// Route is one entry of the route table.
type Route struct {
	Key     Key
	Method  string
	Handler HandlerFunc
}

// Router owns the store and the fixed route table over it.
type Router struct {
	store  *store.Store
	routes []Route
	index  map[Key]map[string]HandlerFunc
}

func New(s *store.Store) *Router {
	users := user.NewHandler(s)
	articles := article.NewHandler(s)
	comments := comment.NewHandler(s, users, articles)

	rt := &Router{store: s, index: map[Key]map[string]HandlerFunc{}}

	rt.add(Key{Shape: Collection, Resource: "users"}, http.MethodPost, users.GetOrCreate)
	rt.add(Key{Shape: UserMember, Resource: "users"}, http.MethodGet, users.Get)

	rt.add(Key{Shape: Collection, Resource: "articles"}, http.MethodGet, articles.List)
	rt.add(Key{Shape: Collection, Resource: "articles"}, http.MethodPost, articles.Create)
	rt.add(Key{Shape: Member, Resource: "articles"}, http.MethodGet, articles.Get)
	rt.add(Key{Shape: Member, Resource: "articles"}, http.MethodPut, articles.Update)
	rt.add(Key{Shape: Member, Resource: "articles"}, http.MethodDelete, articles.Delete)
	rt.add(Key{Shape: Ballot, Resource: "articles", Direction: vote.Up}, http.MethodPut, articles.Vote(vote.Up))
	rt.add(Key{Shape: Ballot, Resource: "articles", Direction: vote.Down}, http.MethodPut, articles.Vote(vote.Down))

	rt.add(Key{Shape: Collection, Resource: "comments"}, http.MethodPost, comments.Create)
	rt.add(Key{Shape: Member, Resource: "comments"}, http.MethodGet, comments.Get)
	rt.add(Key{Shape: Member, Resource: "comments"}, http.MethodPut, comments.Update)
	rt.add(Key{Shape: Member, Resource: "comments"}, http.MethodDelete, comments.Delete)
	rt.add(Key{Shape: Ballot, Resource: "comments", Direction: vote.Up}, http.MethodPut, comments.Vote(vote.Up))
	rt.add(Key{Shape: Ballot, Resource: "comments", Direction: vote.Down}, http.MethodPut, comments.Vote(vote.Down))

	return rt
}

func (rt *Router) add(k Key, method string, h HandlerFunc) {
	if rt.index[k] == nil {
		rt.index[k] = map[string]HandlerFunc{}
	}
	rt.index[k][method] = h
	rt.routes = append(rt.routes, Route{Key: k, Method: method, Handler: h})
}

// Routes lists the route table in registration order.
func (rt *Router) Routes() []Route {
	return rt.routes
}

func (rt *Router) Store() *store.Store {
	return rt.store
}

// Resolve finds the handler for method and path.
func (rt *Router) Resolve(method, path string) (HandlerFunc, Key, bool) {
	k, ok := Match(path)
	if !ok {
		return nil, Key{}, false
	}

	h, ok := rt.index[k][method]

	return h, k, ok
}

// Dispatch runs the handler for method and path. An unknown route is a
// bodiless 400 and no handler runs.
func (rt *Router) Dispatch(method, path string, body []byte) (payload.Response, Key, bool) {
	h, k, ok := rt.Resolve(method, path)
	if !ok {
		return payload.Status(http.StatusBadRequest), k, false
	}

	return h(payload.Request{Path: path, Body: body}), k, true
}
