package router

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/scoop/internal/persist"
)

const maxBodyBytes = 1 << 20

// Observer is told about every request and every save.
type Observer interface {
	ObserveRequest(ctx context.Context, method, route string, status int)
	ObserveSave(ctx context.Context, err error)
}

type ctxKey int8

const ctxKeyLogger ctxKey = iota

// WithLogger attaches a request-scoped logger that the Server prefers over
// its own.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(context.Context, string, string, int) {}

func (nopObserver) ObserveSave(context.Context, error) {}

// Server serves the router over HTTP. Requests are handled one at a time:
// the store is never touched by two handlers at once, and a mutating
// request is saved before the next one starts.
type Server struct {
	mu       sync.Mutex
	router   *Router
	gateway  persist.Gateway
	observer Observer
	logger   *zap.SugaredLogger
}

type Option func(*Server)

func WithObserver(o Observer) Option {
	return func(s *Server) { s.observer = o }
}

func NewServer(rt *Router, gw persist.Gateway, logger *zap.SugaredLogger, opts ...Option) *Server {
	s := &Server{
		router:   rt,
		gateway:  gw,
		observer: nopObserver{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Mount registers every route of the table on r and sends whatever r
// cannot match back here, so unknown routes answer 400.
func (s *Server) Mount(r chi.Router) {
	for _, route := range s.router.Routes() {
		r.MethodFunc(route.Method, route.Key.Pattern(), s.ServeHTTP)
	}

	r.NotFound(s.ServeHTTP)
	r.MethodNotAllowed(s.ServeHTTP)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The whole body is buffered before the handler runs.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.log(r.Context()).Debugw("read request body", "error", err, "path", r.URL.Path)
		s.observer.ObserveRequest(r.Context(), r.Method, "unmatched", http.StatusBadRequest)
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, key, ok := s.router.Dispatch(r.Method, r.URL.Path, body)

	route := "unmatched"
	if ok {
		route = key.String()
	}

	if resp.Err != nil {
		s.log(r.Context()).Debugw("request rejected",
			"method", r.Method,
			"route", route,
			"status", resp.Status,
			"error", resp.Err,
		)
	}

	if ok && mutating(r.Method) {
		s.save(r.Context())
	}

	s.observer.ObserveRequest(r.Context(), r.Method, route, resp.Status)
	s.write(w, r, resp.Status, resp.Body)
}

// Save flushes the store. Callers outside a request use it, e.g. on shutdown.
func (s *Server) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gateway.Save(ctx, s.router.Store().Snapshot())
}

// save must be called with s.mu held. Failures are logged, never returned.
func (s *Server) save(ctx context.Context) {
	err := s.gateway.Save(ctx, s.router.Store().Snapshot())
	s.observer.ObserveSave(ctx, err)
	if err != nil {
		s.log(ctx).Errorw("save store", "error", err)
	}
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, body render.Renderer) {
	if body == nil {
		w.WriteHeader(status)

		return
	}

	render.Status(r, status)
	if err := render.Render(w, r, body); err != nil {
		s.log(r.Context()).Errorw("render response", "error", err)
	}
}

func (s *Server) log(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zap.SugaredLogger); ok {
		return l
	}

	return s.logger
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}

	return false
}
