//
// Scoop
// =====
// An in-memory news board: users post articles, comment on them and vote
// on both. The store is saved after every change and loaded on boot.
//
// Print the route table as Markdown with `go run . -routes`.
//
// Boot the server:
// ----------------
// $ go run .
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice"}' http://localhost:4000/users
// {"user":{"username":"alice","articleIds":[],"commentIds":[]}}
//
// $ curl -X POST -d '{"article":{"title":"Go","url":"https://go.dev","username":"alice"}}' http://localhost:4000/articles
// {"article":{"id":1,"title":"Go","url":"https://go.dev","username":"alice","commentIds":[],"upvotedBy":[],"downvotedBy":[]}}
//
// $ curl -X PUT -d '{"username":"alice"}' http://localhost:4000/articles/1/upvote
// {"article":{"id":1,...,"upvotedBy":["alice"],"downvotedBy":[]}}
//
// $ curl -X DELETE http://localhost:4000/articles/1
// (204, empty body)
//
// $ curl http://localhost:4000/widgets
// (400, empty body)
//
// Metrics are served on the diag address:
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SergeyParamoshkin/scoop/internal/cors"
	"github.com/SergeyParamoshkin/scoop/internal/diag"
	"github.com/SergeyParamoshkin/scoop/internal/persist"
	"github.com/SergeyParamoshkin/scoop/internal/persist/badgerdb"
	"github.com/SergeyParamoshkin/scoop/internal/persist/yamlfile"
	"github.com/SergeyParamoshkin/scoop/internal/router"
	"github.com/SergeyParamoshkin/scoop/internal/store"
)

const (
	ServiceName = "scoop"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      Config
}

func main() {
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() // nolint
	sugar := logger.Sugar()

	a := App{
		sugarLogger: sugar,
		config:      config,
	}

	if err := a.run(); err != nil {
		sugar.Errorw("scoop stopped", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

func (a *App) run() error {
	if a.config.Routes {
		r := a.newRouter(router.NewServer(router.New(store.New()), persist.Nop{}, a.sugarLogger))
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/scoop",
			Intro:       "Scoop REST API routes.",
		}))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw, err := a.openGateway()
	if err != nil {
		return err
	}

	metrics, err := diag.New(ServiceName)
	if err != nil {
		return multierr.Append(err, gw.Close())
	}

	st := persist.Open(ctx, gw, a.sugarLogger)
	srv := router.NewServer(router.New(st), gw, a.sugarLogger, router.WithObserver(metrics))

	api := &http.Server{
		Addr:              a.config.Addr,
		Handler:           a.newRouter(srv),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	diagServer := &http.Server{
		Addr:              a.config.DiagAddr,
		Handler:           diag.Router(metrics, a.sugarLogger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 2)
	for _, s := range []*http.Server{api, diagServer} {
		go func(s *http.Server) {
			a.sugarLogger.Infow("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", s.Addr, err)
			}
		}(s)
	}

	select {
	case <-ctx.Done():
		a.sugarLogger.Infow("shutting down")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return multierr.Combine(
		err,
		api.Shutdown(shutdownCtx),
		diagServer.Shutdown(shutdownCtx),
		srv.Save(shutdownCtx),
		metrics.Shutdown(shutdownCtx),
		gw.Close(),
	)
}

func (a *App) openGateway() (persist.Gateway, error) {
	switch {
	case a.config.TestMode:
		a.sugarLogger.Infow("test mode, store is neither loaded nor saved")

		return persist.Nop{}, nil
	case a.config.Storage == storageBadger:
		gw, err := badgerdb.Open(badgerdb.Config{Dir: a.config.BadgerDir, Logger: a.sugarLogger})
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}

		return gw, nil
	}

	return yamlfile.New(a.config.DatabaseFile), nil
}

func (a *App) newRouter(srv *router.Server) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	srv.Mount(r)

	return r
}

// Logger hands every request a logger tagged with its request ID.
func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := a.sugarLogger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(router.WithLogger(r.Context(), logger)))
	})
}
