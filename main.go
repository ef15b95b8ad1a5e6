//
// The Scoop
// =========
// A small content-sharing backend: users post articles, comment on them and
// vote on both. State lives in memory and can be snapshotted to a YAML file
// or a sqlite database after every change.
//
// Pass -routes to print the route docs instead of serving.
//
// Boot the server:
// ----------------
// $ go run . -store_driver yaml
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice"}' http://localhost:4000/users
// {"user":{"username":"alice","articleIds":[],"commentIds":[]}}
//
// $ curl -X POST -d '{"article":{"title":"Hi","url":"https://example.com","username":"alice"}}' http://localhost:4000/articles
// {"article":{"id":1,"title":"Hi","url":"https://example.com","username":"alice","commentIds":[],"upvotedBy":[],"downvotedBy":[]}}
//
// $ curl -X PUT -d '{"username":"alice"}' http://localhost:4000/articles/1/upvote
// {"article":{"id":1,...,"upvotedBy":["alice"],"downvotedBy":[]}}
//
// $ curl -X DELETE http://localhost:4000/articles/1
//
// $ curl http://localhost:9999/ping
// pong
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tina-pina/the-scoop/internal/config"
	"github.com/tina-pina/the-scoop/internal/metrics"
	"github.com/tina-pina/the-scoop/internal/persist"
	"github.com/tina-pina/the-scoop/internal/router"
	"github.com/tina-pina/the-scoop/internal/server"
	"github.com/tina-pina/the-scoop/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) (err error) {
	lvl, _ := cfg.Level()
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar().With("service", config.ServiceName)

	m, err := metrics.New(config.ServiceName)
	if err != nil {
		return err
	}
	global.SetMeterProvider(m.MeterProvider())

	rt, backend, err := newRouter(cfg, sugar)
	if err != nil {
		return err
	}
	if backend != nil {
		defer func() {
			err = multierr.Append(err, backend.Close())
		}()
	}

	srv := server.New(rt, sugar, m)

	if cfg.Routes {
		// nolint
		fmt.Println(srv.RoutesDoc())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, sugar,
		&http.Server{Addr: cfg.Addr, Handler: srv.Routes()},
		&http.Server{Addr: cfg.DiagAddr, Handler: server.DiagRoutes(m)},
	)
}

// newRouter restores the last snapshot, if any, and saves a new one after
// every change. Test mode skips both.
func newRouter(cfg config.Config, log *zap.SugaredLogger) (*router.Router, persist.Backend, error) {
	if cfg.TestMode {
		log.Infow("test mode, persistence disabled")

		return router.New(store.New()), nil, nil
	}

	backend, err := persist.Open(cfg.Persistence.Driver, cfg.Persistence.Path)
	if err != nil {
		return nil, nil, err
	}
	if backend == nil {
		return router.New(store.New()), nil, nil
	}

	s := store.New()
	snap, err := backend.Load(context.Background())
	if err != nil {
		return nil, nil, multierr.Append(fmt.Errorf("load snapshot: %w", err), backend.Close())
	}
	if snap != nil {
		s.Restore(*snap)
		log.Infow("snapshot restored",
			"driver", cfg.Persistence.Driver,
			"path", cfg.Persistence.Path,
			"users", len(snap.Users),
			"articles", len(snap.Articles),
			"comments", len(snap.Comments),
		)
	}

	commit := func(snap store.Snapshot) {
		if err := backend.Save(context.Background(), snap); err != nil {
			log.Errorw("saving snapshot", "driver", cfg.Persistence.Driver, "error", err)
		}
	}

	return router.New(s, router.WithCommitHook(commit)), backend, nil
}

func serve(ctx context.Context, log *zap.SugaredLogger, servers ...*http.Server) error {
	errc := make(chan error, len(servers))
	for _, s := range servers {
		s := s
		go func() {
			log.Infow("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("serve %s: %w", s.Addr, err)

				return
			}
			errc <- nil
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err = <-errc:
		log.Errorw("server stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		err = multierr.Append(err, s.Shutdown(shutdownCtx))
	}

	return err
}
