package app

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/database"
	"github.com/vancomm/minesweeper-hint/internal/middleware"
	"github.com/vancomm/minesweeper-hint/internal/ratelimit"
)

type App struct {
	log        logrus.FieldLogger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	ws         *config.WebSocket
	limiter    ratelimit.Limiter
	migrations fs.FS
}

func New(log logrus.FieldLogger, migrations fs.FS) *App {
	return &App{
		log:        log,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) setup(ctx context.Context) (cleanup func(), err error) {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		db.Close()
		return nil, err
	}
	cookies, err := config.NewCookies(jwt)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.cookies = cookies
	a.ws = config.NewWebSocket()

	limiter, closeLimiter := ratelimit.FromConfig(ctx, config.NewRedis(), config.NewHints())
	a.limiter = limiter

	a.loadRoutes()

	return func() {
		if err := closeLimiter(); err != nil {
			a.log.WithError(err).Warn("unable to close redis client")
		}
		db.Close()
	}, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.cookies),
		middleware.Logging(a.log),
		middleware.Cors(),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	cleanup, err := a.setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:    config.Addr(),
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", config.Addr())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
