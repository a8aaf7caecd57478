package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jordan-pw/minesweeper/internal/config"
	"github.com/jordan-pw/minesweeper/internal/middleware"
	"github.com/jordan-pw/minesweeper/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg     config.Config
	logger  *logrus.Logger
	router  *http.ServeMux
	store   *session.Store
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
}

func New(cfg config.Config, logger *logrus.Logger) (*App, error) {
	j, err := config.NewJWT(cfg.Jwt)
	if err != nil {
		return nil, err
	}
	if cfg.Jwt.Secret == "" {
		logger.Warn("no jwt secret configured, session tokens will not survive a restart")
	}

	cookies, err := config.NewCookies(cfg.Cookies, cfg.Jwt.TokenLifetime.Duration)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		logger:  logger,
		router:  http.NewServeMux(),
		store:   session.NewStore(newPlacerFactory(cfg.Game.Seed)),
		jwt:     j,
		cookies: cookies,
		ws:      config.NewWebSocket(cfg.Cors.AllowedOrigins),
	}

	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(a.cfg.Cors.AllowedOrigins),
		middleware.Logging(a.logger),
	)
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("addr", a.cfg.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.store.RunSweeper(
			ctx,
			a.cfg.Session.SweepInterval.Duration,
			a.cfg.Session.IdleTimeout.Duration,
			a.logger,
		)
	})

	return g.Wait()
}
