package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/sessions"
)

type App struct {
	logger      *slog.Logger
	router      *mux.Router
	sessions    *sessions.Registry
	sessionsCfg *config.Sessions
	jwt         *config.JWT
	ws          *config.WebSocket
	addr        string
}

// New reads the environment and builds the routes. Nothing listens until
// Start.
func New(logger *slog.Logger) (*App, error) {
	sessionsCfg, err := config.NewSessions()
	if err != nil {
		return nil, err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return nil, err
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	// a socket idle for longer than the ttl would outlive its session
	if ws.IdleLimit > sessionsCfg.TTL {
		ws.IdleLimit = sessionsCfg.TTL
	}

	registry := sessions.NewRegistry(logger, sessionsCfg.Limit, sessionsCfg.TTL)
	registry.OnChange(func(live int) {
		metrics.LiveSessions.Set(float64(live))
	})

	app := &App{
		logger:      logger,
		router:      mux.NewRouter(),
		sessions:    registry,
		sessionsCfg: sessionsCfg,
		jwt:         jwt,
		ws:          ws,
		addr:        config.Port(),
	}

	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.jwt),
		middleware.Cors(),
		middleware.Metrics(),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is done, sweeping idle sessions on the side.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.addr,
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 60,
		Handler:           a.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.sessions.Run(ctx, a.sessionsCfg.SweepInterval)
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(ctx)
	})

	return g.Wait()
}
