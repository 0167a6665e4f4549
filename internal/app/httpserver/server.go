package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// App wraps the HTTP server lifecycle.
type App struct {
	log    *slog.Logger
	server *http.Server
	port   int
}

func New(log *slog.Logger, handler http.Handler, port int, timeout, idleTimeout time.Duration) *App {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  idleTimeout,
	}

	return &App{
		log:    log,
		server: server,
		port:   port,
	}
}

// MustRun starts the server and panics on failure.
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run starts the server and blocks until it stops.
func (a *App) Run() error {
	const op = "httpserver.App.Run"

	a.log.Info("http server starting", slog.Int("port", a.port))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop shuts the server down gracefully, draining in-flight requests.
func (a *App) Stop(ctx context.Context) error {
	const op = "httpserver.App.Stop"

	a.log.Info("http server stopping", slog.Int("port", a.port))

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
