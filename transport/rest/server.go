// Package rest is the JSON/HTTP front end. It only translates requests into
// core service calls; the player id it passes along is assumed to be
// verified by the authentication layer in front of it.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	players  playerService
	sessions sessionService
	metrics  http.Handler
}

func New(logger *slog.Logger, players playerService, sessions sessionService, metrics http.Handler) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		players:  players,
		sessions: sessions,
		metrics:  metrics,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.withRequestLog(that.Routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func (that *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.Handle("GET /metrics", that.metrics)

	mux.HandleFunc("POST /register_player", that.registerPlayerHandler)
	mux.HandleFunc("GET /highscore/{limit}", that.highscoreHandler)

	mux.HandleFunc("POST /create_game", that.createGameHandler)
	mux.HandleFunc("GET /game/{id}", that.gameStateHandler)
	mux.HandleFunc("POST /game/{id}/turn", that.makeTurnHandler)

	return mux
}
