package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/boardgame-backend/internal/config"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/rocketscienceinc/boardgame-backend/internal/metrics"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository/storage"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/boardgame-backend/internal/service"
	"github.com/rocketscienceinc/boardgame-backend/internal/tictactoe"
	"github.com/rocketscienceinc/boardgame-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	variant, err := buildVariant(conf.Game.Variant)
	if err != nil {
		return err
	}

	playerRepo, sessionRepo, closeStorage, err := buildRepositories(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	m := metrics.New()
	scoring := service.ScoringPolicy{
		WinPoints:  conf.Scoring.WinPoints,
		DrawPoints: conf.Scoring.DrawPoints,
	}

	playerService := service.NewPlayerService(logger, playerRepo, conf.Storage.Timeout)
	sessionService := service.NewSessionService(logger, playerRepo, sessionRepo,
		variant, scoring, m, conf.Storage.Timeout, conf.Storage.RetryAttempts)

	log.Info("Starting HTTP server", "port", conf.HTTPPort,
		"variant", variant.Name(), "backend", conf.Storage.Backend)

	server := rest.New(logger, playerService, sessionService, m.Handler())
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func buildVariant(name string) (game.Variant, error) {
	switch name {
	case tictactoe.VariantName:
		return tictactoe.New(), nil
	default:
		return nil, fmt.Errorf("unknown game variant: %q", name)
	}
}

func buildRepositories(ctx context.Context, conf *config.Config) (repository.PlayerRepository, repository.SessionRepository, func() error, error) {
	switch conf.Storage.Backend {
	case config.BackendSQLite:
		st, err := sqlite.New(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}
		return repository.NewSQLitePlayerRepository(st.Connection),
			repository.NewSQLiteSessionRepository(st.Connection),
			st.Close, nil

	case config.BackendRedis:
		st, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}
		return repository.NewRedisPlayerRepository(st.Connection),
			repository.NewRedisSessionRepository(st.Connection),
			st.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend: %q", conf.Storage.Backend)
	}
}
