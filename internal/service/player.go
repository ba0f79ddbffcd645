package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository"
)

// MaxNameLength bounds player display names, matching the players.name
// column width.
const MaxNameLength = 16

// PlayerService is the player directory: registration, lookups and the
// highscore list. Credential hashes pass through it opaquely.
type PlayerService interface {
	RegisterPlayer(ctx context.Context, name, hash string) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id int64) (*entity.Player, error)
	Highscore(ctx context.Context, limit int) ([]*entity.Player, error)
}

type playerService struct {
	logger       *slog.Logger
	players      repository.PlayerRepository
	storeTimeout time.Duration
}

func NewPlayerService(logger *slog.Logger, players repository.PlayerRepository, storeTimeout time.Duration) PlayerService {
	return &playerService{
		logger:       logger.With("component", "player_service"),
		players:      players,
		storeTimeout: storeTimeout,
	}
}

func (that *playerService) RegisterPlayer(ctx context.Context, name, hash string) (*entity.Player, error) {
	if name == "" || len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", apperror.ErrInvalidPlayer, MaxNameLength)
	}
	if hash == "" {
		return nil, fmt.Errorf("%w: missing credential hash", apperror.ErrInvalidPlayer)
	}

	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	player := &entity.Player{Name: name, Hash: hash}
	if err := that.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	that.logger.Info("player registered", "player_id", player.ID, "name", player.Name)

	return player, nil
}

func (that *playerService) GetPlayerByID(ctx context.Context, id int64) (*entity.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	player, err := that.players.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *playerService) Highscore(ctx context.Context, limit int) ([]*entity.Player, error) {
	if limit <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	players, err := that.players.Highscore(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get highscore: %w", err)
	}

	return players, nil
}
