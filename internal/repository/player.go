package repository

import (
	"context"

	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// PlayerRepository persists the player directory.
type PlayerRepository interface {
	// Create stores a new player and assigns its id. Fails with
	// apperror.ErrNameTaken when the name is already registered.
	Create(ctx context.Context, player *entity.Player) error

	// GetByID fails with apperror.ErrPlayerNotFound when absent.
	GetByID(ctx context.Context, id int64) (*entity.Player, error)

	// GetByName fails with apperror.ErrPlayerNotFound when absent.
	GetByName(ctx context.Context, name string) (*entity.Player, error)

	// Highscore returns up to limit players ordered by descending score.
	Highscore(ctx context.Context, limit int) ([]*entity.Player, error)
}
