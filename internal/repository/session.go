package repository

import (
	"context"

	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// SessionRepository persists game sessions. Session rows are never deleted;
// archival is an external concern.
type SessionRepository interface {
	// Create stores a new session and assigns its id.
	Create(ctx context.Context, session *entity.Session) error

	// GetByID fails with apperror.ErrSessionNotFound when absent.
	GetByID(ctx context.Context, id int64) (*entity.Session, error)

	// ApplyTurn persists the session's board and turn, together with the
	// given score awards (player id -> points), as one atomic update. The
	// write is guarded by a compare-and-set on session.Version: a racing
	// writer fails with apperror.ErrVersionConflict and nothing is changed.
	// On success the session's version is advanced in place.
	ApplyTurn(ctx context.Context, session *entity.Session, awards map[int64]int64) error
}
