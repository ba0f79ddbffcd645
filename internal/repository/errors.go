package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

// wrapStoreErr maps exhausted deadlines and cancellations onto the store
// unavailability sentinel, so callers see a bounded failure instead of a raw
// driver error.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", apperror.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
