package apperror

import "errors"

var (
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNameTaken         = errors.New("player name already taken")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionTerminated = errors.New("session is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrIllegalMove       = errors.New("illegal move")
	ErrCodec             = errors.New("invalid board encoding")
	ErrStoreUnavailable  = errors.New("store unavailable")

	// ErrVersionConflict signals a lost optimistic-concurrency race inside the
	// store. It never crosses the service boundary: the losing writer retries
	// against fresh state.
	ErrVersionConflict = errors.New("session version conflict")
)

// IllegalMoveError carries the validator's rejection reason.
// It matches errors.Is(err, ErrIllegalMove).
type IllegalMoveError struct {
	Reason string
}

func (that *IllegalMoveError) Error() string {
	return "illegal move: " + that.Reason
}

func (that *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
