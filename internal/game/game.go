// Package game defines the pluggable rules capability the session store is
// built against. A variant supplies two things: a codec between its in-memory
// board and the single integer persisted in the games table, and a validator
// that judges moves and detects terminal positions. The store never looks
// inside either.
package game

import (
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// Board is a variant-specific in-memory board representation. Only the
// variant that produced it may inspect it.
type Board any

// Move is a position index in the variant's move space, e.g. a cell index on
// a grid board.
type Move int

// Codec maps between a board representation and its persisted integer code.
// Decode(Encode(b)) == b must hold for every reachable board b.
type Codec interface {
	Encode(board Board) (int64, error)
	Decode(code int64) (Board, error)
}

// Validator judges move legality and detects terminal positions. Both
// methods must be pure functions of their inputs.
type Validator interface {
	// ValidateMove returns the post-move board, or an
	// *apperror.IllegalMoveError explaining the rejection.
	ValidateMove(board Board, mover entity.Seat, move Move) (Board, error)

	// TerminalStatus reports whether the board is won, drawn or still open.
	TerminalStatus(board Board) entity.Status
}

// Variant is a complete playable game. Concrete variants are selected by
// name through the application configuration.
type Variant interface {
	Codec
	Validator

	Name() string
	InitialBoard() Board
}
