package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
)

// Game implements the game.Variant capability for TicTacToe.
type Game struct{}

var _ game.Variant = (*Game)(nil)

func New() *Game {
	return &Game{}
}

func (that *Game) Name() string {
	return VariantName
}

// InitialBoard returns the canonical empty starting board.
func (that *Game) InitialBoard() game.Board {
	return Board{}
}

// ValidateMove checks that the mover may mark the given cell and returns the
// resulting board. The input board is never mutated.
func (that *Game) ValidateMove(board game.Board, mover entity.Seat, move game.Move) (game.Board, error) {
	grid, err := that.grid(board)
	if err != nil {
		return nil, err
	}

	cell := int(move)
	if cell < 0 || cell >= Cells {
		return nil, &apperror.IllegalMoveError{Reason: fmt.Sprintf("cell %d is out of range", cell)}
	}

	if grid[cell] != CellEmpty {
		return nil, &apperror.IllegalMoveError{Reason: fmt.Sprintf("cell %d is already occupied", cell)}
	}

	grid[cell] = cellForSeat(mover)

	return grid, nil
}

// TerminalStatus reports the status of a position: won, drawn on a full
// board, or still in progress.
func (that *Game) TerminalStatus(board game.Board) entity.Status {
	grid, err := that.grid(board)
	if err != nil {
		return entity.StatusInProgress
	}

	switch grid.winner() {
	case CellPlayer1:
		return entity.WonBy(entity.SeatPlayer1)
	case CellPlayer2:
		return entity.WonBy(entity.SeatPlayer2)
	}

	if grid.IsFull() {
		return entity.StatusDraw
	}

	return entity.StatusInProgress
}
