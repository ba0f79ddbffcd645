package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_ValidateMove(t *testing.T) {
	variant := New()

	t.Run("ValidMove", func(t *testing.T) {
		// Given: an empty board
		board := variant.InitialBoard()

		// When: player 1 marks cell 4
		next, err := variant.ValidateMove(board, entity.SeatPlayer1, 4)
		require.NoError(t, err)

		// Then: the returned board carries the mark, the input is untouched
		assert.Equal(t, CellPlayer1, next.(Board)[4])
		assert.Equal(t, Board{}, board)
	})

	t.Run("CellOutOfRange", func(t *testing.T) {
		board := variant.InitialBoard()

		_, err := variant.ValidateMove(board, entity.SeatPlayer1, 9)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)

		_, err = variant.ValidateMove(board, entity.SeatPlayer1, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("CellOccupied", func(t *testing.T) {
		// Given: a board where player 1 already holds cell 0
		board := Board{CellPlayer1}

		// When: player 2 tries the same cell
		_, err := variant.ValidateMove(board, entity.SeatPlayer2, 0)

		// Then: the move is rejected with a reason
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)

		var illegal *apperror.IllegalMoveError
		require.ErrorAs(t, err, &illegal)
		assert.Contains(t, illegal.Reason, "occupied")
	})
}

func TestGame_TerminalStatus(t *testing.T) {
	variant := New()

	tests := []struct {
		name  string
		board Board
		want  entity.Status
	}{
		{
			name:  "EmptyBoard",
			board: Board{},
			want:  entity.StatusInProgress,
		},
		{
			name: "Player1WinsRow",
			board: Board{
				CellPlayer1, CellPlayer1, CellPlayer1,
				CellPlayer2, CellPlayer2, CellEmpty,
				CellEmpty, CellEmpty, CellEmpty,
			},
			want: entity.StatusWonByPlayer1,
		},
		{
			name: "Player2WinsColumn",
			board: Board{
				CellPlayer2, CellPlayer1, CellEmpty,
				CellPlayer2, CellPlayer1, CellEmpty,
				CellPlayer2, CellEmpty, CellPlayer1,
			},
			want: entity.StatusWonByPlayer2,
		},
		{
			name: "Player1WinsDiagonal",
			board: Board{
				CellPlayer1, CellPlayer2, CellEmpty,
				CellPlayer2, CellPlayer1, CellEmpty,
				CellEmpty, CellEmpty, CellPlayer1,
			},
			want: entity.StatusWonByPlayer1,
		},
		{
			name: "Draw",
			board: Board{
				CellPlayer1, CellPlayer2, CellPlayer1,
				CellPlayer1, CellPlayer2, CellPlayer2,
				CellPlayer2, CellPlayer1, CellPlayer1,
			},
			want: entity.StatusDraw,
		},
		{
			name: "StillOpen",
			board: Board{
				CellPlayer1, CellPlayer2, CellEmpty,
				CellEmpty, CellPlayer1, CellEmpty,
				CellEmpty, CellEmpty, CellEmpty,
			},
			want: entity.StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, variant.TerminalStatus(tt.board))
		})
	}
}

func TestGame_PlayThroughWin(t *testing.T) {
	variant := New()

	// Given: an alternating sequence that ends with player 1 taking the top row
	moves := []struct {
		seat entity.Seat
		cell game.Move
	}{
		{entity.SeatPlayer1, 0},
		{entity.SeatPlayer2, 3},
		{entity.SeatPlayer1, 1},
		{entity.SeatPlayer2, 4},
		{entity.SeatPlayer1, 2},
	}

	board := variant.InitialBoard()
	for _, m := range moves[:len(moves)-1] {
		next, err := variant.ValidateMove(board, m.seat, m.cell)
		require.NoError(t, err)
		require.Equal(t, entity.StatusInProgress, variant.TerminalStatus(next))
		board = next
	}

	// When: the final move lands
	last := moves[len(moves)-1]
	board, err := variant.ValidateMove(board, last.seat, last.cell)
	require.NoError(t, err)

	// Then: the position is won by player 1
	assert.Equal(t, entity.StatusWonByPlayer1, variant.TerminalStatus(board))
}
