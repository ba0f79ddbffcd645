package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
)

// The persisted code is an 18 bit integer made of two 9 bit masks, one per
// player, player 1 in the low bits:
//
//	bits:  8 7 6 5 4 3 2 1 0 | 8 7 6 5 4 3 2 1 0
//	       |---------------|   |---------------|
//	         player 2 mask       player 1 mask
//
// A set bit marks the corresponding field. The masks must never overlap.
const (
	maskBits = Cells
	maskAll  = 1<<maskBits - 1
	maxCode  = 1<<(2*maskBits) - 1
)

// Encode packs a board into its persisted integer code.
func (that *Game) Encode(board game.Board) (int64, error) {
	grid, err := that.grid(board)
	if err != nil {
		return 0, err
	}

	var code int64
	for pos, cell := range grid {
		switch cell {
		case CellPlayer1:
			code |= 1 << pos
		case CellPlayer2:
			code |= 1 << (pos + maskBits)
		case CellEmpty:
		}
	}

	return code, nil
}

// Decode unpacks a persisted integer code into a board. It fails with
// apperror.ErrCodec when the code is outside the valid range or the two
// player masks claim the same field.
func (that *Game) Decode(code int64) (game.Board, error) {
	if code < 0 || code > maxCode {
		return nil, fmt.Errorf("%w: code %d out of range", apperror.ErrCodec, code)
	}

	p1 := code & maskAll
	p2 := (code >> maskBits) & maskAll
	if p1&p2 != 0 {
		return nil, fmt.Errorf("%w: code %d marks a field for both players", apperror.ErrCodec, code)
	}

	var grid Board
	for pos := 0; pos < Cells; pos++ {
		switch {
		case (p1>>pos)&1 == 1:
			grid[pos] = CellPlayer1
		case (p2>>pos)&1 == 1:
			grid[pos] = CellPlayer2
		}
	}

	return grid, nil
}

// grid narrows the opaque capability board back to this variant's type.
func (that *Game) grid(board game.Board) (Board, error) {
	grid, ok := board.(Board)
	if !ok {
		return Board{}, fmt.Errorf("%w: board is not a %s board", apperror.ErrCodec, VariantName)
	}
	return grid, nil
}
