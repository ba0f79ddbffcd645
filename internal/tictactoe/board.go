// Package tictactoe is the TicTacToe variant of the game capability: a
// 9-cell grid board, a bitboard codec for the persisted integer column and
// the classic win/draw rules.
package tictactoe

import "github.com/rocketscienceinc/boardgame-backend/internal/entity"

const VariantName = "tictactoe"

type Cell uint8

const (
	CellEmpty Cell = iota
	CellPlayer1
	CellPlayer2
)

// Cells is the number of fields on the board:
//
//	-------------
//	| 0 | 1 | 2 |
//	-------------
//	| 3 | 4 | 5 |
//	-------------
//	| 6 | 7 | 8 |
//	-------------
const Cells = 9

// Board is the in-memory representation the validator operates on.
type Board [Cells]Cell

var winCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func cellForSeat(seat entity.Seat) Cell {
	if seat == entity.SeatPlayer2 {
		return CellPlayer2
	}
	return CellPlayer1
}

// IsFull reports whether every field has been marked.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

// winner returns the cell mark holding a winning line, or CellEmpty.
func (that Board) winner() Cell {
	for _, combo := range winCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != CellEmpty && a == b && b == c {
			return a
		}
	}
	return CellEmpty
}
