package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_EncodeDecode_RoundTrip(t *testing.T) {
	variant := New()

	// Given: every pair of non-overlapping player masks
	for p1 := int64(0); p1 <= maskAll; p1++ {
		for p2 := int64(0); p2 <= maskAll; p2++ {
			if p1&p2 != 0 {
				continue
			}

			code := p1 | p2<<maskBits

			// When: the code is decoded and re-encoded
			board, err := variant.Decode(code)
			require.NoError(t, err)

			encoded, err := variant.Encode(board)
			require.NoError(t, err)

			// Then: the round trip is lossless
			require.Equal(t, code, encoded)
		}
	}
}

func TestGame_Encode(t *testing.T) {
	variant := New()

	// Given: player 1 on cells 0 and 4, player 2 on cell 8
	board := Board{CellPlayer1, CellEmpty, CellEmpty, CellEmpty, CellPlayer1, CellEmpty, CellEmpty, CellEmpty, CellPlayer2}

	// When: the board is encoded
	code, err := variant.Encode(board)
	require.NoError(t, err)

	// Then: player 1 occupies the low mask, player 2 the high mask
	assert.Equal(t, int64(1|1<<4|1<<(8+maskBits)), code)
}

func TestGame_Encode_WrongBoardType(t *testing.T) {
	variant := New()

	_, err := variant.Encode("not a board")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrCodec)
}

func TestGame_Decode_Invalid(t *testing.T) {
	variant := New()

	t.Run("NegativeCode", func(t *testing.T) {
		_, err := variant.Decode(-1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrCodec)
	})

	t.Run("CodeAboveRange", func(t *testing.T) {
		_, err := variant.Decode(maxCode + 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrCodec)
	})

	t.Run("OverlappingMasks", func(t *testing.T) {
		// Given: both players claim cell 0
		code := int64(1 | 1<<maskBits)

		_, err := variant.Decode(code)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrCodec)
	})
}

func TestGame_Decode_EmptyBoard(t *testing.T) {
	variant := New()

	board, err := variant.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, Board{}, board)
	assert.Equal(t, variant.InitialBoard(), board)
}
