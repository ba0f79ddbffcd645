package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SeatOf(t *testing.T) {
	// Given: a session between players 1 and 2
	session := &Session{ID: 10, Player1ID: 1, Player2ID: 2}

	// When/Then: each player maps to its seat
	seat, ok := session.SeatOf(1)
	require.True(t, ok)
	assert.Equal(t, SeatPlayer1, seat)

	seat, ok = session.SeatOf(2)
	require.True(t, ok)
	assert.Equal(t, SeatPlayer2, seat)

	// Then: a stranger has no seat
	_, ok = session.SeatOf(99)
	assert.False(t, ok)
}

func TestSession_Opponent(t *testing.T) {
	session := &Session{Player1ID: 7, Player2ID: 8}

	assert.Equal(t, int64(8), session.Opponent(7))
	assert.Equal(t, int64(7), session.Opponent(8))
}

func TestSession_IsTerminal(t *testing.T) {
	session := &Session{Status: StatusInProgress}
	assert.False(t, session.IsTerminal())

	session.Status = StatusDraw
	assert.True(t, session.IsTerminal())

	session.Status = StatusWonByPlayer2
	assert.True(t, session.IsTerminal())
}

func TestStatus_WinnerSeat(t *testing.T) {
	seat, ok := StatusWonByPlayer1.WinnerSeat()
	require.True(t, ok)
	assert.Equal(t, SeatPlayer1, seat)

	seat, ok = StatusWonByPlayer2.WinnerSeat()
	require.True(t, ok)
	assert.Equal(t, SeatPlayer2, seat)

	_, ok = StatusDraw.WinnerSeat()
	assert.False(t, ok)

	_, ok = StatusInProgress.WinnerSeat()
	assert.False(t, ok)
}
