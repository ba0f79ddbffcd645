package entity

type Seat string

const (
	SeatPlayer1 Seat = "player_1"
	SeatPlayer2 Seat = "player_2"
)

type Status string

const (
	StatusInProgress   Status = "in_progress"
	StatusWonByPlayer1 Status = "won_by_player_1"
	StatusWonByPlayer2 Status = "won_by_player_2"
	StatusDraw         Status = "draw"
)

// Session is a row in the games table. Turn holds the id of the player whose
// move is next. Board is the encoded state owned by the variant codec.
// Version backs optimistic concurrency and is never exposed to callers.
// Status is derived from Board by the rules validator on every load; it is
// not a stored column.
type Session struct {
	ID        int64  `json:"id"`
	Player1ID int64  `json:"player_1_id"`
	Player2ID int64  `json:"player_2_id"`
	Turn      int64  `json:"turn"`
	Board     int64  `json:"board"`
	Version   int64  `json:"version"`
	Status    Status `json:"status,omitempty"`
}

// SeatOf returns the seat the given player occupies in this session.
func (that *Session) SeatOf(playerID int64) (Seat, bool) {
	switch playerID {
	case that.Player1ID:
		return SeatPlayer1, true
	case that.Player2ID:
		return SeatPlayer2, true
	default:
		return "", false
	}
}

// PlayerForSeat returns the player id occupying the given seat.
func (that *Session) PlayerForSeat(seat Seat) int64 {
	if seat == SeatPlayer2 {
		return that.Player2ID
	}
	return that.Player1ID
}

// Opponent returns the other player's id.
func (that *Session) Opponent(playerID int64) int64 {
	if playerID == that.Player1ID {
		return that.Player2ID
	}
	return that.Player1ID
}

func (that *Session) IsTerminal() bool {
	return that.Status != "" && that.Status != StatusInProgress
}

// WonBy maps a winning seat to the corresponding terminal status.
func WonBy(seat Seat) Status {
	if seat == SeatPlayer2 {
		return StatusWonByPlayer2
	}
	return StatusWonByPlayer1
}

// WinnerSeat returns the winning seat for a terminal status, or false for
// in-progress and drawn sessions.
func (s Status) WinnerSeat() (Seat, bool) {
	switch s {
	case StatusWonByPlayer1:
		return SeatPlayer1, true
	case StatusWonByPlayer2:
		return SeatPlayer2, true
	default:
		return "", false
	}
}
