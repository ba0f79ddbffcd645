package entity

// Player is a row in the players table. Hash is an opaque reference to the
// player's authentication material; the core never compares it.
type Player struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Hash  string `json:"hash,omitempty"`
}
