package repository

import "strconv"

const (
	playerNextIDKey  = "players:next_id"
	sessionNextIDKey = "sessions:next_id"
	highscoreKey     = "players:by_score"
)

func playerKey(id int64) string {
	return "player:" + strconv.FormatInt(id, 10)
}

func playerNameKey(name string) string {
	return "player:name:" + name
}

func sessionKey(id int64) string {
	return "session:" + strconv.FormatInt(id, 10)
}
