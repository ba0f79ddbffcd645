package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
)

// pwHashPattern matches the opaque credential hash format stored in the
// players table; the core never interprets it beyond this shape check.
var pwHashPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

type playerService interface {
	RegisterPlayer(ctx context.Context, name, hash string) (*entity.Player, error)
	Highscore(ctx context.Context, limit int) ([]*entity.Player, error)
}

type sessionService interface {
	CreateSession(ctx context.Context, player1ID, player2ID int64) (*entity.Session, error)
	GetSession(ctx context.Context, id int64) (*entity.Session, error)
	SubmitMove(ctx context.Context, sessionID, actingPlayerID int64, move game.Move) (*entity.Session, error)
}

type registerPlayerRequest struct {
	Name   string `json:"name"`
	PwHash string `json:"pw_hash"`
}

type createGameRequest struct {
	Player1ID int64 `json:"player_1_id"`
	Player2ID int64 `json:"player_2_id"`
}

type makeTurnRequest struct {
	PlayerID int64 `json:"player_id"`
	Cell     int   `json:"cell"`
}

type sessionResponse struct {
	Status     string        `json:"status"`
	GameID     int64         `json:"game_id"`
	Turn       int64         `json:"turn"`
	Board      int64         `json:"board"`
	GameStatus entity.Status `json:"game_status"`
}

type scoreEntry struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Server) registerPlayerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if !pwHashPattern.MatchString(req.PwHash) {
		that.writeError(w, http.StatusBadRequest, "invalid pw hash")
		return
	}

	player, err := that.players.RegisterPlayer(r.Context(), req.Name, req.PwHash)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"player_id": player.ID,
		"name":      player.Name,
		"score":     player.Score,
	})
}

func (that *Server) highscoreHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.PathValue("limit"))
	if err != nil || limit < 0 {
		that.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	players, err := that.players.Highscore(r.Context(), limit)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	scores := make([]scoreEntry, 0, len(players))
	for _, player := range players {
		scores = append(scores, scoreEntry{Name: player.Name, Score: player.Score})
	}

	that.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"scores": scores,
	})
}

func (that *Server) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	session, err := that.sessions.CreateSession(r.Context(), req.Player1ID, req.Player2ID)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	that.writeSession(w, session)
}

func (that *Server) gameStateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	session, err := that.sessions.GetSession(r.Context(), id)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	that.writeSession(w, session)
}

func (that *Server) makeTurnHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req makeTurnRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	session, err := that.sessions.SubmitMove(r.Context(), id, req.PlayerID, game.Move(req.Cell))
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	that.writeSession(w, session)
}

func (that *Server) writeSession(w http.ResponseWriter, session *entity.Session) {
	that.writeJSON(w, http.StatusOK, sessionResponse{
		Status:     "ok",
		GameID:     session.ID,
		Turn:       session.Turn,
		Board:      session.Board,
		GameStatus: session.Status,
	})
}

func (that *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrSessionNotFound):
		that.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrStoreUnavailable):
		that.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, apperror.ErrInvalidPlayer),
		errors.Is(err, apperror.ErrNameTaken),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrSessionTerminated),
		errors.Is(err, apperror.ErrIllegalMove):
		that.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrCodec):
		// A stored board that no longer decodes is our fault, not the caller's.
		that.logger.Error("stored board failed to decode", "error", err)
		that.writeError(w, http.StatusInternalServerError, "internal error")
	default:
		that.logger.Error("request failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (that *Server) writeError(w http.ResponseWriter, code int, why string) {
	that.writeJSON(w, code, map[string]any{
		"status": "error",
		"why":    why,
	})
}

func (that *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
