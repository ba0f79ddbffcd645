package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/rocketscienceinc/boardgame-backend/internal/metrics"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository"
)

// ScoringPolicy configures the points committed when a session reaches a
// terminal state. The winner receives WinPoints, the loser nothing; on a
// draw both players receive DrawPoints.
type ScoringPolicy struct {
	WinPoints  int64
	DrawPoints int64
}

// SessionService owns game sessions: creation, lookup and the turn engine.
type SessionService interface {
	CreateSession(ctx context.Context, player1ID, player2ID int64) (*entity.Session, error)
	GetSession(ctx context.Context, id int64) (*entity.Session, error)
	SubmitMove(ctx context.Context, sessionID, actingPlayerID int64, move game.Move) (*entity.Session, error)
}

type sessionService struct {
	logger        *slog.Logger
	players       repository.PlayerRepository
	sessions      repository.SessionRepository
	variant       game.Variant
	scoring       ScoringPolicy
	metrics       *metrics.Metrics
	storeTimeout  time.Duration
	retryAttempts int
}

func NewSessionService(
	logger *slog.Logger,
	players repository.PlayerRepository,
	sessions repository.SessionRepository,
	variant game.Variant,
	scoring ScoringPolicy,
	m *metrics.Metrics,
	storeTimeout time.Duration,
	retryAttempts int,
) SessionService {
	if retryAttempts < 1 {
		retryAttempts = 1
	}

	return &sessionService{
		logger:        logger.With("component", "session_service"),
		players:       players,
		sessions:      sessions,
		variant:       variant,
		scoring:       scoring,
		metrics:       m,
		storeTimeout:  storeTimeout,
		retryAttempts: retryAttempts,
	}
}

func (that *sessionService) CreateSession(ctx context.Context, player1ID, player2ID int64) (*entity.Session, error) {
	if player1ID == player2ID {
		return nil, fmt.Errorf("%w: a session needs two distinct players", apperror.ErrInvalidPlayer)
	}

	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	for _, playerID := range []int64{player1ID, player2ID} {
		if _, err := that.players.GetByID(ctx, playerID); err != nil {
			if errors.Is(err, apperror.ErrPlayerNotFound) {
				return nil, fmt.Errorf("%w: id %d", apperror.ErrInvalidPlayer, playerID)
			}
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	board, err := that.variant.Encode(that.variant.InitialBoard())
	if err != nil {
		return nil, fmt.Errorf("failed to encode starting board: %w", err)
	}

	session := &entity.Session{
		Player1ID: player1ID,
		Player2ID: player2ID,
		Turn:      player1ID,
		Board:     board,
		Status:    entity.StatusInProgress,
	}

	if err = that.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.metrics.SessionsCreated.Inc()
	that.logger.Info("session created", "session_id", session.ID,
		"player_1_id", player1ID, "player_2_id", player2ID)

	return session, nil
}

func (that *sessionService) GetSession(ctx context.Context, id int64) (*entity.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = that.deriveStatus(session); err != nil {
		return nil, err
	}

	return session, nil
}

// SubmitMove validates and applies one move. Board, flipped turn and any
// terminal score awards persist as a single atomic update; a lost
// optimistic-concurrency race is retried against fresh state, where a
// now-stale mover fails with ErrNotYourTurn.
func (that *sessionService) SubmitMove(ctx context.Context, sessionID, actingPlayerID int64, move game.Move) (*entity.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, that.storeTimeout)
	defer cancel()

	for attempt := 0; attempt < that.retryAttempts; attempt++ {
		session, err := that.applyMove(ctx, sessionID, actingPlayerID, move)
		if errors.Is(err, apperror.ErrVersionConflict) {
			that.metrics.MovesTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			that.logger.Debug("move lost concurrency race, retrying",
				"session_id", sessionID, "player_id", actingPlayerID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			that.metrics.MovesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			return nil, err
		}

		that.metrics.MovesTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()

		return session, nil
	}

	return nil, fmt.Errorf("%w: session %d: too many conflicting writes", apperror.ErrStoreUnavailable, sessionID)
}

func (that *sessionService) applyMove(ctx context.Context, sessionID, actingPlayerID int64, move game.Move) (*entity.Session, error) {
	session, err := that.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = that.deriveStatus(session); err != nil {
		return nil, err
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("%w: session %d is %s", apperror.ErrSessionTerminated, session.ID, session.Status)
	}

	seat, ok := session.SeatOf(actingPlayerID)
	if !ok {
		return nil, fmt.Errorf("%w: player %d is not part of session %d", apperror.ErrInvalidPlayer, actingPlayerID, session.ID)
	}
	if session.Turn != actingPlayerID {
		return nil, fmt.Errorf("%w: session %d", apperror.ErrNotYourTurn, session.ID)
	}

	board, err := that.variant.Decode(session.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}

	nextBoard, err := that.variant.ValidateMove(board, seat, move)
	if err != nil {
		return nil, err
	}

	code, err := that.variant.Encode(nextBoard)
	if err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}

	// Terminal detection runs exactly once per accepted move, on the
	// post-move board, before the turn flips.
	status := that.variant.TerminalStatus(nextBoard)

	session.Board = code
	session.Turn = session.Opponent(actingPlayerID)

	if err = that.sessions.ApplyTurn(ctx, session, that.awards(session, status)); err != nil {
		return nil, err
	}
	session.Status = status

	if session.IsTerminal() {
		that.logger.Info("session finished", "session_id", session.ID, "status", session.Status)
	}

	return session, nil
}

// awards computes the score increments committed together with a terminal
// move. An in-progress move awards nothing.
func (that *sessionService) awards(session *entity.Session, status entity.Status) map[int64]int64 {
	if seat, ok := status.WinnerSeat(); ok {
		if that.scoring.WinPoints == 0 {
			return nil
		}
		return map[int64]int64{session.PlayerForSeat(seat): that.scoring.WinPoints}
	}

	if status == entity.StatusDraw && that.scoring.DrawPoints != 0 {
		return map[int64]int64{
			session.Player1ID: that.scoring.DrawPoints,
			session.Player2ID: that.scoring.DrawPoints,
		}
	}

	return nil
}

// deriveStatus recomputes the session's status from the persisted board.
// Status is never stored; the decoded board is the source of truth.
func (that *sessionService) deriveStatus(session *entity.Session) error {
	board, err := that.variant.Decode(session.Board)
	if err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	session.Status = that.variant.TerminalStatus(board)

	return nil
}
