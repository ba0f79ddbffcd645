package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

type sqliteSessionRepo struct {
	db *sql.DB
}

func NewSQLiteSessionRepository(db *sql.DB) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (that *sqliteSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	result, err := that.db.ExecContext(ctx,
		`INSERT INTO games (player_1_id, player_2_id, turn, board, version)
		 VALUES (?, ?, ?, ?, 0)`,
		session.Player1ID, session.Player2ID, session.Turn, session.Board,
	)
	if err != nil {
		return wrapStoreErr("create session", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = id
	session.Version = 0

	return nil
}

func (that *sqliteSessionRepo) GetByID(ctx context.Context, id int64) (*entity.Session, error) {
	var session entity.Session

	err := that.db.QueryRowContext(ctx,
		`SELECT id, player_1_id, player_2_id, turn, board, version
		 FROM games WHERE id = ?`, id).
		Scan(&session.ID, &session.Player1ID, &session.Player2ID,
			&session.Turn, &session.Board, &session.Version)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("get session", err)
	}

	return &session, nil
}

func (that *sqliteSessionRepo) ApplyTurn(ctx context.Context, session *entity.Session, awards map[int64]int64) error {
	tx, err := that.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreErr("begin turn transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Compare-and-set on the version column. A concurrent writer that got
	// there first leaves zero affected rows and nothing else runs.
	result, err := tx.ExecContext(ctx,
		`UPDATE games SET board = ?, turn = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		session.Board, session.Turn, session.ID, session.Version,
	)
	if err != nil {
		return wrapStoreErr("update session", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: session %d version %d", apperror.ErrVersionConflict, session.ID, session.Version)
	}

	for playerID, points := range awards {
		if points == 0 {
			continue
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE players SET score = score + ? WHERE id = ?`, points, playerID); err != nil {
			return wrapStoreErr("update score", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return wrapStoreErr("commit turn", err)
	}
	session.Version++

	return nil
}
