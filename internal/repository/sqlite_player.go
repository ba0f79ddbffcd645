package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

type sqlitePlayerRepo struct {
	db *sql.DB
}

func NewSQLitePlayerRepository(db *sql.DB) PlayerRepository {
	return &sqlitePlayerRepo{db: db}
}

func (that *sqlitePlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	// Insert-if-absent keeps the name uniqueness check and the insert in one
	// statement, so two concurrent registrations can't both succeed.
	result, err := that.db.ExecContext(ctx,
		`INSERT INTO players (name, score, hash)
		 SELECT ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM players WHERE name = ?)`,
		player.Name, player.Score, player.Hash, player.Name,
	)
	if err != nil {
		return wrapStoreErr("create player", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrNameTaken, player.Name)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	player.ID = id

	return nil
}

func (that *sqlitePlayerRepo) GetByID(ctx context.Context, id int64) (*entity.Player, error) {
	return that.get(ctx,
		`SELECT id, name, score, hash FROM players WHERE id = ?`, id)
}

func (that *sqlitePlayerRepo) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	return that.get(ctx,
		`SELECT id, name, score, hash FROM players WHERE name = ?`, name)
}

func (that *sqlitePlayerRepo) get(ctx context.Context, query string, arg any) (*entity.Player, error) {
	var player entity.Player

	err := that.db.QueryRowContext(ctx, query, arg).
		Scan(&player.ID, &player.Name, &player.Score, &player.Hash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrPlayerNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("get player", err)
	}

	return &player, nil
}

func (that *sqlitePlayerRepo) Highscore(ctx context.Context, limit int) ([]*entity.Player, error) {
	rows, err := that.db.QueryContext(ctx,
		`SELECT id, name, score FROM players ORDER BY score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, wrapStoreErr("list highscore", err)
	}
	defer rows.Close()

	var players []*entity.Player
	for rows.Next() {
		var player entity.Player
		if err = rows.Scan(&player.ID, &player.Name, &player.Score); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("list highscore", err)
	}

	return players, nil
}
