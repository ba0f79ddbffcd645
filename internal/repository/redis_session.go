package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

type redisSessionRepo struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepo{client: client}
}

func (that *redisSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	id, err := that.client.Incr(ctx, sessionNextIDKey).Result()
	if err != nil {
		return wrapStoreErr("allocate session id", err)
	}

	session.ID = id
	session.Version = 0

	sessionJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, sessionKey(id), sessionJSON, 0).Err(); err != nil {
		return wrapStoreErr("create session", err)
	}

	return nil
}

func (that *redisSessionRepo) GetByID(ctx context.Context, id int64) (*entity.Session, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("get session", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *redisSessionRepo) ApplyTurn(ctx context.Context, session *entity.Session, awards map[int64]int64) error {
	watchKeys := []string{sessionKey(session.ID)}
	for playerID, points := range awards {
		if points != 0 {
			watchKeys = append(watchKeys, playerKey(playerID))
		}
	}

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, sessionKey(session.ID)).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrSessionNotFound
		}
		if err != nil {
			return wrapStoreErr("get session", err)
		}

		var stored entity.Session
		if err = json.Unmarshal([]byte(raw), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if stored.Version != session.Version {
			return fmt.Errorf("%w: session %d version %d", apperror.ErrVersionConflict, session.ID, session.Version)
		}

		// Load awarded players under the watch, so a concurrent score write
		// aborts the transaction instead of being silently overwritten.
		updated := make(map[int64]*entity.Player, len(awards))
		for playerID, points := range awards {
			if points == 0 {
				continue
			}

			playerRaw, err := tx.Get(ctx, playerKey(playerID)).Result()
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: id %d", apperror.ErrPlayerNotFound, playerID)
			}
			if err != nil {
				return wrapStoreErr("get player", err)
			}

			var player entity.Player
			if err = json.Unmarshal([]byte(playerRaw), &player); err != nil {
				return fmt.Errorf("failed to unmarshal player: %w", err)
			}

			player.Score += points
			updated[playerID] = &player
		}

		next := *session
		next.Version++

		sessionJSON, err := marshalSession(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(session.ID), sessionJSON, 0)
			for playerID, player := range updated {
				playerJSON, err := json.Marshal(player)
				if err != nil {
					return fmt.Errorf("failed to marshal player: %w", err)
				}
				pipe.Set(ctx, playerKey(playerID), playerJSON, 0)
				pipe.ZAdd(ctx, highscoreKey, redis.Z{Score: float64(player.Score), Member: playerID})
			}
			return nil
		})
		return err
	}, watchKeys...)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: session %d", apperror.ErrVersionConflict, session.ID)
	}
	if err != nil {
		return err
	}

	session.Version++

	return nil
}

// marshalSession strips the derived status before persisting; status is
// recomputed from the board on every load and must not be stored.
func marshalSession(session *entity.Session) ([]byte, error) {
	stored := *session
	stored.Status = ""

	sessionJSON, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	return sessionJSON, nil
}
