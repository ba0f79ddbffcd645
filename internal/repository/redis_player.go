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

type redisPlayerRepo struct {
	client *redis.Client
}

func NewRedisPlayerRepository(client *redis.Client) PlayerRepository {
	return &redisPlayerRepo{client: client}
}

func (that *redisPlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	id, err := that.client.Incr(ctx, playerNextIDKey).Result()
	if err != nil {
		return wrapStoreErr("allocate player id", err)
	}

	// The name index doubles as the uniqueness guard: only the first SETNX
	// wins, concurrent registrations of the same name lose here.
	ok, err := that.client.SetNX(ctx, playerNameKey(player.Name), id, 0).Result()
	if err != nil {
		return wrapStoreErr("reserve player name", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrNameTaken, player.Name)
	}

	player.ID = id

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerKey(id), playerJSON, 0)
		pipe.ZAdd(ctx, highscoreKey, redis.Z{Score: float64(player.Score), Member: id})
		return nil
	})
	if err != nil {
		return wrapStoreErr("create player", err)
	}

	return nil
}

func (that *redisPlayerRepo) GetByID(ctx context.Context, id int64) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("get player", err)
	}

	var player entity.Player
	if err = json.Unmarshal([]byte(response), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

func (that *redisPlayerRepo) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	id, err := that.client.Get(ctx, playerNameKey(name)).Int64()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}
	if err != nil {
		return nil, wrapStoreErr("get player by name", err)
	}

	return that.GetByID(ctx, id)
}

func (that *redisPlayerRepo) Highscore(ctx context.Context, limit int) ([]*entity.Player, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.ZRevRange(ctx, highscoreKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, wrapStoreErr("list highscore", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, "player:"+id)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, wrapStoreErr("list highscore", err)
	}

	players := make([]*entity.Player, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var player entity.Player
		if err = json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player: %w", err)
		}
		players = append(players, &player)
	}

	return players, nil
}
