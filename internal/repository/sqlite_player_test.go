package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStorage(t *testing.T) (context.Context, *sqlite.Storage) {
	t.Helper()

	ctx := context.Background()

	st, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = st.Close()
	})

	return ctx, st
}

func TestSQLitePlayerRepository_Create(t *testing.T) {
	ctx, st := newSQLiteStorage(t)

	playerRepo := NewSQLitePlayerRepository(st.Connection)

	// Given: a new player
	player := &entity.Player{Name: "alice", Hash: "deadbeef"}

	// When: the player is created
	err := playerRepo.Create(ctx, player)

	// Then: an id is assigned and the row is readable
	require.NoError(t, err)
	require.NotZero(t, player.ID)

	stored, err := playerRepo.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Name)
	assert.Equal(t, int64(0), stored.Score)
	assert.Equal(t, "deadbeef", stored.Hash)
}

func TestSQLitePlayerRepository_Create_NameTaken(t *testing.T) {
	ctx, st := newSQLiteStorage(t)

	playerRepo := NewSQLitePlayerRepository(st.Connection)

	// Given: an existing player named bob
	require.NoError(t, playerRepo.Create(ctx, &entity.Player{Name: "bob", Hash: "deadbeef"}))

	// When: another bob registers
	err := playerRepo.Create(ctx, &entity.Player{Name: "bob", Hash: "cafebabe"})

	// Then: the duplicate is rejected
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNameTaken)
}

func TestSQLitePlayerRepository_GetByName(t *testing.T) {
	ctx, st := newSQLiteStorage(t)

	playerRepo := NewSQLitePlayerRepository(st.Connection)

	require.NoError(t, playerRepo.Create(ctx, &entity.Player{Name: "carol", Hash: "deadbeef"}))

	player, err := playerRepo.GetByName(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol", player.Name)

	_, err = playerRepo.GetByName(ctx, "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
}

func TestSQLitePlayerRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := newSQLiteStorage(t)

	playerRepo := NewSQLitePlayerRepository(st.Connection)

	_, err := playerRepo.GetByID(ctx, 424242)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
}

func TestSQLitePlayerRepository_Highscore(t *testing.T) {
	ctx, st := newSQLiteStorage(t)

	playerRepo := NewSQLitePlayerRepository(st.Connection)
	sessionRepo := NewSQLiteSessionRepository(st.Connection)

	// Given: three players with different scores
	alice := &entity.Player{Name: "alice", Hash: "deadbeef"}
	bob := &entity.Player{Name: "bob", Hash: "deadbeef"}
	carol := &entity.Player{Name: "carol", Hash: "deadbeef"}
	for _, player := range []*entity.Player{alice, bob, carol} {
		require.NoError(t, playerRepo.Create(ctx, player))
	}

	session := &entity.Session{Player1ID: bob.ID, Player2ID: carol.ID, Turn: bob.ID}
	require.NoError(t, sessionRepo.Create(ctx, session))
	require.NoError(t, sessionRepo.ApplyTurn(ctx, session, map[int64]int64{bob.ID: 2, carol.ID: 1}))

	// When: the top two are requested
	players, err := playerRepo.Highscore(ctx, 2)

	// Then: the list is ordered by descending score and capped
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "bob", players[0].Name)
	assert.Equal(t, int64(2), players[0].Score)
	assert.Equal(t, "carol", players[1].Name)
	assert.Equal(t, int64(1), players[1].Score)
}
