package leveldb_test

import (
	"context"
	"testing"
	"time"

	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type fixture struct {
	ctx    context.Context
	db     *bun.DB
	repo   leveldb.Repository
	level  *leveldb.Level
	prize  *leveldb.Prize
	player string
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := testutils.NewSQLiteDB(t)

	players := playerdb.NewRepository(db)
	require.NoError(t, players.CreatePlayer(ctx, nil, &playerdb.Player{
		Username: "p1", Level: 1, ExperienceForLevelUp: 1000, RewardCount: 1,
	}))

	repo := leveldb.NewRepository(db)
	level := &leveldb.Level{Title: "Forest", OrderIndex: 1}
	require.NoError(t, repo.CreateLevel(ctx, nil, level))
	prize := &leveldb.Prize{Title: "Golden Disc"}
	require.NoError(t, repo.CreatePrize(ctx, nil, prize))

	return fixture{db: db, repo: repo, level: level, prize: prize, player: "p1", ctx: ctx}
}

func count(t *testing.T, db bun.IDB, model any) int {
	t.Helper()
	n, err := db.NewSelect().Model(model).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestListLevels_Ordered(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.repo.CreateLevel(f.ctx, nil, &leveldb.Level{Title: "Intro", OrderIndex: 0}))
	require.NoError(t, f.repo.CreateLevel(f.ctx, nil, &leveldb.Level{Title: "Summit", OrderIndex: 5}))

	levels, err := f.repo.ListLevels(f.ctx, nil)
	require.NoError(t, err)
	titles := make([]string, 0, len(levels))
	for _, l := range levels {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"Intro", "Forest", "Summit"}, titles)
}

func TestUpsertPlayerLevel(t *testing.T) {
	f := setup(t)

	pl := &leveldb.PlayerLevel{PlayerID: f.player, LevelID: f.level.ID, Score: 10}
	require.NoError(t, f.repo.UpsertPlayerLevel(f.ctx, nil, pl))

	got, err := f.repo.GetPlayerLevel(f.ctx, nil, f.player, f.level.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.Completed)
	require.NotNil(t, got.Level)
	assert.Equal(t, "Forest", got.Level.Title)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.repo.UpsertPlayerLevel(f.ctx, nil, &leveldb.PlayerLevel{
		PlayerID: f.player, LevelID: f.level.ID, Score: 80, IsCompleted: true, Completed: &day,
	}))

	got, err = f.repo.GetPlayerLevel(f.ctx, nil, f.player, f.level.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, 80, got.Score)
	require.NotNil(t, got.Completed)
	assert.True(t, day.Equal(*got.Completed), "got %v", got.Completed)
	assert.Equal(t, 1, count(t, f.db, (*leveldb.PlayerLevel)(nil)), "at most one row per player and level")

	_, err = f.repo.GetPlayerLevel(f.ctx, nil, f.player, 9999)
	assert.ErrorIs(t, err, leveldb.ErrNotFound)
}

func TestPlayerLevel_RequiresExistingPlayer(t *testing.T) {
	f := setup(t)
	err := f.repo.UpsertPlayerLevel(f.ctx, nil, &leveldb.PlayerLevel{PlayerID: "ghost", LevelID: f.level.ID})
	assert.Error(t, err)

	exists, err := f.repo.PlayerExists(f.ctx, nil, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.repo.PlayerExists(f.ctx, nil, f.player)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLevelPrizes(t *testing.T) {
	f := setup(t)
	received := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.repo.CreateLevelPrize(f.ctx, nil, &leveldb.LevelPrize{
		LevelID: f.level.ID, PrizeID: f.prize.ID, PlayerID: f.player, Received: received,
	}))

	prizes, err := f.repo.ListLevelPrizes(f.ctx, nil, f.player)
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	require.NotNil(t, prizes[0].Prize)
	assert.Equal(t, "Golden Disc", prizes[0].Prize.Title)
	assert.True(t, received.Equal(prizes[0].Received))
}

func TestCascades(t *testing.T) {
	seed := func(t *testing.T) fixture {
		f := setup(t)
		require.NoError(t, f.repo.UpsertPlayerLevel(f.ctx, nil, &leveldb.PlayerLevel{
			PlayerID: f.player, LevelID: f.level.ID, IsCompleted: true,
		}))
		require.NoError(t, f.repo.CreateLevelPrize(f.ctx, nil, &leveldb.LevelPrize{
			LevelID: f.level.ID, PrizeID: f.prize.ID, PlayerID: f.player, Received: time.Now().UTC(),
		}))
		return f
	}

	t.Run("deleting a player", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, playerdb.NewRepository(f.db).DeletePlayer(f.ctx, nil, f.player))
		assert.Zero(t, count(t, f.db, (*leveldb.PlayerLevel)(nil)))
		assert.Zero(t, count(t, f.db, (*leveldb.LevelPrize)(nil)))
		assert.Equal(t, 1, count(t, f.db, (*leveldb.Level)(nil)))
	})

	t.Run("deleting a level", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, f.repo.DeleteLevel(f.ctx, nil, f.level.ID))
		assert.Zero(t, count(t, f.db, (*leveldb.PlayerLevel)(nil)))
		assert.Zero(t, count(t, f.db, (*leveldb.LevelPrize)(nil)))
		assert.Equal(t, 1, count(t, f.db, (*leveldb.Prize)(nil)))
	})

	t.Run("deleting a prize", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, f.repo.DeletePrize(f.ctx, nil, f.prize.ID))
		assert.Zero(t, count(t, f.db, (*leveldb.LevelPrize)(nil)))
		assert.Equal(t, 1, count(t, f.db, (*leveldb.PlayerLevel)(nil)))
	})

	t.Run("deleting a missing level", func(t *testing.T) {
		f := setup(t)
		assert.ErrorIs(t, f.repo.DeleteLevel(f.ctx, nil, 9999), leveldb.ErrNoRowsAffected)
	})
}
