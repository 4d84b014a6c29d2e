package playerservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestService(repo *FakePlayerRepo, opts ...Option) *PlayerService {
	opts = append([]Option{WithRandomSource(playerdomain.FixedSource(0))}, opts...)
	return NewPlayerService(repo, slog.Default(), observability.NewNoopMetrics(), nil, nil, opts...)
}

func freshPlayer(username string) *playerdb.Player {
	return &playerdb.Player{
		ID:                   7,
		Username:             username,
		Level:                1,
		ExperienceForLevelUp: 1000,
		RewardCount:          1,
		LevelsCompleted:      []string{},
	}
}

func TestRegisterPlayer(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		setupRepo func(*FakePlayerRepo)
		wantErr   error
		wantTrace []string
	}{
		{
			name:      "creates with defaults",
			username:  "alice",
			setupRepo: func(*FakePlayerRepo) {},
			wantTrace: []string{"CreatePlayer"},
		},
		{
			name:      "trims username",
			username:  "  alice ",
			setupRepo: func(*FakePlayerRepo) {},
			wantTrace: []string{"CreatePlayer"},
		},
		{
			name:      "empty username",
			username:  "   ",
			setupRepo: func(*FakePlayerRepo) {},
			wantErr:   ErrInvalidUsername,
			wantTrace: []string{},
		},
		{
			name:     "duplicate username propagates",
			username: "alice",
			setupRepo: func(f *FakePlayerRepo) {
				f.CreatePlayerFunc = func(context.Context, bun.IDB, *playerdb.Player) error {
					return errors.New("UNIQUE constraint failed: players.username")
				}
			},
			wantTrace: []string{"CreatePlayer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakePlayerRepo()
			tt.setupRepo(repo)
			pub := &FakePublisher{}
			svc := newTestService(repo, WithPublisher(pub))

			view, err := svc.RegisterPlayer(context.Background(), tt.username)

			assert.Equal(t, tt.wantTrace, repo.Trace())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, pub.Events)
				return
			}
			if tt.name == "duplicate username propagates" {
				assert.ErrorContains(t, err, "UNIQUE")
				assert.Empty(t, pub.Events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", view.Username)
			assert.Equal(t, 1, view.Level)
			assert.Equal(t, 0, view.Experience)
			assert.Equal(t, 1000, view.ExperienceForLevelUp)
			assert.Equal(t, 1, view.RewardCount)
			require.Len(t, pub.Events, 1)
			assert.Equal(t, eventbus.TopicPlayerRegistered, pub.Events[0].Topic)
		})
	}
}

func TestRegisterPlayer_CustomDefaults(t *testing.T) {
	repo := NewFakePlayerRepo()
	var saved *playerdb.Player
	repo.CreatePlayerFunc = func(_ context.Context, _ bun.IDB, p *playerdb.Player) error {
		saved = p
		return nil
	}
	svc := newTestService(repo, WithDefaults(Defaults{InitialThreshold: 50, InitialRewardCount: 3}))

	_, err := svc.RegisterPlayer(context.Background(), "bob")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 50, saved.ExperienceForLevelUp)
	assert.Equal(t, 3, saved.RewardCount)
}

func TestGetPlayer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := NewFakePlayerRepo()
		repo.withStore(freshPlayer("alice"))
		svc := newTestService(repo)

		view, err := svc.GetPlayer(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", view.Username)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(NewFakePlayerRepo())
		_, err := svc.GetPlayer(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("database error is not a not-found", func(t *testing.T) {
		repo := NewFakePlayerRepo()
		repo.GetPlayerFunc = func(context.Context, bun.IDB, string) (*playerdb.Player, error) {
			return nil, errors.New("connection refused")
		}
		svc := newTestService(repo)
		_, err := svc.GetPlayer(context.Background(), "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestDeletePlayer(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "deleted"},
		{name: "missing player", repoErr: playerdb.ErrNoRowsAffected, wantErr: ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakePlayerRepo()
			repo.DeletePlayerFunc = func(context.Context, bun.IDB, string) error { return tt.repoErr }
			svc := newTestService(repo)

			err := svc.DeletePlayer(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListPlayers(t *testing.T) {
	repo := NewFakePlayerRepo()
	repo.ListPlayersFunc = func(context.Context, bun.IDB) ([]*playerdb.Player, error) {
		return []*playerdb.Player{freshPlayer("alice"), freshPlayer("bob")}, nil
	}
	svc := newTestService(repo)

	views, err := svc.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "bob", views[1].Username)
}
