package playerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestIncreaseExperience(t *testing.T) {
	tests := []struct {
		name          string
		amount        int
		wantLevel     int
		wantExp       int
		wantThreshold int
		wantReward    int
		wantLevelUps  []playerdomain.LevelUp
		wantHoldings  map[playerdomain.BoostType]int
	}{
		{
			name:          "below threshold",
			amount:        999,
			wantLevel:     1,
			wantExp:       999,
			wantThreshold: 1000,
			wantReward:    1,
			wantHoldings:  map[playerdomain.BoostType]int{},
		},
		{
			name:          "exactly threshold",
			amount:        1000,
			wantLevel:     2,
			wantExp:       0,
			wantThreshold: 2000,
			wantReward:    2,
			wantLevelUps:  []playerdomain.LevelUp{{Level: 2, BoostType: playerdomain.BoostPower, Count: 1}},
			wantHoldings:  map[playerdomain.BoostType]int{playerdomain.BoostPower: 1},
		},
		{
			name:          "overflow carries into next level",
			amount:        2500,
			wantLevel:     2,
			wantExp:       1500,
			wantThreshold: 2000,
			wantReward:    2,
			wantLevelUps:  []playerdomain.LevelUp{{Level: 2, BoostType: playerdomain.BoostPower, Count: 1}},
			wantHoldings:  map[playerdomain.BoostType]int{playerdomain.BoostPower: 1},
		},
		{
			name:          "two level-ups in one call",
			amount:        3000,
			wantLevel:     3,
			wantExp:       0,
			wantThreshold: 4000,
			wantReward:    3,
			wantLevelUps: []playerdomain.LevelUp{
				{Level: 2, BoostType: playerdomain.BoostPower, Count: 1},
				{Level: 3, BoostType: playerdomain.BoostPower, Count: 2},
			},
			wantHoldings: map[playerdomain.BoostType]int{playerdomain.BoostPower: 3},
		},
		{
			name:          "zero amount",
			amount:        0,
			wantLevel:     1,
			wantExp:       0,
			wantThreshold: 1000,
			wantReward:    1,
			wantHoldings:  map[playerdomain.BoostType]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := freshPlayer("alice")
			repo := NewFakePlayerRepo()
			repo.withStore(player)
			pub := &FakePublisher{}
			svc := newTestService(repo, WithPublisher(pub))

			res, err := svc.IncreaseExperience(context.Background(), "alice", tt.amount)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLevel, res.Player.Level)
			assert.Equal(t, tt.wantExp, res.Player.Experience)
			assert.Equal(t, tt.wantThreshold, res.Player.ExperienceForLevelUp)
			assert.Equal(t, tt.wantReward, res.Player.RewardCount)
			assert.Equal(t, tt.wantLevelUps, res.LevelUps)

			assert.Equal(t, tt.wantLevel, player.Level)
			assert.Less(t, player.Experience, player.ExperienceForLevelUp)

			holdings, err := svc.ListBoosts(context.Background(), "alice")
			require.NoError(t, err)
			got := map[playerdomain.BoostType]int{}
			for _, h := range holdings {
				got[h.Type] = h.Count
			}
			assert.Equal(t, tt.wantHoldings, got)
			assert.Len(t, pub.Events, len(tt.wantLevelUps))
			for _, ev := range pub.Events {
				assert.Equal(t, eventbus.TopicPlayerLeveledUp, ev.Topic)
			}
		})
	}
}

func TestIncreaseExperience_RandomTypes(t *testing.T) {
	player := freshPlayer("alice")
	repo := NewFakePlayerRepo()
	repo.withStore(player)
	src := &playerdomain.SequenceSource{Values: []int{2, 1}}
	svc := newTestService(repo, WithRandomSource(src))

	res, err := svc.IncreaseExperience(context.Background(), "alice", 3000)
	require.NoError(t, err)
	require.Len(t, res.LevelUps, 2)
	assert.Equal(t, playerdomain.BoostDexterity, res.LevelUps[0].BoostType)
	assert.Equal(t, playerdomain.BoostIntellect, res.LevelUps[1].BoostType)

	holdings, err := svc.ListBoosts(context.Background(), "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []BoostHolding{
		{Type: playerdomain.BoostDexterity, Count: 1},
		{Type: playerdomain.BoostIntellect, Count: 2},
	}, holdings)
}

func TestIncreaseExperience_Rejections(t *testing.T) {
	t.Run("negative amount leaves player unchanged", func(t *testing.T) {
		player := freshPlayer("alice")
		player.Experience = 300
		repo := NewFakePlayerRepo()
		repo.withStore(player)
		svc := newTestService(repo)

		_, err := svc.IncreaseExperience(context.Background(), "alice", -10)
		assert.ErrorIs(t, err, playerdomain.ErrNegativeExperience)
		assert.Equal(t, 300, player.Experience)
		assert.Empty(t, repo.Trace())
	})

	t.Run("unknown player", func(t *testing.T) {
		svc := newTestService(NewFakePlayerRepo())
		_, err := svc.IncreaseExperience(context.Background(), "ghost", 10)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("grant failure skips progress update", func(t *testing.T) {
		player := freshPlayer("alice")
		repo := NewFakePlayerRepo()
		repo.withStore(player)
		repo.CreateHoldingFunc = func(context.Context, bun.IDB, *playerdb.PlayerBoost) error {
			return errors.New("disk full")
		}
		pub := &FakePublisher{}
		svc := newTestService(repo, WithPublisher(pub))

		_, err := svc.IncreaseExperience(context.Background(), "alice", 1500)
		require.Error(t, err)
		assert.NotContains(t, repo.Trace(), "UpdateProgress")
		assert.Equal(t, 1, player.Level)
		assert.Empty(t, pub.Events)
	})

	t.Run("publish failure does not fail the operation", func(t *testing.T) {
		player := freshPlayer("alice")
		repo := NewFakePlayerRepo()
		repo.withStore(player)
		svc := newTestService(repo, WithPublisher(&FakePublisher{Err: errors.New("bus down")}))

		res, err := svc.IncreaseExperience(context.Background(), "alice", 1000)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Player.Level)
	})
}
