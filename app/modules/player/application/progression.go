package playerservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/uptrace/bun"
)

// IncreaseExperience adds amount to the player's experience and applies every
// level-up it triggers. Each level-up grants its boosts through the ledger in
// the same transaction, so a failed grant leaves the player untouched.
func (s *PlayerService) IncreaseExperience(ctx context.Context, username string, amount int) (*ExperienceResult, error) {
	res, err := operation.Execute(s.runner, ctx, "IncreaseExperience", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*ExperienceResult, error], error) {
			return s.increaseExperienceLogic(ctx, db, username, amount)
		})
	if err != nil {
		return nil, err
	}

	for _, up := range res.LevelUps {
		s.metrics.RecordLevelUp(ctx, up.Level)
		s.metrics.RecordBoostGranted(ctx, up.BoostType.String(), up.Count)
		s.publish(ctx, eventbus.TopicPlayerLeveledUp, eventbus.PlayerLeveledUpPayload{
			Username:  username,
			Level:     up.Level,
			BoostType: up.BoostType.String(),
			Count:     up.Count,
		})
	}
	return res, nil
}

func (s *PlayerService) increaseExperienceLogic(ctx context.Context, db bun.IDB, username string, amount int) (results.OperationResult[*ExperienceResult, error], error) {
	if amount < 0 {
		return results.FailureResult[*ExperienceResult, error](
			fmt.Errorf("%w: got %d", playerdomain.ErrNegativeExperience, amount)), nil
	}

	player, err := s.loadPlayer(ctx, db, username)
	if err != nil {
		return resultFromError[*ExperienceResult](err)
	}

	progress := playerdomain.Progress{
		Level:       player.Level,
		Experience:  player.Experience,
		Threshold:   player.ExperienceForLevelUp,
		RewardCount: player.RewardCount,
	}
	levelUps, err := progress.AddExperience(amount, s.rng)
	if err != nil {
		return resultFromError[*ExperienceResult](err)
	}

	for _, up := range levelUps {
		if _, err := s.grantBoostLogic(ctx, db, player, up.BoostType, up.Count); err != nil {
			return results.OperationResult[*ExperienceResult, error]{}, fmt.Errorf("failed to grant level %d reward: %w", up.Level, err)
		}
	}

	player.Level = progress.Level
	player.Experience = progress.Experience
	player.ExperienceForLevelUp = progress.Threshold
	player.RewardCount = progress.RewardCount
	if err := s.repo.UpdateProgress(ctx, db, player); err != nil {
		return results.OperationResult[*ExperienceResult, error]{}, fmt.Errorf("failed to save progress: %w", err)
	}

	return results.SuccessResult[*ExperienceResult, error](&ExperienceResult{
		Player:   toPlayerView(player),
		LevelUps: levelUps,
	}), nil
}
