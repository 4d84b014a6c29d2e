package levelservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/uptrace/bun"
)

// GrantReward records that playerID received prizeID for levelID, dated
// today, and reports true. When the player has no progress on the level, or
// has not completed it, nothing is recorded and it reports false without an
// error.
func (s *LevelService) GrantReward(ctx context.Context, playerID string, levelID, prizeID int64) (bool, error) {
	granted, err := operation.Execute(s.runner, ctx, "GrantReward", playerID,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*leveldb.LevelPrize, error], error) {
			return s.grantRewardLogic(ctx, db, playerID, levelID, prizeID)
		})
	if err != nil {
		return false, err
	}
	if granted == nil {
		s.metrics.RecordPrizeSkipped(ctx)
		return false, nil
	}

	s.metrics.RecordPrizeGranted(ctx)
	s.publish(ctx, eventbus.TopicPrizeGranted, eventbus.PrizeGrantedPayload{
		PlayerID: playerID,
		LevelID:  levelID,
		PrizeID:  prizeID,
		Received: granted.Received,
	})
	return true, nil
}

// grantRewardLogic succeeds with a nil LevelPrize when the grant is skipped.
func (s *LevelService) grantRewardLogic(ctx context.Context, db bun.IDB, playerID string, levelID, prizeID int64) (results.OperationResult[*leveldb.LevelPrize, error], error) {
	pl, err := s.repo.GetPlayerLevel(ctx, db, playerID, levelID)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return results.OperationResult[*leveldb.LevelPrize, error]{}, err
	}
	if pl == nil || !pl.IsCompleted {
		s.logger.DebugContext(ctx, "Level not completed, skipping reward",
			attr.ExtractCorrelationID(ctx),
			attr.String("player_id", playerID),
			attr.Int64("level_id", levelID),
		)
		return results.SuccessResult[*leveldb.LevelPrize, error](nil), nil
	}

	lp := &leveldb.LevelPrize{
		LevelID:  levelID,
		PrizeID:  prizeID,
		PlayerID: playerID,
		Received: timeparse.Today(s.clock),
	}
	if err := s.repo.CreateLevelPrize(ctx, db, lp); err != nil {
		return results.OperationResult[*leveldb.LevelPrize, error]{}, fmt.Errorf("failed to record prize: %w", err)
	}
	return results.SuccessResult[*leveldb.LevelPrize, error](lp), nil
}
