package playerservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/uptrace/bun"
)

// GrantBoost adds count boosts of boostType to the player's holding,
// creating the holding on first grant. A zero count changes nothing.
func (s *PlayerService) GrantBoost(ctx context.Context, username string, boostType playerdomain.BoostType, count int) (*BoostGrant, error) {
	grant, err := operation.Execute(s.runner, ctx, "GrantBoost", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*BoostGrant, error], error) {
			if err := validateGrant(boostType, count); err != nil {
				return resultFromError[*BoostGrant](err)
			}
			player, err := s.loadPlayer(ctx, db, username)
			if err != nil {
				return resultFromError[*BoostGrant](err)
			}
			total, err := s.grantBoostLogic(ctx, db, player, boostType, count)
			if err != nil {
				return results.OperationResult[*BoostGrant, error]{}, err
			}
			return results.SuccessResult[*BoostGrant, error](&BoostGrant{
				Username: username,
				Type:     boostType,
				Granted:  count,
				Total:    total,
			}), nil
		})
	if err != nil {
		return nil, err
	}
	s.afterGrant(ctx, grant, "")
	return grant, nil
}

// AddBoostForLevel records levelTitle as completed on the player, once, and
// grants the boost.
func (s *PlayerService) AddBoostForLevel(ctx context.Context, username, levelTitle string, boostType playerdomain.BoostType, count int) (*BoostGrant, error) {
	grant, err := operation.Execute(s.runner, ctx, "AddBoostForLevel", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*BoostGrant, error], error) {
			if err := validateGrant(boostType, count); err != nil {
				return resultFromError[*BoostGrant](err)
			}
			player, err := s.loadPlayer(ctx, db, username)
			if err != nil {
				return resultFromError[*BoostGrant](err)
			}

			if !player.HasCompletedLevel(levelTitle) {
				player.LevelsCompleted = append(player.LevelsCompleted, levelTitle)
				if err := s.repo.UpdateProgress(ctx, db, player); err != nil {
					return results.OperationResult[*BoostGrant, error]{}, fmt.Errorf("failed to record completed level: %w", err)
				}
			}

			total, err := s.grantBoostLogic(ctx, db, player, boostType, count)
			if err != nil {
				return results.OperationResult[*BoostGrant, error]{}, err
			}
			return results.SuccessResult[*BoostGrant, error](&BoostGrant{
				Username: username,
				Type:     boostType,
				Granted:  count,
				Total:    total,
			}), nil
		})
	if err != nil {
		return nil, err
	}
	s.afterGrant(ctx, grant, levelTitle)
	return grant, nil
}

// ListBoosts returns the player's holdings ordered by boost type.
func (s *PlayerService) ListBoosts(ctx context.Context, username string) ([]BoostHolding, error) {
	return operation.Execute(s.runner, ctx, "ListBoosts", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]BoostHolding, error], error) {
			player, err := s.loadPlayer(ctx, db, username)
			if err != nil {
				return resultFromError[[]BoostHolding](err)
			}
			holdings, err := s.repo.ListHoldings(ctx, db, player.ID)
			if err != nil {
				return results.OperationResult[[]BoostHolding, error]{}, err
			}
			out := make([]BoostHolding, 0, len(holdings))
			for _, h := range holdings {
				if h.Boost == nil {
					continue
				}
				out = append(out, BoostHolding{Type: playerdomain.BoostType(h.Boost.Type), Count: h.Count})
			}
			return results.SuccessResult[[]BoostHolding, error](out), nil
		})
}

func validateGrant(boostType playerdomain.BoostType, count int) error {
	if !boostType.IsValid() {
		return fmt.Errorf("%w: %q", playerdomain.ErrUnknownBoostType, boostType)
	}
	if count < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBoostCount, count)
	}
	return nil
}

// grantBoostLogic is the boost ledger: it increments the player's holding of
// boostType by count, creating it when absent, and returns the new total.
// It always adds; repeating a call grants again.
func (s *PlayerService) grantBoostLogic(ctx context.Context, db bun.IDB, player *playerdb.Player, boostType playerdomain.BoostType, count int) (int, error) {
	if count == 0 {
		return s.currentHolding(ctx, db, player, boostType)
	}

	boost, err := s.repo.GetOrCreateBoost(ctx, db, boostType.String())
	if err != nil {
		return 0, err
	}

	holding, err := s.repo.GetHolding(ctx, db, player.ID, boost.ID)
	switch {
	case errors.Is(err, playerdb.ErrNotFound):
		holding = &playerdb.PlayerBoost{
			PlayerID: player.ID,
			BoostID:  boost.ID,
			Count:    count,
		}
		if err := s.repo.CreateHolding(ctx, db, holding); err != nil {
			return 0, err
		}
		return count, nil
	case err != nil:
		return 0, err
	}

	if err := s.repo.IncrementHolding(ctx, db, holding.ID, count); err != nil {
		return 0, err
	}
	return holding.Count + count, nil
}

func (s *PlayerService) currentHolding(ctx context.Context, db bun.IDB, player *playerdb.Player, boostType playerdomain.BoostType) (int, error) {
	holdings, err := s.repo.ListHoldings(ctx, db, player.ID)
	if err != nil {
		return 0, err
	}
	for _, h := range holdings {
		if h.Boost != nil && h.Boost.Type == boostType.String() {
			return h.Count, nil
		}
	}
	return 0, nil
}

func (s *PlayerService) afterGrant(ctx context.Context, grant *BoostGrant, levelTitle string) {
	if grant.Granted == 0 {
		return
	}
	s.metrics.RecordBoostGranted(ctx, grant.Type.String(), grant.Granted)
	s.publish(ctx, eventbus.TopicBoostGranted, eventbus.BoostGrantedPayload{
		Username:  grant.Username,
		BoostType: grant.Type.String(),
		Count:     grant.Granted,
		Level:     levelTitle,
	})
}
