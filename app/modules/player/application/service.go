package playerservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "PlayerService"

// PlayerService implements the Service interface.
type PlayerService struct {
	repo      playerdb.Repository
	logger    *slog.Logger
	metrics   observability.Metrics
	runner    *operation.Runner
	rng       playerdomain.RandomSource
	publisher eventbus.Publisher
	defaults  Defaults
}

// Option customizes a PlayerService.
type Option func(*PlayerService)

// WithRandomSource sets the source used to pick level-up reward types.
func WithRandomSource(rng playerdomain.RandomSource) Option {
	return func(s *PlayerService) { s.rng = rng }
}

// WithPublisher sets the domain event publisher.
func WithPublisher(p eventbus.Publisher) Option {
	return func(s *PlayerService) { s.publisher = p }
}

// WithDefaults sets the starting values of new players.
func WithDefaults(d Defaults) Option {
	return func(s *PlayerService) { s.defaults = d }
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(
	repo playerdb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *PlayerService {
	runner := operation.NewRunner(serviceName, logger, metrics, tracer, db)
	s := &PlayerService{
		repo:     repo,
		logger:   runner.Logger,
		metrics:  runner.Metrics,
		runner:   runner,
		defaults: DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		// crypto/rand seeding only fails when the OS entropy source is broken.
		rng, err := playerdomain.NewRandomSource(0)
		if err != nil {
			panic(fmt.Sprintf("player service: %v", err))
		}
		s.rng = rng
	}
	return s
}

// RegisterPlayer creates a player with the configured starting values.
func (s *PlayerService) RegisterPlayer(ctx context.Context, username string) (*PlayerView, error) {
	username = strings.TrimSpace(username)
	view, err := operation.Execute(s.runner, ctx, "RegisterPlayer", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*PlayerView, error], error) {
			return s.registerPlayerLogic(ctx, db, username)
		})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventbus.TopicPlayerRegistered, eventbus.PlayerRegisteredPayload{Username: username})
	return view, nil
}

func (s *PlayerService) registerPlayerLogic(ctx context.Context, db bun.IDB, username string) (results.OperationResult[*PlayerView, error], error) {
	if username == "" {
		return results.FailureResult[*PlayerView, error](ErrInvalidUsername), nil
	}

	player := &playerdb.Player{
		Username:             username,
		Level:                1,
		Experience:           0,
		ExperienceForLevelUp: s.defaults.InitialThreshold,
		RewardCount:          s.defaults.InitialRewardCount,
		LevelsCompleted:      []string{},
	}
	if err := s.repo.CreatePlayer(ctx, db, player); err != nil {
		return results.OperationResult[*PlayerView, error]{}, err
	}

	view := toPlayerView(player)
	return results.SuccessResult[*PlayerView, error](&view), nil
}

// GetPlayer returns a player's progression state.
func (s *PlayerService) GetPlayer(ctx context.Context, username string) (*PlayerView, error) {
	return operation.Execute(s.runner, ctx, "GetPlayer", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*PlayerView, error], error) {
			player, err := s.loadPlayer(ctx, db, username)
			if err != nil {
				return resultFromError[*PlayerView](err)
			}
			view := toPlayerView(player)
			return results.SuccessResult[*PlayerView, error](&view), nil
		})
}

// ListPlayers returns every player ordered by username.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]PlayerView, error) {
	return operation.Execute(s.runner, ctx, "ListPlayers", "",
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]PlayerView, error], error) {
			players, err := s.repo.ListPlayers(ctx, db)
			if err != nil {
				return results.OperationResult[[]PlayerView, error]{}, err
			}
			views := make([]PlayerView, 0, len(players))
			for _, p := range players {
				views = append(views, toPlayerView(p))
			}
			return results.SuccessResult[[]PlayerView, error](views), nil
		})
}

// DeletePlayer removes a player together with its holdings, level progress
// and prizes.
func (s *PlayerService) DeletePlayer(ctx context.Context, username string) error {
	_, err := operation.Execute(s.runner, ctx, "DeletePlayer", username,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			err := s.repo.DeletePlayer(ctx, db, username)
			if errors.Is(err, playerdb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}, error](fmt.Errorf("%w: %s", ErrPlayerNotFound, username)), nil
			}
			if err != nil {
				return results.OperationResult[struct{}, error]{}, err
			}
			return results.SuccessResult[struct{}, error](struct{}{}), nil
		})
	return err
}

// loadPlayer returns the player or an error wrapping ErrPlayerNotFound.
func (s *PlayerService) loadPlayer(ctx context.Context, db bun.IDB, username string) (*playerdb.Player, error) {
	player, err := s.repo.GetPlayer(ctx, db, username)
	if errors.Is(err, playerdb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// resultFromError turns domain errors into failure results and passes
// infrastructure errors through, so only the latter roll back.
func resultFromError[S any](err error) (results.OperationResult[S, error], error) {
	if isDomainError(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrPlayerNotFound,
		ErrInvalidUsername,
		ErrInvalidBoostCount,
		playerdomain.ErrUnknownBoostType,
		playerdomain.ErrNegativeExperience,
		playerdomain.ErrInvalidThreshold,
		playerdomain.ErrProgressOverflow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// publish sends an event after commit. Failures are logged, not returned:
// the state change is already durable.
func (s *PlayerService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
