package levelservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "LevelService"

var (
	ErrLevelNotFound       = errors.New("level not found")
	ErrPrizeNotFound       = errors.New("prize not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerLevelNotFound = errors.New("player has no progress on level")
	ErrInvalidTitle        = errors.New("title must not be empty")
	ErrNegativeScore       = errors.New("score must not be negative")
)

// LevelService implements the Service interface.
type LevelService struct {
	repo      leveldb.Repository
	logger    *slog.Logger
	metrics   observability.Metrics
	runner    *operation.Runner
	clock     timeparse.Clock
	publisher eventbus.Publisher
}

// Option customizes a LevelService.
type Option func(*LevelService)

// WithClock sets the clock used to date received prizes.
func WithClock(c timeparse.Clock) Option {
	return func(s *LevelService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithPublisher sets the domain event publisher.
func WithPublisher(p eventbus.Publisher) Option {
	return func(s *LevelService) { s.publisher = p }
}

// NewLevelService creates a new LevelService.
func NewLevelService(
	repo leveldb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *LevelService {
	runner := operation.NewRunner(serviceName, logger, metrics, tracer, db)
	s := &LevelService{
		repo:    repo,
		logger:  runner.Logger,
		metrics: runner.Metrics,
		runner:  runner,
		clock:   timeparse.SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateLevel adds a level at the given position.
func (s *LevelService) CreateLevel(ctx context.Context, title string, order int) (*leveldb.Level, error) {
	title = strings.TrimSpace(title)
	return operation.Execute(s.runner, ctx, "CreateLevel", title,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*leveldb.Level, error], error) {
			if title == "" {
				return results.FailureResult[*leveldb.Level, error](ErrInvalidTitle), nil
			}
			level := &leveldb.Level{Title: title, OrderIndex: order}
			if err := s.repo.CreateLevel(ctx, db, level); err != nil {
				return results.OperationResult[*leveldb.Level, error]{}, err
			}
			return results.SuccessResult[*leveldb.Level, error](level), nil
		})
}

// ListLevels returns levels in play order.
func (s *LevelService) ListLevels(ctx context.Context) ([]*leveldb.Level, error) {
	return operation.Execute(s.runner, ctx, "ListLevels", "",
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*leveldb.Level, error], error) {
			levels, err := s.repo.ListLevels(ctx, db)
			if err != nil {
				return results.OperationResult[[]*leveldb.Level, error]{}, err
			}
			return results.SuccessResult[[]*leveldb.Level, error](levels), nil
		})
}

// DeleteLevel removes a level with every progress and prize record on it.
func (s *LevelService) DeleteLevel(ctx context.Context, levelID int64) error {
	_, err := operation.Execute(s.runner, ctx, "DeleteLevel", fmt.Sprint(levelID),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			err := s.repo.DeleteLevel(ctx, db, levelID)
			if errors.Is(err, leveldb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}, error](fmt.Errorf("%w: %d", ErrLevelNotFound, levelID)), nil
			}
			if err != nil {
				return results.OperationResult[struct{}, error]{}, err
			}
			return results.SuccessResult[struct{}, error](struct{}{}), nil
		})
	return err
}

// CreatePrize adds a prize.
func (s *LevelService) CreatePrize(ctx context.Context, title string) (*leveldb.Prize, error) {
	title = strings.TrimSpace(title)
	return operation.Execute(s.runner, ctx, "CreatePrize", title,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*leveldb.Prize, error], error) {
			if title == "" {
				return results.FailureResult[*leveldb.Prize, error](ErrInvalidTitle), nil
			}
			prize := &leveldb.Prize{Title: title}
			if err := s.repo.CreatePrize(ctx, db, prize); err != nil {
				return results.OperationResult[*leveldb.Prize, error]{}, err
			}
			return results.SuccessResult[*leveldb.Prize, error](prize), nil
		})
}

func (s *LevelService) ListPrizes(ctx context.Context) ([]*leveldb.Prize, error) {
	return operation.Execute(s.runner, ctx, "ListPrizes", "",
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*leveldb.Prize, error], error) {
			prizes, err := s.repo.ListPrizes(ctx, db)
			if err != nil {
				return results.OperationResult[[]*leveldb.Prize, error]{}, err
			}
			return results.SuccessResult[[]*leveldb.Prize, error](prizes), nil
		})
}

// DeletePrize removes a prize and every record of it being received.
func (s *LevelService) DeletePrize(ctx context.Context, prizeID int64) error {
	_, err := operation.Execute(s.runner, ctx, "DeletePrize", fmt.Sprint(prizeID),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			err := s.repo.DeletePrize(ctx, db, prizeID)
			if errors.Is(err, leveldb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}, error](fmt.Errorf("%w: %d", ErrPrizeNotFound, prizeID)), nil
			}
			if err != nil {
				return results.OperationResult[struct{}, error]{}, err
			}
			return results.SuccessResult[struct{}, error](struct{}{}), nil
		})
	return err
}

// RecordProgress stores a player's score on a level. A non-nil completedOn
// marks the level completed on that UTC day; nil leaves it incomplete.
// Repeated calls overwrite the previous record.
func (s *LevelService) RecordProgress(ctx context.Context, playerID string, levelID int64, score int, completedOn *time.Time) (*leveldb.PlayerLevel, error) {
	return operation.Execute(s.runner, ctx, "RecordProgress", playerID,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*leveldb.PlayerLevel, error], error) {
			if score < 0 {
				return results.FailureResult[*leveldb.PlayerLevel, error](fmt.Errorf("%w: got %d", ErrNegativeScore, score)), nil
			}
			if err := s.requirePlayer(ctx, db, playerID); err != nil {
				return resultFromError[*leveldb.PlayerLevel](err)
			}
			level, err := s.repo.GetLevel(ctx, db, levelID)
			if errors.Is(err, leveldb.ErrNotFound) {
				return results.FailureResult[*leveldb.PlayerLevel, error](fmt.Errorf("%w: %d", ErrLevelNotFound, levelID)), nil
			}
			if err != nil {
				return results.OperationResult[*leveldb.PlayerLevel, error]{}, err
			}

			pl := &leveldb.PlayerLevel{
				PlayerID: playerID,
				LevelID:  levelID,
				Score:    score,
			}
			if completedOn != nil {
				day := timeparse.TruncateDay(*completedOn)
				pl.Completed = &day
				pl.IsCompleted = true
			}
			if err := s.repo.UpsertPlayerLevel(ctx, db, pl); err != nil {
				return results.OperationResult[*leveldb.PlayerLevel, error]{}, err
			}
			pl.Level = level
			return results.SuccessResult[*leveldb.PlayerLevel, error](pl), nil
		})
}

// GetPlayerLevel returns a player's progress on one level.
func (s *LevelService) GetPlayerLevel(ctx context.Context, playerID string, levelID int64) (*leveldb.PlayerLevel, error) {
	return operation.Execute(s.runner, ctx, "GetPlayerLevel", playerID,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[*leveldb.PlayerLevel, error], error) {
			pl, err := s.repo.GetPlayerLevel(ctx, db, playerID, levelID)
			if errors.Is(err, leveldb.ErrNotFound) {
				return results.FailureResult[*leveldb.PlayerLevel, error](
					fmt.Errorf("%w: player %s, level %d", ErrPlayerLevelNotFound, playerID, levelID)), nil
			}
			if err != nil {
				return results.OperationResult[*leveldb.PlayerLevel, error]{}, err
			}
			return results.SuccessResult[*leveldb.PlayerLevel, error](pl), nil
		})
}

// ListPlayerPrizes returns the prizes a player has received.
func (s *LevelService) ListPlayerPrizes(ctx context.Context, playerID string) ([]*leveldb.LevelPrize, error) {
	return operation.Execute(s.runner, ctx, "ListPlayerPrizes", playerID,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*leveldb.LevelPrize, error], error) {
			if err := s.requirePlayer(ctx, db, playerID); err != nil {
				return resultFromError[[]*leveldb.LevelPrize](err)
			}
			prizes, err := s.repo.ListLevelPrizes(ctx, db, playerID)
			if err != nil {
				return results.OperationResult[[]*leveldb.LevelPrize, error]{}, err
			}
			return results.SuccessResult[[]*leveldb.LevelPrize, error](prizes), nil
		})
}

func (s *LevelService) requirePlayer(ctx context.Context, db bun.IDB, playerID string) error {
	exists, err := s.repo.PlayerExists(ctx, db, playerID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return nil
}

func resultFromError[S any](err error) (results.OperationResult[S, error], error) {
	for _, target := range []error{ErrPlayerNotFound, ErrLevelNotFound, ErrPrizeNotFound, ErrPlayerLevelNotFound} {
		if errors.Is(err, target) {
			return results.FailureResult[S, error](err), nil
		}
	}
	return results.OperationResult[S, error]{}, err
}

func (s *LevelService) publish(ctx context.Context, topic string, payload any) {
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
