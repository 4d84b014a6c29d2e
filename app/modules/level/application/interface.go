package levelservice

import (
	"context"
	"time"

	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
)

// Service tracks levels, prizes and each player's progress on them.
type Service interface {
	CreateLevel(ctx context.Context, title string, order int) (*leveldb.Level, error)
	ListLevels(ctx context.Context) ([]*leveldb.Level, error)
	DeleteLevel(ctx context.Context, levelID int64) error
	CreatePrize(ctx context.Context, title string) (*leveldb.Prize, error)
	ListPrizes(ctx context.Context) ([]*leveldb.Prize, error)
	DeletePrize(ctx context.Context, prizeID int64) error

	RecordProgress(ctx context.Context, playerID string, levelID int64, score int, completedOn *time.Time) (*leveldb.PlayerLevel, error)
	GetPlayerLevel(ctx context.Context, playerID string, levelID int64) (*leveldb.PlayerLevel, error)

	GrantReward(ctx context.Context, playerID string, levelID, prizeID int64) (bool, error)
	ListPlayerPrizes(ctx context.Context, playerID string) ([]*leveldb.LevelPrize, error)
}
