package leveldb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for levels, prizes and the
// per-player progress on them.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: DELETE matched no rows
//   - other errors: infrastructure failures, including foreign key violations
type Repository interface {
	// Levels and prizes
	CreateLevel(ctx context.Context, db bun.IDB, level *Level) error
	GetLevel(ctx context.Context, db bun.IDB, id int64) (*Level, error)
	ListLevels(ctx context.Context, db bun.IDB) ([]*Level, error)
	DeleteLevel(ctx context.Context, db bun.IDB, id int64) error
	CreatePrize(ctx context.Context, db bun.IDB, prize *Prize) error
	GetPrize(ctx context.Context, db bun.IDB, id int64) (*Prize, error)
	ListPrizes(ctx context.Context, db bun.IDB) ([]*Prize, error)
	DeletePrize(ctx context.Context, db bun.IDB, id int64) error

	// Player progress
	PlayerExists(ctx context.Context, db bun.IDB, playerID string) (bool, error)
	GetPlayerLevel(ctx context.Context, db bun.IDB, playerID string, levelID int64) (*PlayerLevel, error)
	UpsertPlayerLevel(ctx context.Context, db bun.IDB, pl *PlayerLevel) error
	CreateLevelPrize(ctx context.Context, db bun.IDB, lp *LevelPrize) error
	ListLevelPrizes(ctx context.Context, db bun.IDB, playerID string) ([]*LevelPrize, error)
}
