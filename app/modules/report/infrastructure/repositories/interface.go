package reportdb

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// ProgressRow is one row of the progress report. Level, completion and
// prize are null when the outer joins find nothing.
type ProgressRow struct {
	PlayerID    string         `bun:"player_id"`
	LevelTitle  sql.NullString `bun:"level_title"`
	IsCompleted sql.NullBool   `bun:"is_completed"`
	PrizeTitle  sql.NullString `bun:"prize_title"`
}

// LevelCount is how many players currently sit at a progression level.
type LevelCount struct {
	Level   int `bun:"level"`
	Players int `bun:"players"`
}

// Repository reads the cross-module report projections.
type Repository interface {
	ProgressRows(ctx context.Context, db bun.IDB) ([]ProgressRow, error)
	LevelDistribution(ctx context.Context, db bun.IDB) ([]LevelCount, error)
}
