package playerdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for players and their boost
// holdings.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - other errors: infrastructure failures, including uniqueness violations
type Repository interface {
	// Players
	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayer(ctx context.Context, db bun.IDB, username string) (*Player, error)
	UpdateProgress(ctx context.Context, db bun.IDB, player *Player) error
	DeletePlayer(ctx context.Context, db bun.IDB, username string) error
	ListPlayers(ctx context.Context, db bun.IDB) ([]*Player, error)

	// Boost ledger
	GetOrCreateBoost(ctx context.Context, db bun.IDB, boostType string) (*Boost, error)
	GetHolding(ctx context.Context, db bun.IDB, playerID, boostID int64) (*PlayerBoost, error)
	CreateHolding(ctx context.Context, db bun.IDB, holding *PlayerBoost) error
	IncrementHolding(ctx context.Context, db bun.IDB, holdingID int64, delta int) error
	ListHoldings(ctx context.Context, db bun.IDB, playerID int64) ([]*PlayerBoost, error)
}
