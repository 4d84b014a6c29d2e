package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new player repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// CreatePlayer inserts a new player. Duplicate usernames surface the driver's
// unique-constraint error.
func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	player.CreatedAt = now
	player.UpdatedAt = now
	if player.LevelsCompleted == nil {
		player.LevelsCompleted = []string{}
	}
	if _, err := db.NewInsert().Model(player).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by username.
func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, username string) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("p.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// UpdateProgress writes the progression columns of player.
func (r *Impl) UpdateProgress(ctx context.Context, db bun.IDB, player *Player) error {
	db = r.resolveDB(db)
	player.UpdatedAt = time.Now().UTC()
	if player.LevelsCompleted == nil {
		player.LevelsCompleted = []string{}
	}
	result, err := db.NewUpdate().
		Model(player).
		Column("level", "experience", "experience_for_level_up", "reward_count", "levels_completed", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update player progress: %w", err)
	}
	return checkAffected(result)
}

// DeletePlayer removes a player. Holdings, player levels and level prizes
// follow through ON DELETE CASCADE.
func (r *Impl) DeletePlayer(ctx context.Context, db bun.IDB, username string) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffected(result)
}

// ListPlayers returns every player ordered by username.
func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB) ([]*Player, error) {
	db = r.resolveDB(db)
	var players []*Player
	if err := db.NewSelect().Model(&players).Order("p.username ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetOrCreateBoost returns the boost-type row for boostType, inserting it
// first when absent.
func (r *Impl) GetOrCreateBoost(ctx context.Context, db bun.IDB, boostType string) (*Boost, error) {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().
		Model(&Boost{Type: boostType}).
		On("CONFLICT (type) DO NOTHING").
		Returning("NULL").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure boost type %q: %w", boostType, err)
	}

	boost := new(Boost)
	if err := db.NewSelect().Model(boost).Where("b.type = ?", boostType).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get boost type %q: %w", boostType, err)
	}
	return boost, nil
}

// GetHolding retrieves the holding of one boost type for one player.
func (r *Impl) GetHolding(ctx context.Context, db bun.IDB, playerID, boostID int64) (*PlayerBoost, error) {
	db = r.resolveDB(db)
	holding := new(PlayerBoost)
	err := db.NewSelect().
		Model(holding).
		Where("pb.player_id = ?", playerID).
		Where("pb.boost_id = ?", boostID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get boost holding: %w", err)
	}
	return holding, nil
}

// CreateHolding inserts a new holding.
func (r *Impl) CreateHolding(ctx context.Context, db bun.IDB, holding *PlayerBoost) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(holding).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create boost holding: %w", err)
	}
	return nil
}

// IncrementHolding adds delta to a holding's count in a single statement.
func (r *Impl) IncrementHolding(ctx context.Context, db bun.IDB, holdingID int64, delta int) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*PlayerBoost)(nil)).
		Set("? = ? + ?", bun.Ident("count"), bun.Ident("count"), delta).
		Where("id = ?", holdingID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment boost holding: %w", err)
	}
	return checkAffected(result)
}

// ListHoldings returns a player's holdings with their boost type loaded,
// ordered by boost type.
func (r *Impl) ListHoldings(ctx context.Context, db bun.IDB, playerID int64) ([]*PlayerBoost, error) {
	db = r.resolveDB(db)
	var holdings []*PlayerBoost
	err := db.NewSelect().
		Model(&holdings).
		Relation("Boost").
		Where("pb.player_id = ?", playerID).
		Order("boost.type ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boost holdings: %w", err)
	}
	return holdings, nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
