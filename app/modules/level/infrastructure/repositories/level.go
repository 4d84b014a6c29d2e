package leveldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new level repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateLevel(ctx context.Context, db bun.IDB, level *Level) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(level).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create level: %w", err)
	}
	return nil
}

func (r *Impl) GetLevel(ctx context.Context, db bun.IDB, id int64) (*Level, error) {
	db = r.resolveDB(db)
	level := new(Level)
	if err := db.NewSelect().Model(level).Where("l.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}
	return level, nil
}

// ListLevels returns levels by OrderIndex, ties broken by id.
func (r *Impl) ListLevels(ctx context.Context, db bun.IDB) ([]*Level, error) {
	db = r.resolveDB(db)
	var levels []*Level
	if err := db.NewSelect().
		Model(&levels).
		Order("l.order_index ASC", "l.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

// DeleteLevel removes a level; its player levels and level prizes follow
// through ON DELETE CASCADE.
func (r *Impl) DeleteLevel(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().Model((*Level)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	return checkAffected(result)
}

func (r *Impl) CreatePrize(ctx context.Context, db bun.IDB, prize *Prize) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(prize).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create prize: %w", err)
	}
	return nil
}

func (r *Impl) GetPrize(ctx context.Context, db bun.IDB, id int64) (*Prize, error) {
	db = r.resolveDB(db)
	prize := new(Prize)
	if err := db.NewSelect().Model(prize).Where("pr.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prize: %w", err)
	}
	return prize, nil
}

func (r *Impl) ListPrizes(ctx context.Context, db bun.IDB) ([]*Prize, error) {
	db = r.resolveDB(db)
	var prizes []*Prize
	if err := db.NewSelect().Model(&prizes).Order("pr.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	return prizes, nil
}

func (r *Impl) DeletePrize(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().Model((*Prize)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete prize: %w", err)
	}
	return checkAffected(result)
}

// PlayerExists checks the players table directly; the player module owns
// that table.
func (r *Impl) PlayerExists(ctx context.Context, db bun.IDB, playerID string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Table("players").
		Where("username = ?", playerID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check player: %w", err)
	}
	return exists, nil
}

// GetPlayerLevel retrieves a player's progress on one level with the level
// loaded.
func (r *Impl) GetPlayerLevel(ctx context.Context, db bun.IDB, playerID string, levelID int64) (*PlayerLevel, error) {
	db = r.resolveDB(db)
	pl := new(PlayerLevel)
	err := db.NewSelect().
		Model(pl).
		Relation("Level").
		Where("pl.player_id = ?", playerID).
		Where("pl.level_id = ?", levelID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player level: %w", err)
	}
	return pl, nil
}

// UpsertPlayerLevel inserts pl or overwrites the existing row for the same
// (player, level).
func (r *Impl) UpsertPlayerLevel(ctx context.Context, db bun.IDB, pl *PlayerLevel) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(pl).
		On("CONFLICT (player_id, level_id) DO UPDATE").
		Set("completed = EXCLUDED.completed").
		Set("is_completed = EXCLUDED.is_completed").
		Set("score = EXCLUDED.score").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert player level: %w", err)
	}
	return nil
}

func (r *Impl) CreateLevelPrize(ctx context.Context, db bun.IDB, lp *LevelPrize) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(lp).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create level prize: %w", err)
	}
	return nil
}

// ListLevelPrizes returns the prizes a player received, oldest first.
func (r *Impl) ListLevelPrizes(ctx context.Context, db bun.IDB, playerID string) ([]*LevelPrize, error) {
	db = r.resolveDB(db)
	var prizes []*LevelPrize
	err := db.NewSelect().
		Model(&prizes).
		Relation("Prize").
		Where("lp.player_id = ?", playerID).
		Order("lp.received ASC", "lp.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list level prizes: %w", err)
	}
	return prizes, nil
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
