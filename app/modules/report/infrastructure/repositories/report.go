package reportdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new report repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// ProgressRows left joins players to player_levels, levels, level_prizes
// and prizes. Every player yields at least one row and every player level at
// least one row. A level prize only matches the player who earned it.
func (r *Impl) ProgressRows(ctx context.Context, db bun.IDB) ([]ProgressRow, error) {
	db = r.resolveDB(db)
	var rows []ProgressRow
	err := db.NewSelect().
		TableExpr("players AS p").
		ColumnExpr("p.username AS player_id").
		ColumnExpr("l.title AS level_title").
		ColumnExpr("pl.is_completed AS is_completed").
		ColumnExpr("pr.title AS prize_title").
		Join("LEFT JOIN player_levels AS pl ON pl.player_id = p.username").
		Join("LEFT JOIN levels AS l ON l.id = pl.level_id").
		Join("LEFT JOIN level_prizes AS lp ON lp.level_id = pl.level_id AND lp.player_id = pl.player_id").
		Join("LEFT JOIN prizes AS pr ON pr.id = lp.prize_id").
		OrderExpr("p.username ASC, l.order_index ASC, l.id ASC, lp.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress report: %w", err)
	}
	return rows, nil
}

// LevelDistribution counts players per progression level, lowest first.
func (r *Impl) LevelDistribution(ctx context.Context, db bun.IDB) ([]LevelCount, error) {
	db = r.resolveDB(db)
	var counts []LevelCount
	err := db.NewSelect().
		TableExpr("players AS p").
		ColumnExpr("p.level AS level").
		ColumnExpr("COUNT(*) AS players").
		GroupExpr("p.level").
		OrderExpr("p.level ASC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("failed to query level distribution: %w", err)
	}
	return counts, nil
}
