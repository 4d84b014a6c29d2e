package leveldb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates the level module tables. The players table must
// already exist: player levels and level prizes reference players by
// username and are deleted with the player, the level or the prize.
func CreateTables(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*Level)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create levels table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*Prize)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create prizes table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*PlayerLevel)(nil)).
		IfNotExists().
		ForeignKey(`("player_id") REFERENCES "players" ("username") ON DELETE CASCADE`).
		ForeignKey(`("level_id") REFERENCES "levels" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create player_levels table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*LevelPrize)(nil)).
		IfNotExists().
		ForeignKey(`("player_id") REFERENCES "players" ("username") ON DELETE CASCADE`).
		ForeignKey(`("level_id") REFERENCES "levels" ("id") ON DELETE CASCADE`).
		ForeignKey(`("prize_id") REFERENCES "prizes" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create level_prizes table: %w", err)
	}

	if _, err := db.NewCreateIndex().
		Model((*LevelPrize)(nil)).
		Index("idx_level_prizes_player_level").
		Column("player_id", "level_id").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create level_prizes index: %w", err)
	}
	return nil
}

// DropTables drops the level module tables, children first.
func DropTables(ctx context.Context, db bun.IDB) error {
	for _, model := range []any{(*LevelPrize)(nil), (*PlayerLevel)(nil), (*Prize)(nil), (*Level)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
