package playerdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// DefaultBoostTypes are seeded into the boosts table by migration.
var DefaultBoostTypes = []string{"power", "intellect", "dexterity"}

// CreateTables creates the player module tables with their foreign keys.
// Deleting a player cascades to its holdings.
func CreateTables(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().
		Model((*Player)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create players table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*Boost)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create boosts table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*PlayerBoost)(nil)).
		IfNotExists().
		ForeignKey(`("player_id") REFERENCES "players" ("id") ON DELETE CASCADE`).
		ForeignKey(`("boost_id") REFERENCES "boosts" ("id") ON DELETE RESTRICT`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create player_boosts table: %w", err)
	}
	return nil
}

// DropTables drops the player module tables, children first.
func DropTables(ctx context.Context, db bun.IDB) error {
	for _, model := range []any{(*PlayerBoost)(nil), (*Boost)(nil), (*Player)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

// SeedBoostTypes inserts DefaultBoostTypes, skipping existing rows.
func SeedBoostTypes(ctx context.Context, db bun.IDB) error {
	boosts := make([]*Boost, 0, len(DefaultBoostTypes))
	for _, t := range DefaultBoostTypes {
		boosts = append(boosts, &Boost{Type: t})
	}
	if _, err := db.NewInsert().
		Model(&boosts).
		On("CONFLICT (type) DO NOTHING").
		Returning("NULL").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed boost types: %w", err)
	}
	return nil
}
