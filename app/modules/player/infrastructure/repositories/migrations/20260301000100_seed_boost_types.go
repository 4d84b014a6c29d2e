package playermigrations

import (
	"context"
	"fmt"

	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Seeding boost types...")
		return playerdb.SeedBoostTypes(ctx, db)
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Removing unused seeded boost types...")
		_, err := db.NewDelete().
			Model((*playerdb.Boost)(nil)).
			Where("type IN (?)", bun.In(playerdb.DefaultBoostTypes)).
			Where("NOT EXISTS (SELECT 1 FROM player_boosts AS pb WHERE pb.boost_id = ?TableAlias.id)").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove seeded boost types: %w", err)
		}
		return nil
	})
}
