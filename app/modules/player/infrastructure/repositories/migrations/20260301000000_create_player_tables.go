package playermigrations

import (
	"context"
	"fmt"

	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players, boosts and player_boosts tables...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return playerdb.CreateTables(ctx, tx)
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping player tables...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return playerdb.DropTables(ctx, tx)
		})
	})
}
