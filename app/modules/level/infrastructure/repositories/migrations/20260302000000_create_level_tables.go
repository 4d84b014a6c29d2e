package levelmigrations

import (
	"context"
	"fmt"

	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating levels, prizes, player_levels and level_prizes tables...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return leveldb.CreateTables(ctx, tx)
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping level tables...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return leveldb.DropTables(ctx, tx)
		})
	})
}
