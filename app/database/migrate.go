package database

import (
	"context"
	"fmt"
	"log/slog"

	levelmigrations "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories/migrations"
	playermigrations "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations names one module's migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules returns every module's migrations in the order they must be
// applied. Level tables reference players, so player comes first.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{Name: "player", Migrations: playermigrations.Migrations},
		{Name: "level", Migrations: levelmigrations.Migrations},
	}
}

// Migrators returns a migrator per module, keyed by module name. All of
// them share the bun_migrations table.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	out := make(map[string]*migrate.Migrator)
	for _, m := range Modules() {
		out[m.Name] = migrate.NewMigrator(db, m.Migrations)
	}
	return out
}

// Migrate creates the migration tables and applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	modules := Modules()

	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.DebugContext(ctx, "No migrations to run", attr.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			attr.String("module", mod.Name),
			attr.String("group", group.String()),
		)
	}
	return nil
}

// Rollback rolls back the last migration group of every module, in reverse
// dependency order.
func Rollback(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	modules := Modules()
	for i := len(modules) - 1; i >= 0; i-- {
		mod := modules[i]
		group, err := migrate.NewMigrator(db, mod.Migrations).Rollback(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back %s migrations: %w", mod.Name, err)
		}
		if !group.IsZero() {
			logger.InfoContext(ctx, "Rolled back module",
				attr.String("module", mod.Name),
				attr.String("group", group.String()),
			)
		}
	}
	return nil
}
