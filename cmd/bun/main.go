package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/frolf-progression/app/database"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

// migrateEnv is filled in by Before.
type migrateEnv struct {
	db     *bun.DB
	logger *slog.Logger
}

func main() {
	env := &migrateEnv{}

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "manage progression database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Before: func(c *cli.Context) error {
			// Only the database section is needed here.
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			obs, err := observability.Init(cfg.Observability)
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}
			env.logger = obs.Logger
			env.db, err = database.Open(c.Context, cfg.Database)
			return err
		},
		After: func(c *cli.Context) error {
			if env.db == nil {
				return nil
			}
			return env.db.Close()
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(env),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(env *migrateEnv) *cli.Command {
	migrator := func(moduleName string) (*migrate.Migrator, error) {
		m, ok := database.Migrators(env.db)[moduleName]
		if !ok {
			return nil, fmt.Errorf("invalid module name: %s", moduleName)
		}
		return m, nil
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					// Every module shares bun_migrations, so one Init covers all.
					first := database.Modules()[0]
					return migrate.NewMigrator(env.db, first.Migrations).Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return database.Migrate(c.Context, env.db, env.logger)
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					return database.Rollback(c.Context, env.db, env.logger)
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					m, err := migrator(moduleName)
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := m.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					m, err := migrator(moduleName)
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					files, err := m.CreateSQLMigrations(c.Context, name)
					if err != nil {
						return err
					}
					for _, mf := range files {
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					migrators := database.Migrators(env.db)
					for _, mod := range database.Modules() {
						ms, err := migrators[mod.Name].MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", mod.Name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}
