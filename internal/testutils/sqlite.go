// Package testutils provides database and data helpers shared by tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Black-And-White-Club/frolf-progression/app/database"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/uptrace/bun"
)

// NewSQLiteDB returns a migrated SQLite database in a temp dir with foreign
// keys enforced. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "progression.db")
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path),
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// TruncateAll deletes every row from the application tables, children
// first, keeping the seeded boost types.
func TruncateAll(ctx context.Context, db bun.IDB) error {
	for _, table := range []string{"level_prizes", "player_levels", "prizes", "levels", "player_boosts", "players"} {
		if _, err := db.NewDelete().TableExpr(table).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
