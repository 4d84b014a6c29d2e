package levelmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the level module's Go migrations. They depend on the
// player module's tables and run after them.
var Migrations = migrate.NewMigrations()
