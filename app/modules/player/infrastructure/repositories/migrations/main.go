package playermigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the player module's Go migrations. Each file registers
// itself in init; the version is taken from the file name.
var Migrations = migrate.NewMigrations()
