package playerdb

import "errors"

// Sentinel errors for the player repository layer.
// These indicate infrastructure-level outcomes (presence/absence of rows), not
// domain validation failures.
var (
	// ErrNotFound indicates the requested player or holding does not exist.
	ErrNotFound = errors.New("player record not found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
