// Package migrations embeds the goose SQL migrations for the booking schema so
// the server can apply them on startup and tests can apply them in TestMain.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider instead of relying on a filesystem path.
//
//go:embed *.sql
var FS embed.FS
