// Package migrations embeds the goose SQL migrations of the roster schema.
package migrations

import "embed"

// Dir is the directory inside FS that holds the migration files.
const Dir = "goose_sql"

//go:embed goose_sql/*.sql
var FS embed.FS
