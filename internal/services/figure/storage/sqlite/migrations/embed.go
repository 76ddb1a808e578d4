package migrations

import "embed"

// FS contains embedded SQLite migrations for figure storage.
//
//go:embed *.sql
var FS embed.FS
