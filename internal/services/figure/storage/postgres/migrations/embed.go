package migrations

import "embed"

// FS contains embedded PostgreSQL migrations for figure storage.
//
//go:embed *.sql
var FS embed.FS
