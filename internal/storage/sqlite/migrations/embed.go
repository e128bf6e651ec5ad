package migrations

import "embed"

// FS contains embedded SQLite migrations for the spoiler log.
//
//go:embed *.sql
var FS embed.FS
