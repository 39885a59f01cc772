package migrations

import "embed"

// FS contains embedded SQLite migrations for ad-list storage.
//
//go:embed *.sql
var FS embed.FS
