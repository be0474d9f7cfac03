// Package migrations embeds SQL migration files for database schema management.
package migrations

import "embed"

// FS holds the embedded SQL migration files applied to the message store.
//
//go:embed *.sql
var FS embed.FS
