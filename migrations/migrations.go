// Package migrations embeds the SQLite schema applied by golang-migrate at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
