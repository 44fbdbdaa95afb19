// Package migrations embeds the numbered SQL files applied by db.OpenSQLite.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
