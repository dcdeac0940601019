// Package migrations embeds the SQL files that create the book tables and the
// search functions, so the binary does not depend on its working directory.
package migrations

import "embed"

// FS contains all *.sql migration files, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
