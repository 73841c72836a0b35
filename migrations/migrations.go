// Package migrations embeds the SQL schema migrations of each supported database.
package migrations

import "embed"

// FS holds the postgresql/ and mysql/ migration directories.
//
//go:embed postgresql/*.sql mysql/*.sql
var FS embed.FS
