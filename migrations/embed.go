// Package migrations embeds the SQL schema for the relational credential stores.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per driver: postgresql and mysql.
//
//go:embed postgresql/*.sql mysql/*.sql
var FS embed.FS
