// Package schema embeds the postgres migrations for the botdesk database
package schema

import "embed"

// Dir is the directory inside FS holding the migration files
const Dir = "migrations"

// FS holds the migration files, applied in file name order
//
//go:embed migrations/*.sql
var FS embed.FS
