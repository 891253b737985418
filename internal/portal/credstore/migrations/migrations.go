// Package migrations embeds the credential database schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
