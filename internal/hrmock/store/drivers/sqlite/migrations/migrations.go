// Package migrations embeds the HR directory schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
