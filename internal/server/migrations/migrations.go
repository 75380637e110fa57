// Package migrations embeds the goose SQL migrations for the webshop schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
