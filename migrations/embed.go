// Package migrations embeds the goose SQL migrations used by the server at
// startup and by the integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
