package migrations

import "embed"

// Files holds the forward-only SQL migrations for the local store.
//
//go:embed *.sql
var Files embed.FS
