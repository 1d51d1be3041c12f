// Package schema embeds the reference DDL for the enrichment store.
//
// The store itself is owned by another system; this schema documents the
// three-table shape the export pipeline joins across and is applied by tests
// to throwaway SQLite databases. The CLI never migrates a production store.
package schema

import "embed"

// FS contains the goose-format SQL files.
//
//go:embed *.sql
var FS embed.FS
