// Package store persists one row per username with its durable claimed flag.
//
// Three backends share the Store contract: PostgreSQL through pgx, SQLite
// through modernc.org/sqlite (both migrated with goose from embedded SQL),
// and an in-process map for tests and local runs. Open picks one from the
// DATABASE_URL scheme.
package store
