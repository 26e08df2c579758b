// Package sqlite persists preview history in a SQLite database.
//
// The driver is modernc.org/sqlite, which is pure Go, so linkcard builds
// without cgo. The database lives at ~/.linkcard/data/history.db unless a
// data directory is given, and is opened in WAL mode with a busy timeout so
// the TUI and an MCP server can share it.
//
// Schema changes are numbered files in migrations/ (NNN_name.up.sql).
// Applied versions are tracked in schema_migrations and each file runs in
// its own transaction.
package sqlite
