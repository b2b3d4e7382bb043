// Package sqlite implements the DocumentStore port on SQLite using the
// pure-Go modernc.org/sqlite driver. Schema changes are applied through
// embedded, numbered migration files.
package sqlite
