// Package sqlite provides an offline snapshot of the archive backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. The snapshot implements driven.DocumentStore so the lesson plan can be
// built without network access to the hosted store.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Documents are stored one row per store path with
// their fields encoded as JSON.
//
// # Data Location
//
// By default, the database is stored at ~/.crhp/data/archive.db
package sqlite
