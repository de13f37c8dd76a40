// Package meta persists term metadata. Store is the seam the save pipeline
// and renderers depend on; Memory, SQL (SQLite through modernc.org/sqlite or
// Postgres through pgx) and Redis (one hash per term) implement it.
package meta
