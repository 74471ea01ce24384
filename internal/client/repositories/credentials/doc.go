// Package credentials persists the client's credential values (the session
// token) in the local SQLite database.
//
// The table is created by the goose migrations in internal/client/migrations:
//
//	CREATE TABLE credentials (
//	    key        TEXT PRIMARY KEY,
//	    value      TEXT NOT NULL,
//	    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// Repositories accept a dbx.DBTX, so they work on a *sql.DB or inside a
// transaction opened with dbx.WithTx.
package credentials
