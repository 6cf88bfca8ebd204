// Package metadata persists small opaque key/value pairs for the client:
// sealed session tokens, the install salt and stashed records.
//
// Values are stored as given; callers seal anything sensitive before Set.
// The SQLite implementation works over dbx.DBTX, so it can run inside a
// transaction started with dbx.WithTx.
package metadata
