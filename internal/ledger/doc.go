// Package ledger persists completed repair runs in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// run history queries behind the runs subcommands. Each record captures a
// run's identity, file paths, timing, and line counters so earlier repairs
// can be audited without keeping their console output.
//
// The database is a local history, not an archive: schema changes bump the
// version in schema.go and users clear the ledger to adopt the new schema.
package ledger
