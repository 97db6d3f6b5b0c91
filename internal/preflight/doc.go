// Package preflight provides readiness checks for the filesystem paths a
// repair run depends on.
//
// The repair command calls RunAll before opening any stream so a doomed run
// fails upfront with a named check instead of partway through with a write
// error. Checks cover input readability, output directory permissions, free
// disk space, and the ledger directory when run recording is enabled.
package preflight
