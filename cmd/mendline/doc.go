// Package main hosts the mendline CLI entrypoint and command graph.
//
// The cobra-based command tree wires terminal invocations into the repair
// engine, the run ledger, and configuration scaffolding. It centralizes
// configuration resolution, logging setup, and preflight checks so the
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
