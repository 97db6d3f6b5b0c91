// Package config loads, normalizes, and validates mendline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MENDLINE_DATA_DIR. The Config type centralizes every knob the repair
// engine and CLI need: worker counts, the reassembly window, line-size caps,
// output naming, input encoding, and the run ledger location.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
