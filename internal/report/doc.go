// Package report owns the per-line outcome model and the run accounting.
//
// The Reporter is the single mutation point for RunStats and the only
// writer of the output stream and the quarantine sidecar, so the rest of
// the engine stays pure. Output is flushed line by line: whatever the
// Reporter has committed is valid NDJSON on disk even if the process dies
// mid-run. Unrecoverable lines are never dropped; each becomes a quarantine
// record carrying the verbatim raw text and the failure reason.
package report
