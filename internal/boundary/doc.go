// Package boundary locates the seams between concatenated top-level JSON
// values on a single line.
//
// The detector is a single left-to-right byte scan with constant extra
// memory. It never parses values; it only finds where one complete value
// ends and the next begins, reporting half-open spans whose union together
// with inter-value whitespace reconstructs the line exactly. Lines whose
// structure does not resolve to balanced values are rejected as ambiguous
// so callers can quarantine them instead of guessing.
package boundary
