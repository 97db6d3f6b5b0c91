// Package fragment decides whether a candidate text span is one valid JSON
// value.
//
// The boundary detector only finds plausible seams; this package is the
// authority on validity. A fragment that fails here is never discarded by
// callers: the raw text travels with the failure reason into the quarantine
// record so a reviewer can recover it by hand.
package fragment
