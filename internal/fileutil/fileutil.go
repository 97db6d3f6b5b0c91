// Package fileutil derives the sibling paths a repair run writes next to
// its input.
package fileutil

import (
	"path/filepath"
	"strings"
)

// DerivePath builds a sibling path by inserting suffix between the input's
// stem and extension: "sessions.ndjson" with "_fixed" becomes
// "sessions_fixed.ndjson". Extensionless names take the suffix at the end,
// and a leading-dot name keeps its dot intact.
func DerivePath(input, suffix string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}
