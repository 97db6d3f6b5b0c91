package report

// Disposition classifies what happened to one input line.
type Disposition string

const (
	// DispositionClean marks a line that was already a single valid value,
	// or a blank line.
	DispositionClean Disposition = "clean"
	// DispositionFixed marks a line split into two or more valid values.
	DispositionFixed Disposition = "fixed"
	// DispositionUnrecoverable marks a line quarantined whole because some
	// part of it failed to parse or its boundaries were ambiguous.
	DispositionUnrecoverable Disposition = "unrecoverable"
)

// Outcome is the final classification of one input line. Fragments holds
// the valid value texts to emit, in order; Raw preserves the original line
// verbatim for quarantine. Exactly one of those carries data depending on
// the disposition.
type Outcome struct {
	Line        int64
	Disposition Disposition
	Fragments   [][]byte
	Raw         []byte
	Reason      string
	Empty       bool
}

// CleanLine builds the outcome for a line that was already one valid value.
func CleanLine(line int64, fragment []byte) Outcome {
	return Outcome{Line: line, Disposition: DispositionClean, Fragments: [][]byte{fragment}}
}

// BlankLine builds the outcome for an empty or whitespace-only line, which
// counts as clean with zero recovered objects.
func BlankLine(line int64) Outcome {
	return Outcome{Line: line, Disposition: DispositionClean, Empty: true}
}

// FixedLine builds the outcome for a line split into len(fragments) values.
func FixedLine(line int64, fragments [][]byte) Outcome {
	return Outcome{Line: line, Disposition: DispositionFixed, Fragments: fragments}
}

// UnrecoverableLine builds the outcome for a line quarantined whole.
func UnrecoverableLine(line int64, raw []byte, reason string) Outcome {
	return Outcome{Line: line, Disposition: DispositionUnrecoverable, Raw: raw, Reason: reason}
}

// Objects returns how many valid values the line contributes to the output.
func (o Outcome) Objects() int {
	return len(o.Fragments)
}

// RunStats accumulates run-wide counters. EmptyLines is a subset of
// CleanLines, so the identities are:
//
//	CleanLines + FixedLines + UnrecoverableLines == TotalLines
//	ObjectsRecovered == (CleanLines - EmptyLines) + sum of per-fixed-line counts
type RunStats struct {
	TotalLines         int64
	CleanLines         int64
	FixedLines         int64
	UnrecoverableLines int64
	EmptyLines         int64
	ObjectsRecovered   int64
}

// FixedDetail records one repaired line for the run report.
type FixedDetail struct {
	Line    int64
	Objects int
}

// UnrecoverableDetail records one quarantined line for the run report. The
// full raw text lives in the quarantine sidecar, not here.
type UnrecoverableDetail struct {
	Line   int64
	Reason string
}
