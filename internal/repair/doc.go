// Package repair coordinates one recovery run over a line-oriented JSON
// stream.
//
// The Engine wires the pipeline together: a producer scans decoded input
// lines, a worker pool classifies each line independently (clean, fixed
// into multiple values, or unrecoverable), and a single committer reorders
// worker results back into input order before handing them to the report
// layer. Channel capacities bound the number of lines in flight, so memory
// stays flat regardless of input size.
//
// Failures split into two kinds. Line-level problems, such as an ambiguous
// value boundary or a fragment that does not parse, are outcomes: the line
// is quarantined whole and the run continues. Stream-level problems, such
// as a read failure, an over-long line, or a failed write, are errors
// tagged with the sentinel markers in this package and abort the run,
// leaving the committed prefix behind as valid output.
package repair
