package preflight

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Checks names the paths a repair invocation will touch. Empty fields skip
// the corresponding checks: OutputDir is empty for dry runs, LedgerDir when
// run recording is disabled.
type Checks struct {
	InputPath string
	OutputDir string
	LedgerDir string
}

// RunAll executes the applicable checks for one invocation. The disk space
// check sizes against the input file: repaired output never exceeds the
// input by more than one newline per recovered value.
func RunAll(checks Checks) []Result {
	var results []Result

	input, size := CheckInputFile(checks.InputPath)
	results = append(results, input)

	if checks.OutputDir != "" {
		results = append(results, CheckDirectoryWritable("Output directory", checks.OutputDir))
		if input.Passed {
			results = append(results, CheckDiskSpace(checks.OutputDir, size))
		}
	}

	if checks.LedgerDir != "" {
		results = append(results, CheckDirectoryWritable("Ledger directory", checks.LedgerDir))
	}

	return results
}

// FirstFailure returns the first failed check, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed {
			return result, true
		}
	}
	return Result{}, false
}
