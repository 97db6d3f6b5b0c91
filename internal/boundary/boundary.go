package boundary

import (
	"errors"
	"fmt"
)

// Span marks one top-level JSON value inside a line as half-open byte
// offsets into the line. Spans never overlap; the bytes between and around
// them are whitespace only.
type Span struct {
	Start int
	End   int
}

// ErrAmbiguous marks lines whose value boundaries cannot be determined with
// confidence: unbalanced nesting or string state at end of line, or content
// following a complete value that does not begin a new container. Callers
// treat the whole line as unrecoverable rather than guess.
var ErrAmbiguous = errors.New("ambiguous value boundary")

// Split scans one line and returns the spans of its top-level JSON values.
//
// The scan tracks three states: nesting depth over braces and brackets, an
// in-string flag, and an escape-pending flag. Characters inside string
// literals are inert, and backslash pairs resolve so an escaped quote never
// terminates a string. Whenever depth returns to zero a complete value has
// closed; a following `{` or `[` starts the next span, end of line stops the
// scan, and anything else is ambiguous.
//
// A line whose first non-whitespace byte is not `{` or `[` is returned as a
// single span covering the trimmed line: bare top-level scalars are a legal
// record shape on their own, but adjacent to other values they are not
// split. A blank line yields no spans.
func Split(line []byte) ([]Span, error) {
	start := nextValueStart(line, 0)
	if start == len(line) {
		return nil, nil
	}

	if line[start] != '{' && line[start] != '[' {
		return []Span{{Start: start, End: trimmedEnd(line)}}, nil
	}

	var spans []Span
	depth := 0
	inString := false
	escaped := false
	valueStart := start

	for i := start; i < len(line); i++ {
		c := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			// depth cannot go negative here: the scan is always inside a
			// container, and every close back to zero resolves below.
			depth--
			if depth == 0 {
				spans = append(spans, Span{Start: valueStart, End: i + 1})
				next := nextValueStart(line, i+1)
				if next == len(line) {
					return spans, nil
				}
				if line[next] != '{' && line[next] != '[' {
					return nil, fmt.Errorf("%w: unexpected content after complete value at offset %d", ErrAmbiguous, next)
				}
				valueStart = next
				i = next - 1
			}
		}
	}

	if inString {
		return nil, fmt.Errorf("%w: unterminated string literal at end of line", ErrAmbiguous)
	}
	return nil, fmt.Errorf("%w: %d unclosed container(s) at end of line", ErrAmbiguous, depth)
}

func nextValueStart(line []byte, from int) int {
	for i := from; i < len(line); i++ {
		if !isSpace(line[i]) {
			return i
		}
	}
	return len(line)
}

func trimmedEnd(line []byte) int {
	for i := len(line); i > 0; i-- {
		if !isSpace(line[i-1]) {
			return i
		}
	}
	return 0
}

// isSpace reports JSON whitespace. A carriage return can survive in the
// middle of a line even though the scanner strips it from line endings.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
