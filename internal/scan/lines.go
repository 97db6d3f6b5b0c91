package scan

import (
	"bufio"
	"io"
)

const initialBufferSize = 64 * 1024

// Line is one raw input line. Text excludes the line terminator (and a
// trailing carriage return) and is owned by the caller once returned.
type Line struct {
	Number int64
	Text   []byte
}

// Lines walks an input stream line by line, numbering lines from 1. It is
// single-pass: once the stream ends or fails it cannot be rewound.
type Lines struct {
	scanner *bufio.Scanner
	number  int64
}

// NewLines returns a scanner over r. maxLineBytes caps the longest
// acceptable line; beyond it the scan fails with bufio.ErrTooLong, which is
// fatal to the run since the position in the stream is lost.
func NewLines(r io.Reader, maxLineBytes int) *Lines {
	sc := bufio.NewScanner(r)
	buf := initialBufferSize
	if maxLineBytes < buf {
		buf = maxLineBytes
	}
	sc.Buffer(make([]byte, 0, buf), maxLineBytes)
	return &Lines{scanner: sc}
}

// Next returns the next line and true, or a zero Line and false at end of
// stream or on error. The returned text is a copy; later calls never
// invalidate it.
func (l *Lines) Next() (Line, bool) {
	if !l.scanner.Scan() {
		return Line{}, false
	}
	l.number++
	text := make([]byte, len(l.scanner.Bytes()))
	copy(text, l.scanner.Bytes())
	return Line{Number: l.number, Text: text}, true
}

// Err reports the first error encountered by the scan, excluding io.EOF.
func (l *Lines) Err() error {
	return l.scanner.Err()
}
