package scan_test

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"mendline/internal/scan"
)

func collect(t *testing.T, lines *scan.Lines) []scan.Line {
	t.Helper()
	var out []scan.Line
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		out = append(out, line)
	}
	return out
}

func TestLinesNumbersFromOne(t *testing.T) {
	lines := scan.NewLines(strings.NewReader("alpha\nbeta\ngamma\n"), 1<<20)
	got := collect(t, lines)
	if err := lines.Err(); err != nil {
		t.Fatalf("Err returned %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i, line := range got {
		if line.Number != int64(i+1) {
			t.Fatalf("line %d has number %d", i, line.Number)
		}
	}
	if string(got[2].Text) != "gamma" {
		t.Fatalf("unexpected final line: %q", got[2].Text)
	}
}

func TestLinesStripsCarriageReturns(t *testing.T) {
	lines := scan.NewLines(strings.NewReader("{\"a\":1}\r\n{\"b\":2}\r\n"), 1<<20)
	got := collect(t, lines)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	for _, line := range got {
		if strings.ContainsRune(string(line.Text), '\r') {
			t.Fatalf("line %d retains carriage return: %q", line.Number, line.Text)
		}
	}
}

func TestLinesPreservesEmptyLines(t *testing.T) {
	lines := scan.NewLines(strings.NewReader("one\n\nthree\n"), 1<<20)
	got := collect(t, lines)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	if len(got[1].Text) != 0 {
		t.Fatalf("expected empty middle line, got %q", got[1].Text)
	}
	if got[2].Number != 3 {
		t.Fatalf("empty line must still consume a line number, got %d", got[2].Number)
	}
}

func TestLinesCopiesAreStable(t *testing.T) {
	input := "first line with some length\nsecond line with some length\nthird\n"
	lines := scan.NewLines(strings.NewReader(input), 1<<20)

	first, ok := lines.Next()
	if !ok {
		t.Fatal("expected first line")
	}
	snapshot := string(first.Text)

	for {
		if _, ok := lines.Next(); !ok {
			break
		}
	}

	if string(first.Text) != snapshot {
		t.Fatalf("line text mutated after further scanning: %q", first.Text)
	}
}

func TestLinesFailsBeyondCap(t *testing.T) {
	long := strings.Repeat("x", 4096)
	lines := scan.NewLines(strings.NewReader(long+"\n"), 1024)
	if _, ok := lines.Next(); ok {
		t.Fatal("expected scan to fail on oversized line")
	}
	if err := lines.Err(); !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("expected bufio.ErrTooLong, got %v", err)
	}
}

func TestNewReaderDecodesUTF16LE(t *testing.T) {
	// "{"a":1}\n" in UTF-16LE with BOM.
	var buf []byte
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range "{\"a\":1}\n" {
		buf = append(buf, byte(r), 0x00)
	}

	reader, err := scan.NewReader(strings.NewReader(string(buf)), "utf-16le")
	if err != nil {
		t.Fatalf("NewReader returned error: %v", err)
	}
	got := collect(t, scan.NewLines(reader, 1<<20))
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if string(got[0].Text) != `{"a":1}` {
		t.Fatalf("unexpected decoded line: %q", got[0].Text)
	}
}

func TestNewReaderAutoStripsUTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBF{\"a\":1}\n"
	reader, err := scan.NewReader(strings.NewReader(input), "auto")
	if err != nil {
		t.Fatalf("NewReader returned error: %v", err)
	}
	got := collect(t, scan.NewLines(reader, 1<<20))
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if string(got[0].Text) != `{"a":1}` {
		t.Fatalf("expected BOM stripped, got %q", got[0].Text)
	}
}

func TestNewReaderDecodesLatin1(t *testing.T) {
	// Latin-1 0xE9 is é.
	input := "{\"name\":\"caf\xE9\"}\n"
	reader, err := scan.NewReader(strings.NewReader(input), "latin-1")
	if err != nil {
		t.Fatalf("NewReader returned error: %v", err)
	}
	got := collect(t, scan.NewLines(reader, 1<<20))
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if !utf8.Valid(got[0].Text) {
		t.Fatalf("expected valid UTF-8 after transcoding, got %q", got[0].Text)
	}
	if !strings.Contains(string(got[0].Text), "café") {
		t.Fatalf("expected é decoded, got %q", got[0].Text)
	}
}

func TestNewReaderPassesThroughRawUTF8(t *testing.T) {
	input := "{\"bad\":\"\xFF\"}\n"
	reader, err := scan.NewReader(strings.NewReader(input), "utf-8")
	if err != nil {
		t.Fatalf("NewReader returned error: %v", err)
	}
	got := collect(t, scan.NewLines(reader, 1<<20))
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if utf8.Valid(got[0].Text) {
		t.Fatal("expected invalid UTF-8 preserved for per-line handling")
	}
}

func TestNewReaderRejectsUnknownEncoding(t *testing.T) {
	if _, err := scan.NewReader(strings.NewReader(""), "ebcdic"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestChecksUTF8(t *testing.T) {
	for name, want := range map[string]bool{
		"auto":     true,
		"utf-8":    true,
		"utf-16le": false,
		"utf-16be": false,
		"latin-1":  false,
	} {
		if got := scan.ChecksUTF8(name); got != want {
			t.Fatalf("ChecksUTF8(%q) = %v, want %v", name, got, want)
		}
	}
}
