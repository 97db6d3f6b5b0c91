package scan

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so the named source encoding is decoded to UTF-8 before
// line scanning. "auto" sniffs a byte-order mark and otherwise passes bytes
// through untouched; "utf-8" is a passthrough as well, with validity checked
// per line downstream so one bad line never poisons the stream.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	switch name {
	case "", "auto":
		return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())), nil
	case "utf-8":
		return r, nil
	case "utf-16le":
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case "utf-16be":
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	case "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", name)
	}
}

// ChecksUTF8 reports whether lines read under the named encoding still need
// per-line UTF-8 validation. Transcoding decoders always produce valid
// UTF-8; passthrough modes do not.
func ChecksUTF8(name string) bool {
	switch name {
	case "", "auto", "utf-8":
		return true
	default:
		return false
	}
}

// KnownEncoding reports whether NewReader accepts the name.
func KnownEncoding(name string) bool {
	switch name {
	case "", "auto", "utf-8", "utf-16le", "utf-16be", "latin-1":
		return true
	default:
		return false
	}
}
