package fragment

import (
	"encoding/json"
	"fmt"
)

// Check strictly parses raw as exactly one JSON value. It returns nil when
// the fragment is valid and the parser's failure reason otherwise. Leading
// and trailing whitespace is tolerated; any other extra content is not.
//
// Valid fragments are emitted byte-for-byte from their raw text, so Check
// never rewrites or normalizes; the parse exists purely to decide validity.
func Check(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty fragment")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	return nil
}
