package fragment_test

import (
	"testing"

	"mendline/internal/fragment"
)

func TestCheckAcceptsSingleValues(t *testing.T) {
	valid := []string{
		`{"a":1}`,
		`{"s":"a}b"}`,
		`{"s":"esc\""}`,
		`{"nested":{"list":[1,2,{"x":null}]}}`,
		`[1,2,3]`,
		`[]`,
		`{}`,
		`"bare string"`,
		`42`,
		`-3.14e2`,
		`true`,
		`false`,
		`null`,
		`{"unicode":"é✓"}`,
		`  {"padded":1}  `,
	}
	for _, raw := range valid {
		if err := fragment.Check([]byte(raw)); err != nil {
			t.Fatalf("Check(%q) = %v, want nil", raw, err)
		}
	}
}

func TestCheckRejectsInvalidValues(t *testing.T) {
	invalid := []string{
		``,
		`   `,
		`{"a":1}{"b":2}`,
		`{"a":1} extra`,
		`{'a':1}`,
		`{"a":}`,
		`{"a" 1}`,
		`[1,2`,
		`{"a":1`,
		`nul`,
		`{"trailing":1,}`,
		`}`,
		`42{"a":1}`,
	}
	for _, raw := range invalid {
		if err := fragment.Check([]byte(raw)); err == nil {
			t.Fatalf("Check(%q) = nil, want error", raw)
		}
	}
}

func TestCheckReportsParserReason(t *testing.T) {
	err := fragment.Check([]byte(`{"a":oops}`))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty failure reason")
	}
}
