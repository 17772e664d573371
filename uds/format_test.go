package uds

import (
	"errors"
	"testing"
)

func TestParseFormatToken(t *testing.T) {
	cases := []struct {
		fmt      string
		size     int
		variadic bool
	}{
		{"b", 1, false},
		{"B", 1, false},
		{"h", 2, false},
		{"H", 2, false},
		{"i", 4, false},
		{"I", 4, false},
		{"q", 8, false},
		{"Q", 8, false},
		{"f", 4, false},
		{"d", 8, false},
		{"2s", 2, false},
		{"16s", 16, false},
		{"h{}s", 2, true},
		{"H{}s", 2, true},
	}
	for _, tc := range cases {
		tok, err := parseFormatToken(tc.fmt)
		if err != nil {
			t.Errorf("%q: %v", tc.fmt, err)
			continue
		}
		if tok.size != tc.size || tok.variadic != tc.variadic {
			t.Errorf("%q: size %d variadic %v", tc.fmt, tok.size, tok.variadic)
		}
	}
}

func TestParseFormatTokenRejectsMalformed(t *testing.T) {
	var schema SchemaError
	for _, bad := range []string{"", "z", "x{}s", "{}s", "0s", "-1s", "ss", "dd", "H{}x"} {
		_, err := parseFormatToken(bad)
		if !errors.As(err, &schema) {
			t.Errorf("%q: expected SchemaError, got %v", bad, err)
		}
	}
}
