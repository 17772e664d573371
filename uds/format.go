package uds

import (
	"fmt"
	"strconv"
	"strings"
)

// Endianness is the byte order prefix used for every payload format. UDS
// payloads are big-endian throughout.
const Endianness = ">"

// variadicMarker is the placeholder inside a format token standing for a
// length that is only known at transcoding time.
const variadicMarker = "{}"

type valueKind int

const (
	kindInt valueKind = iota
	kindUint
	kindFloat
	kindBytes
)

// formatToken is the parsed form of a field format string.
type formatToken struct {
	fmt      string
	kind     valueKind
	size     int // encoded width in bytes; for variadic tokens the width of the length prefix
	variadic bool
}

var fixedTokenTable = map[byte]formatToken{
	'b': {kind: kindInt, size: 1},
	'B': {kind: kindUint, size: 1},
	'h': {kind: kindInt, size: 2},
	'H': {kind: kindUint, size: 2},
	'i': {kind: kindInt, size: 4},
	'I': {kind: kindUint, size: 4},
	'q': {kind: kindInt, size: 8},
	'Q': {kind: kindUint, size: 8},
	'f': {kind: kindFloat, size: 4},
	'd': {kind: kindFloat, size: 8},
}

// parseFormatToken validates a format string against the closed token
// vocabulary and returns its parsed form.
//
// Accepted tokens: b B h H i I q Q f d, "Ns" for a fixed N-byte block, and
// "h{}s" / "H{}s" for a variable-length block carried with a 2-byte inline
// length.
func parseFormatToken(s string) (formatToken, error) {
	if s == "" {
		return formatToken{}, NewSchemaError("empty format token")
	}

	if len(s) == 1 {
		tok, ok := fixedTokenTable[s[0]]
		if !ok {
			return formatToken{}, NewSchemaError(fmt.Sprintf("unknown format token %q", s))
		}
		tok.fmt = s
		return tok, nil
	}

	// variable-length block: length prefix + placeholder + 's'
	if strings.Contains(s, variadicMarker) {
		if s != "h"+variadicMarker+"s" && s != "H"+variadicMarker+"s" {
			return formatToken{}, NewSchemaError(fmt.Sprintf("malformed variadic format token %q", s))
		}
		return formatToken{fmt: s, kind: kindBytes, size: 2, variadic: true}, nil
	}

	// fixed-size block: "Ns"
	if strings.HasSuffix(s, "s") {
		n, err := strconv.Atoi(s[:len(s)-1])
		if err != nil || n <= 0 {
			return formatToken{}, NewSchemaError(fmt.Sprintf("malformed byte block token %q", s))
		}
		return formatToken{fmt: s, kind: kindBytes, size: n}, nil
	}

	return formatToken{}, NewSchemaError(fmt.Sprintf("unknown format token %q", s))
}
