package htmlmeta

import (
	"regexp"
	"strconv"
	"strings"
)

var entityPattern = regexp.MustCompile(`&(#[xX]?[0-9a-fA-F]+|[a-zA-Z]+);`)

// The named entities real-world meta tags actually use. Anything else
// passes through unchanged.
var namedEntities = map[string]string{
	"quot": `"`,
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"apos": "'",
	"nbsp": " ",
}

// DecodeEntities decodes numeric character references (&#NNN;, &#xHHHH;)
// and a small fixed set of named entities.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityPattern.ReplaceAllStringFunc(s, func(m string) string {
		body := m[1 : len(m)-1]
		if body[0] != '#' {
			if repl, ok := namedEntities[body]; ok {
				return repl
			}
			return m
		}

		numeric := body[1:]
		base := 10
		if len(numeric) > 0 && (numeric[0] == 'x' || numeric[0] == 'X') {
			numeric = numeric[1:]
			base = 16
		}
		code, err := strconv.ParseInt(numeric, base, 32)
		if err != nil || code <= 0 || code > 0x10FFFF {
			return m
		}
		return string(rune(code))
	})
}
