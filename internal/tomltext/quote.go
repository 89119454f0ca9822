package tomltext

import (
	"fmt"
	"strings"
)

// IsBareKey reports whether name can be written without quotes.
func IsBareKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isBareKeyChar(name[i]) {
			return false
		}
	}
	return true
}

// QuoteKey spells a key segment, quoting it only when needed.
func QuoteKey(name string) string {
	if IsBareKey(name) {
		return name
	}
	return QuoteString(name)
}

// QuoteString spells s as a single-line string literal. Strings holding
// backslashes or double quotes, and nothing a literal string cannot carry,
// are written as literal strings to avoid escapes.
func QuoteString(s string) string {
	if strings.ContainsAny(s, `\"`) && canBeLiteral(s) {
		return LiteralQuote + s + LiteralQuote
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteString(BasicQuote)
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteString(BasicQuote)
	return b.String()
}

func canBeLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || isControl(s[i]) {
			return false
		}
	}
	return true
}
