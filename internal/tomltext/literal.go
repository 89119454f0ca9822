package tomltext

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2/unstable"
)

// LiteralKind classifies an unquoted scalar token.
type LiteralKind uint8

const (
	LiteralInvalid LiteralKind = iota
	LiteralBool
	LiteralInteger
	LiteralFloat
	LiteralDatetime
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralBool:
		return "boolean"
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralDatetime:
		return "datetime"
	default:
		return "invalid"
	}
}

var errBadNumber = errors.New("tomltext: malformed number")

// Classify decides what kind of scalar an unquoted token spells. go-toml's
// parser recognizes the token; numbers and dates are then held to the rules
// it leaves to its decoder (underscores, leading zeros, ranges).
func Classify(raw string) LiteralKind {
	kind, ok := scalarKind(raw)
	if !ok {
		return LiteralInvalid
	}
	switch kind {
	case unstable.Bool:
		return LiteralBool
	case unstable.Integer:
		if _, err := ParseInteger(raw); err == nil {
			return LiteralInteger
		}
	case unstable.Float:
		if _, err := ParseFloat(raw); err == nil {
			return LiteralFloat
		}
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		if ValidDatetime(raw) {
			return LiteralDatetime
		}
	}
	return LiteralInvalid
}

// ParseInteger parses a decimal, hexadecimal (0x), octal (0o) or binary (0b)
// integer with optional underscores between digits.
func ParseInteger(raw string) (int64, error) {
	if raw == "" {
		return 0, errBadNumber
	}
	base := 10
	digits := raw
	if len(raw) > 2 && raw[0] == '0' {
		switch raw[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 10 {
			digits = raw[2:]
		}
	}
	if base == 10 {
		unsigned := strings.TrimLeft(raw, "+-")
		if len(raw)-len(unsigned) > 1 || unsigned == "" {
			return 0, errBadNumber
		}
		if len(unsigned) > 1 && unsigned[0] == '0' {
			return 0, errBadNumber
		}
		digits = unsigned
	}
	if !validUnderscores(digits) {
		return 0, errBadNumber
	}
	clean := strings.ReplaceAll(raw, "_", "")
	if base != 10 {
		u, err := strconv.ParseUint(clean[2:], base, 64)
		if err != nil || u > math.MaxInt64 {
			return 0, errBadNumber
		}
		return int64(u), nil
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, errBadNumber
	}
	return n, nil
}

// ParseFloat parses a float literal, including inf and nan.
func ParseFloat(raw string) (float64, error) {
	switch raw {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}
	unsigned := strings.TrimLeft(raw, "+-")
	if len(raw)-len(unsigned) > 1 || unsigned == "" || !isDigit(unsigned[0]) {
		return 0, errBadNumber
	}
	if !strings.ContainsAny(unsigned, ".eE") {
		return 0, errBadNumber
	}
	intPart := unsigned
	if i := strings.IndexAny(unsigned, ".eE"); i >= 0 {
		intPart = unsigned[:i]
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return 0, errBadNumber
	}
	for _, part := range strings.FieldsFunc(unsigned, func(r rune) bool {
		return r == '.' || r == 'e' || r == 'E'
	}) {
		if !validUnderscores(strings.TrimLeft(part, "+-")) {
			return 0, errBadNumber
		}
	}
	if strings.HasSuffix(unsigned, ".") || strings.Contains(unsigned, ".e") ||
		strings.Contains(unsigned, ".E") {
		return 0, errBadNumber
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return 0, errBadNumber
	}
	return f, nil
}

// validUnderscores reports whether every underscore sits between two digits.
func validUnderscores(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || s[i-1] == '_' || s[i+1] == '_' {
			return false
		}
	}
	return true
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"15:04:05",
}

// ValidDatetime reports whether raw is an offset date-time, local date-time,
// local date or local time.
func ValidDatetime(raw string) bool {
	if len(raw) < 8 {
		return false
	}
	norm := []byte(raw)
	if isDate(raw[:min(len(raw), 10)]) && len(raw) > 10 {
		switch norm[10] {
		case 't', ' ':
			norm[10] = 'T'
		}
	}
	if last := len(norm) - 1; norm[last] == 'z' {
		norm[last] = 'Z'
	}
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, string(norm)); err == nil {
			return true
		}
	}
	return false
}

// isDate reports whether s has the shape YYYY-MM-DD.
func isDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		default:
			if !isDigit(s[i]) {
				return false
			}
		}
	}
	return true
}

// FormatInteger spells n as a decimal literal.
func FormatInteger(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatFloat spells f so that it reads back as a float, never as an integer.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	var s string
	if abs == 0 || (abs >= 1e-5 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
