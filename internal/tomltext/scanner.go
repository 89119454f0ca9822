package tomltext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Scanner walks document text byte by byte. It never allocates for trivia:
// whitespace, comments and raw spellings are returned as slices of the source.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int { return s.pos }

// EOF reports whether the whole input has been consumed.
func (s *Scanner) EOF() bool { return s.pos >= len(s.src) }

// Peek returns the current byte, or 0 at end of input.
func (s *Scanner) Peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// HasPrefix reports whether the unread input starts with p.
func (s *Scanner) HasPrefix(p string) bool {
	return strings.HasPrefix(s.src[s.pos:], p)
}

// Advance skips n bytes.
func (s *Scanner) Advance(n int) {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// Since returns the source text between from and the current position.
func (s *Scanner) Since(from int) string {
	return s.src[from:s.pos]
}

// Errorf builds a *SyntaxError at the current position.
func (s *Scanner) Errorf(format string, args ...any) error {
	return s.ErrorAt(s.pos, format, args...)
}

// ErrorAt builds a *SyntaxError at offset off.
func (s *Scanner) ErrorAt(off int, format string, args ...any) error {
	line, col := position(s.src, off)
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

// Expect consumes tok or fails.
func (s *Scanner) Expect(tok string) error {
	if !s.HasPrefix(tok) {
		if s.EOF() {
			return s.Errorf("expected %q, found end of input", tok)
		}
		return s.Errorf("expected %q, found %q", tok, s.Peek())
	}
	s.pos += len(tok)
	return nil
}

// Whitespace consumes spaces and tabs.
func (s *Scanner) Whitespace() string {
	start := s.pos
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// Newline consumes a single LF or CRLF and returns it.
func (s *Scanner) Newline() (string, bool) {
	switch {
	case s.HasPrefix(LF):
		s.pos++
		return LF, true
	case s.HasPrefix(CRLF):
		s.pos += 2
		return CRLF, true
	}
	return "", false
}

// Comment consumes a comment up to, but not including, the line ending.
func (s *Scanner) Comment() (string, error) {
	start := s.pos
	if !s.HasPrefix(CommentPrefix) {
		return "", nil
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\n' || (c == '\r' && s.HasPrefix(CRLF)) {
			break
		}
		if isControl(c) {
			return "", s.Errorf("control character %U in comment", rune(c))
		}
		s.pos++
	}
	return s.src[start:s.pos], nil
}

// LineTail consumes whitespace and an optional comment, stopping before the
// line ending.
func (s *Scanner) LineTail() (string, error) {
	start := s.pos
	s.Whitespace()
	if _, err := s.Comment(); err != nil {
		return "", err
	}
	return s.src[start:s.pos], nil
}

// Trivia consumes any mix of whitespace, comments and line endings.
func (s *Scanner) Trivia() (string, error) {
	start := s.pos
	for {
		s.Whitespace()
		if _, err := s.Comment(); err != nil {
			return "", err
		}
		if _, ok := s.Newline(); !ok {
			break
		}
	}
	return s.src[start:s.pos], nil
}

// EndOfLine consumes the line ending after a key/value pair or header.
// It reports false when the input ended instead.
func (s *Scanner) EndOfLine() (bool, error) {
	if _, ok := s.Newline(); ok {
		return true, nil
	}
	if s.EOF() {
		return false, nil
	}
	return false, s.Errorf("expected end of line, found %q", s.Peek())
}

// Key consumes one key segment (bare, basic or literal) and returns its
// decoded name and raw spelling.
func (s *Scanner) Key() (name, raw string, err error) {
	start := s.pos
	switch s.Peek() {
	case '"':
		if s.HasPrefix(MultilineBasicQuote) {
			return "", "", s.Errorf("multi-line strings are not allowed as keys")
		}
		name, err = s.basicString()
	case '\'':
		if s.HasPrefix(MultilineLiteralQuote) {
			return "", "", s.Errorf("multi-line strings are not allowed as keys")
		}
		name, err = s.literalString()
	default:
		for s.pos < len(s.src) && isBareKeyChar(s.src[s.pos]) {
			s.pos++
		}
		if s.pos == start {
			if s.EOF() {
				return "", "", s.Errorf("expected a key, found end of input")
			}
			return "", "", s.Errorf("expected a key, found %q", s.Peek())
		}
		name = s.src[start:s.pos]
	}
	if err != nil {
		return "", "", err
	}
	return name, s.src[start:s.pos], nil
}

// StringLiteral consumes a string of any of the four kinds and returns its decoded
// value and raw spelling.
func (s *Scanner) StringLiteral() (value, raw string, err error) {
	start := s.pos
	switch {
	case s.HasPrefix(MultilineBasicQuote):
		value, err = s.multilineBasicString()
	case s.HasPrefix(MultilineLiteralQuote):
		value, err = s.multilineLiteralString()
	case s.HasPrefix(BasicQuote):
		value, err = s.basicString()
	case s.HasPrefix(LiteralQuote):
		value, err = s.literalString()
	default:
		return "", "", s.Errorf("expected a string")
	}
	if err != nil {
		return "", "", err
	}
	return value, s.src[start:s.pos], nil
}

// Literal consumes an unquoted scalar token: a boolean, number or date/time.
// A date followed by a space and a time is consumed as one token.
func (s *Scanner) Literal() string {
	start := s.pos
	s.literalRun()
	if isDate(s.src[start:s.pos]) && s.pos+3 < len(s.src) && s.src[s.pos] == ' ' &&
		isDigit(s.src[s.pos+1]) && isDigit(s.src[s.pos+2]) && s.src[s.pos+3] == ':' {
		s.pos++
		s.literalRun()
	}
	return s.src[start:s.pos]
}

func (s *Scanner) literalRun() {
	for s.pos < len(s.src) && isLiteralChar(s.src[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) basicString() (string, error) {
	open := s.pos
	s.pos++
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return "", s.ErrorAt(open, "unterminated string")
		}
		c := s.src[s.pos]
		switch {
		case c == '"':
			s.pos++
			return b.String(), nil
		case c == '\\':
			if err := s.escape(&b); err != nil {
				return "", err
			}
		case c == '\n' || c == '\r':
			return "", s.ErrorAt(open, "unterminated string")
		case isControl(c):
			return "", s.Errorf("control character %U in string", rune(c))
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
}

func (s *Scanner) literalString() (string, error) {
	open := s.pos
	s.pos++
	start := s.pos
	for {
		if s.pos >= len(s.src) {
			return "", s.ErrorAt(open, "unterminated string")
		}
		c := s.src[s.pos]
		switch {
		case c == '\'':
			v := s.src[start:s.pos]
			s.pos++
			return v, nil
		case c == '\n' || c == '\r':
			return "", s.ErrorAt(open, "unterminated string")
		case isControl(c):
			return "", s.Errorf("control character %U in string", rune(c))
		}
		s.pos++
	}
}

func (s *Scanner) multilineBasicString() (string, error) {
	open := s.pos
	s.pos += len(MultilineBasicQuote)
	s.Newline()
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return "", s.ErrorAt(open, "unterminated multi-line string")
		}
		if s.HasPrefix(MultilineBasicQuote) {
			if s.closeQuoteRun(&b, '"') {
				return b.String(), nil
			}
			continue
		}
		c := s.src[s.pos]
		switch {
		case c == '\\':
			if s.lineEndingBackslash() {
				continue
			}
			if err := s.escape(&b); err != nil {
				return "", err
			}
		case c == '\r' && s.HasPrefix(CRLF):
			b.WriteString(CRLF)
			s.pos += 2
		case c == '\n':
			b.WriteByte(c)
			s.pos++
		case isControl(c):
			return "", s.Errorf("control character %U in string", rune(c))
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
}

func (s *Scanner) multilineLiteralString() (string, error) {
	open := s.pos
	s.pos += len(MultilineLiteralQuote)
	s.Newline()
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return "", s.ErrorAt(open, "unterminated multi-line string")
		}
		if s.HasPrefix(MultilineLiteralQuote) {
			if s.closeQuoteRun(&b, '\'') {
				return b.String(), nil
			}
			continue
		}
		c := s.src[s.pos]
		if c != '\n' && c != '\r' && isControl(c) {
			return "", s.Errorf("control character %U in string", rune(c))
		}
		b.WriteByte(c)
		s.pos++
	}
}

// closeQuoteRun handles a run of three or more quotes inside a multi-line
// string. The last three close the string; up to two before them are content.
func (s *Scanner) closeQuoteRun(b *strings.Builder, q byte) bool {
	n := 0
	for s.pos+n < len(s.src) && s.src[s.pos+n] == q {
		n++
	}
	if n > maxQuoteRun {
		// Longer runs are content followed by another attempt.
		b.WriteByte(q)
		s.pos++
		return false
	}
	for i := 0; i < n-3; i++ {
		b.WriteByte(q)
	}
	s.pos += n
	return true
}

// lineEndingBackslash consumes a backslash that ends a line, along with all
// whitespace and line endings after it.
func (s *Scanner) lineEndingBackslash() bool {
	i := s.pos + 1
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	if i >= len(s.src) || (s.src[i] != '\n' && !strings.HasPrefix(s.src[i:], CRLF)) {
		return false
	}
	s.pos = i
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isSpace(c) || c == '\n' {
			s.pos++
			continue
		}
		if s.HasPrefix(CRLF) {
			s.pos += 2
			continue
		}
		break
	}
	return true
}

func (s *Scanner) escape(b *strings.Builder) error {
	at := s.pos
	s.pos++
	if s.pos >= len(s.src) {
		return s.ErrorAt(at, "unterminated escape sequence")
	}
	c := s.src[s.pos]
	s.pos++
	switch c {
	case 'b':
		b.WriteByte('\b')
	case 't':
		b.WriteByte('\t')
	case 'n':
		b.WriteByte('\n')
	case 'f':
		b.WriteByte('\f')
	case 'r':
		b.WriteByte('\r')
	case '"':
		b.WriteByte('"')
	case '\\':
		b.WriteByte('\\')
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		if s.pos+width > len(s.src) {
			return s.ErrorAt(at, "short unicode escape")
		}
		n, err := strconv.ParseUint(s.src[s.pos:s.pos+width], 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return s.ErrorAt(at, "invalid unicode escape %q", s.src[at:s.pos+width])
		}
		b.WriteRune(rune(n))
		s.pos += width
	default:
		return s.ErrorAt(at, "invalid escape sequence \\%c", c)
	}
	return nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isControl(c byte) bool { return (c < 0x20 && c != '\t') || c == 0x7f }

func isBareKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_' || c == '-'
}

func isLiteralChar(c byte) bool {
	return isBareKeyChar(c) || c == '+' || c == '.' || c == ':'
}
