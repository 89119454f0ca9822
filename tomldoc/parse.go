package tomldoc

import (
	"fmt"
	"strings"

	"github.com/joshuapare/tomlkit/internal/tomltext"
)

// Parse reads a document, keeping every comment, blank line and literal
// spelling so that printing it back yields src unchanged.
func Parse(src string) (*Document, error) {
	p := &parser{sc: tomltext.NewScanner(src), doc: New()}
	p.doc.newline = detectNewline(src)
	p.current = p.doc.root
	if err := p.parse(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := tomltext.Validate(src); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return p.doc, nil
}

type parser struct {
	sc      *tomltext.Scanner
	doc     *Document
	current *Table // table receiving key/value lines
	headers int
	lines   int
}

// segment is one part of a dotted key with the whitespace around it.
type segment struct {
	name string
	raw  string
	pre  string // whitespace after the preceding "."
	post string // whitespace before the next "." or the terminator
}

func (p *parser) parse() error {
	for {
		lead, err := p.sc.Trivia()
		if err != nil {
			return err
		}
		if p.sc.EOF() {
			p.doc.trailing = lead
			return nil
		}

		var ended bool
		if p.sc.Peek() == '[' {
			ended, err = p.header(lead)
		} else {
			ended, err = p.keyValue(lead)
		}
		if err != nil {
			return err
		}
		if !ended {
			p.doc.noEOL = true
			return nil
		}
	}
}

func (p *parser) header(lead string) (bool, error) {
	at := p.sc.Pos()
	left, right := tomltext.TableOpen, tomltext.TableClose
	aot := p.sc.HasPrefix(tomltext.ArrayTableOpen)
	if aot {
		left, right = tomltext.ArrayTableOpen, tomltext.ArrayTableClose
	}
	p.sc.Advance(len(left))

	from := p.sc.Pos()
	p.sc.Whitespace()
	segs, err := p.keyPath()
	if err != nil {
		return false, err
	}
	text := p.sc.Since(from)
	if err := p.sc.Expect(right); err != nil {
		return false, err
	}
	tail, err := p.sc.LineTail()
	if err != nil {
		return false, err
	}

	t, err := p.defineTable(segs, aot, at)
	if err != nil {
		return false, err
	}
	p.headers++
	t.position = p.headers
	t.header = text
	t.decor.SetPrefix(lead)
	t.decor.SetSuffix(tail)
	p.current = t
	return p.sc.EndOfLine()
}

// defineTable finds or creates the table a header names. Intermediate
// segments create implicit tables and step into the last element of an
// array of tables.
func (p *parser) defineTable(segs []segment, aot bool, at int) (*Table, error) {
	t := p.doc.root
	for _, s := range segs[:len(segs)-1] {
		n, ok := t.get(s.name)
		if !ok {
			child := NewTable()
			child.implicit = true
			t.set(s.name, child).key.repr = s.raw
			t = child
			continue
		}
		switch n := n.(type) {
		case *Table:
			t = n
		case *ArrayOfTables:
			if n.Len() == 0 {
				return nil, p.sc.ErrorAt(at, "array of tables %q is empty", s.name)
			}
			t = n.tables[n.Len()-1]
		default:
			return nil, p.sc.ErrorAt(at, "key %q is already defined as a value", s.name)
		}
	}

	last := segs[len(segs)-1]
	n, ok := t.get(last.name)
	if aot {
		var arr *ArrayOfTables
		if !ok {
			arr = NewArrayOfTables()
			t.set(last.name, arr).key.repr = last.raw
		} else if arr, ok = n.(*ArrayOfTables); !ok {
			return nil, p.sc.ErrorAt(at, "key %q is not an array of tables", last.name)
		}
		child := NewTable()
		arr.Push(child)
		return child, nil
	}

	if !ok {
		child := NewTable()
		t.set(last.name, child).key.repr = last.raw
		return child, nil
	}
	existing, isTable := n.(*Table)
	if !isTable || !existing.implicit || existing.dotted {
		return nil, p.sc.ErrorAt(at, "table %q is already defined", joinSegments(segs))
	}
	existing.implicit = false
	return existing, nil
}

func (p *parser) keyValue(lead string) (bool, error) {
	at := p.sc.Pos()
	segs, err := p.keyPath()
	if err != nil {
		return false, err
	}
	if err := p.sc.Expect(tomltext.Assignment); err != nil {
		return false, err
	}
	pre := p.sc.Whitespace()
	v, err := p.value()
	if err != nil {
		return false, err
	}
	tail, err := p.sc.LineTail()
	if err != nil {
		return false, err
	}
	v.Decor().SetPrefix(pre)
	v.Decor().SetSuffix(tail)
	if err := p.insert(&p.current.entries, segs, lead, v, at, false); err != nil {
		return false, err
	}
	return p.sc.EndOfLine()
}

// keyPath reads a possibly dotted key. Whitespace before the first segment
// belongs to the caller.
func (p *parser) keyPath() ([]segment, error) {
	var segs []segment
	pre := ""
	for {
		name, raw, err := p.sc.Key()
		if err != nil {
			return nil, err
		}
		post := p.sc.Whitespace()
		segs = append(segs, segment{name: name, raw: raw, pre: pre, post: post})
		if !p.sc.HasPrefix(tomltext.KeySeparator) {
			return segs, nil
		}
		p.sc.Advance(len(tomltext.KeySeparator))
		pre = p.sc.Whitespace()
	}
}

// insert stores v under a dotted key, creating dotted tables for the
// intermediate segments.
func (p *parser) insert(l *entries, segs []segment, lead string, v Value, at int, inline bool) error {
	for i, s := range segs[:len(segs)-1] {
		n, ok := l.get(s.name)
		if !ok {
			var child Node
			var next *entries
			if inline {
				it := NewInlineTable()
				it.dotted = true
				child, next = it, &it.entries
			} else {
				t := NewTable()
				t.dotted = true
				t.implicit = true
				child, next = t, &t.entries
			}
			en := l.set(s.name, child)
			en.key.repr = s.raw
			if i > 0 {
				en.key.dotted.SetPrefix(s.pre)
			}
			en.key.dotted.SetSuffix(s.post)
			l = next
			continue
		}
		switch n := n.(type) {
		case *Table:
			if !n.dotted {
				return p.sc.ErrorAt(at, "table %q is already defined", s.name)
			}
			l = &n.entries
		case *InlineTable:
			if !n.dotted {
				return p.sc.ErrorAt(at, "key %q is already defined as a value", s.name)
			}
			l = &n.entries
		default:
			return p.sc.ErrorAt(at, "key %q is already defined as a value", s.name)
		}
	}

	last := segs[len(segs)-1]
	if _, ok := l.get(last.name); ok {
		return p.sc.ErrorAt(at, "duplicate key %q", joinSegments(segs))
	}
	en := l.set(last.name, v)
	en.key.repr = last.raw
	en.key.leaf.SetPrefix(lead)
	en.key.leaf.SetSuffix(last.post)
	if len(segs) > 1 {
		en.key.dotted.SetPrefix(last.pre)
	}
	en.seq = p.lines
	p.lines++
	return nil
}

func (p *parser) value() (Value, error) {
	at := p.sc.Pos()
	switch p.sc.Peek() {
	case '"', '\'':
		s, raw, err := p.sc.StringLiteral()
		if err != nil {
			return nil, err
		}
		return &Scalar{typ: String, str: s, raw: raw}, nil
	case '[':
		return p.array()
	case '{':
		return p.inlineTable()
	}

	raw := p.sc.Literal()
	if raw == "" {
		if p.sc.EOF() {
			return nil, p.sc.Errorf("expected a value, found end of input")
		}
		return nil, p.sc.Errorf("expected a value, found %q", p.sc.Peek())
	}
	switch tomltext.Classify(raw) {
	case tomltext.LiteralBool:
		return &Scalar{typ: Boolean, flag: raw == "true", raw: raw}, nil
	case tomltext.LiteralInteger:
		n, _ := tomltext.ParseInteger(raw)
		return &Scalar{typ: Integer, num: n, raw: raw}, nil
	case tomltext.LiteralFloat:
		f, _ := tomltext.ParseFloat(raw)
		return &Scalar{typ: Float, flt: f, raw: raw}, nil
	case tomltext.LiteralDatetime:
		return &Scalar{typ: Datetime, str: raw, raw: raw}, nil
	default:
		return nil, p.sc.ErrorAt(at, "invalid value %q", raw)
	}
}

func (p *parser) array() (*Array, error) {
	at := p.sc.Pos()
	p.sc.Advance(1)
	arr := NewArray()
	for {
		pre, err := p.sc.Trivia()
		if err != nil {
			return nil, err
		}
		if p.sc.HasPrefix("]") {
			p.sc.Advance(1)
			arr.trailing = pre
			arr.comma = len(arr.values) > 0
			return arr, nil
		}
		if p.sc.EOF() {
			return nil, p.sc.ErrorAt(at, "unterminated array")
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		post, err := p.sc.Trivia()
		if err != nil {
			return nil, err
		}
		v.Decor().SetPrefix(pre)
		v.Decor().SetSuffix(post)
		arr.values = append(arr.values, v)

		switch p.sc.Peek() {
		case ',':
			p.sc.Advance(1)
		case ']':
			p.sc.Advance(1)
			return arr, nil
		default:
			if p.sc.EOF() {
				return nil, p.sc.ErrorAt(at, "unterminated array")
			}
			return nil, p.sc.Errorf("expected ',' or ']' in array, found %q", p.sc.Peek())
		}
	}
}

func (p *parser) inlineTable() (*InlineTable, error) {
	at := p.sc.Pos()
	p.sc.Advance(1)
	it := NewInlineTable()
	lead := p.sc.Whitespace()
	if p.sc.HasPrefix("}") {
		p.sc.Advance(1)
		it.preamble = lead
		return it, nil
	}
	for {
		keyAt := p.sc.Pos()
		segs, err := p.keyPath()
		if err != nil {
			return nil, err
		}
		if err := p.sc.Expect(tomltext.Assignment); err != nil {
			return nil, err
		}
		pre := p.sc.Whitespace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		v.Decor().SetPrefix(pre)
		v.Decor().SetSuffix(p.sc.Whitespace())
		if err := p.insert(&it.entries, segs, lead, v, keyAt, true); err != nil {
			return nil, err
		}

		switch p.sc.Peek() {
		case ',':
			p.sc.Advance(1)
			lead = p.sc.Whitespace()
		case '}':
			p.sc.Advance(1)
			return it, nil
		default:
			if p.sc.EOF() {
				return nil, p.sc.ErrorAt(at, "unterminated inline table")
			}
			return nil, p.sc.Errorf("expected ',' or '}' in inline table, found %q", p.sc.Peek())
		}
	}
}

func detectNewline(src string) string {
	if i := strings.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return tomltext.CRLF
	}
	return tomltext.LF
}

func joinSegments(segs []segment) string {
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.name
	}
	return strings.Join(names, tomltext.KeySeparator)
}
