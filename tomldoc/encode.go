package tomldoc

import (
	"sort"
	"strings"

	"github.com/joshuapare/tomlkit/internal/tomltext"
)

// section is one header-delimited part of the printed document.
type section struct {
	order int
	table *Table
	path  []*key
	aot   bool
}

// leaf is one key/value line, possibly reached through dotted tables.
type leaf struct {
	path  []*key
	value Value
	seq   int
}

type encoder struct {
	b  strings.Builder
	nl string
}

// String prints the document. Parsed content is reproduced as it was read;
// nodes added since get canonical formatting.
func (d *Document) String() string {
	e := &encoder{nl: d.newline}
	e.document(d)
	out := e.b.String()
	if d.noEOL && d.trailing == "" {
		out = strings.TrimSuffix(out, d.newline)
	}
	return out
}

// FormatValue prints a single value without surrounding trivia defaults.
func FormatValue(v Value) string {
	e := &encoder{nl: tomltext.LF}
	e.value(v, "", "")
	return e.b.String()
}

func (e *encoder) document(d *Document) {
	first := true
	for _, s := range sections(d.root) {
		leaves := collect(&s.table.entries)
		switch {
		case len(s.path) == 0:
			if len(leaves) > 0 {
				first = false
			}
		case s.aot:
			e.header(s, tomltext.ArrayTableOpen, tomltext.ArrayTableClose, &first)
		case !(s.table.implicit && len(leaves) == 0):
			e.header(s, tomltext.TableOpen, tomltext.TableClose, &first)
		}
		for _, l := range leaves {
			e.keyPath(l.path, "", " ")
			e.b.WriteString(tomltext.Assignment)
			e.value(l.value, " ", "")
			e.b.WriteString(e.nl)
		}
	}
	e.b.WriteString(d.trailing)
}

// sections lists every table that prints under its own header, ordered by
// source position. Tables without a position follow the section that
// precedes them in tree order.
func sections(root *Table) []section {
	var out []section
	last := 0
	var visit func(t *Table, path []*key, aot bool)
	visit = func(t *Table, path []*key, aot bool) {
		if !t.dotted {
			if t.position >= 0 {
				last = t.position
			}
			out = append(out, section{order: last, table: t, path: path, aot: aot})
		}
		for _, en := range t.items {
			child := append(path[:len(path):len(path)], &en.key)
			switch n := en.node.(type) {
			case *Table:
				visit(n, child, false)
			case *ArrayOfTables:
				for _, at := range n.tables {
					visit(at, child, true)
				}
			}
		}
	}
	visit(root, nil, false)
	sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

// collect lists the key/value lines of a table, descending into dotted
// children, in source order.
func collect(l *entries) []leaf {
	var out []leaf
	var walk func(l *entries, prefix []*key)
	walk = func(l *entries, prefix []*key) {
		for _, en := range l.items {
			path := append(prefix[:len(prefix):len(prefix)], &en.key)
			switch n := en.node.(type) {
			case *Table:
				if n.dotted {
					walk(&n.entries, path)
				}
			case *InlineTable:
				if n.dotted {
					walk(&n.entries, path)
					continue
				}
				out = append(out, leaf{path: path, value: n, seq: en.seq})
			case Value:
				out = append(out, leaf{path: path, value: n, seq: en.seq})
			}
		}
	}
	walk(l, nil)

	last := -1
	for i := range out {
		if out[i].seq >= 0 {
			last = out[i].seq
		} else {
			out[i].seq = last
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (e *encoder) header(s section, left, right string, first *bool) {
	def := e.nl
	if *first {
		def = ""
		*first = false
	}
	e.b.WriteString(s.table.decor.prefixOr(def))
	e.b.WriteString(left)
	if s.table.header != "" {
		e.b.WriteString(s.table.header)
	} else {
		for i, k := range s.path {
			if i > 0 {
				e.b.WriteString(tomltext.KeySeparator)
			}
			e.b.WriteString(k.display())
		}
	}
	e.b.WriteString(right)
	e.b.WriteString(s.table.decor.suffixOr(""))
	e.b.WriteString(e.nl)
}

func (e *encoder) keyPath(path []*key, defPrefix, defSuffix string) {
	lf := &path[len(path)-1].leaf
	for i, k := range path {
		if i == 0 {
			e.b.WriteString(lf.prefixOr(defPrefix))
		} else {
			e.b.WriteString(tomltext.KeySeparator)
			e.b.WriteString(k.dotted.prefixOr(""))
		}
		e.b.WriteString(k.display())
		if i == len(path)-1 {
			e.b.WriteString(lf.suffixOr(defSuffix))
		} else {
			e.b.WriteString(k.dotted.suffixOr(""))
		}
	}
}

func (e *encoder) value(v Value, defPrefix, defSuffix string) {
	d := v.Decor()
	e.b.WriteString(d.prefixOr(defPrefix))
	switch v := v.(type) {
	case *Scalar:
		e.b.WriteString(v.Repr())
	case *Array:
		e.b.WriteString("[")
		for i, el := range v.values {
			def := " "
			if i == 0 {
				def = ""
			} else {
				e.b.WriteString(",")
			}
			e.value(el, def, "")
		}
		if v.comma {
			e.b.WriteString(",")
		}
		e.b.WriteString(v.trailing)
		e.b.WriteString("]")
	case *InlineTable:
		e.b.WriteString("{")
		leaves := collect(&v.entries)
		if len(leaves) == 0 {
			e.b.WriteString(v.preamble)
		}
		for i, l := range leaves {
			if i > 0 {
				e.b.WriteString(",")
			}
			e.keyPath(l.path, " ", " ")
			e.b.WriteString(tomltext.Assignment)
			suffix := ""
			if i == len(leaves)-1 {
				suffix = " "
			}
			e.value(l.value, " ", suffix)
		}
		e.b.WriteString("}")
	}
	e.b.WriteString(d.suffixOr(defSuffix))
}
