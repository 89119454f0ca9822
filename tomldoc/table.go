package tomldoc

import "strings"

// entry is one key of a table together with its node.
type entry struct {
	key  key
	node Node
	// seq orders key/value lines inside a section; -1 for entries that were
	// not parsed, which print after the entry preceding them.
	seq int
}

// entries is the ordered key space shared by Table and InlineTable.
type entries struct {
	items []*entry
}

func (l *entries) index(name string) int {
	for i, e := range l.items {
		if e.key.name == name {
			return i
		}
	}
	return -1
}

func (l *entries) lookup(name string) *entry {
	if i := l.index(name); i >= 0 {
		return l.items[i]
	}
	return nil
}

func (l *entries) get(name string) (Node, bool) {
	if e := l.lookup(name); e != nil {
		return e.node, true
	}
	return nil, false
}

func (l *entries) keys() []string {
	out := make([]string, len(l.items))
	for i, e := range l.items {
		out[i] = e.key.name
	}
	return out
}

// set overwrites an existing key in place, keeping its spelling and
// position, or appends a new one. A value replacing a value, or a table
// replacing a table, keeps the trivia of the old one unless its own was set.
func (l *entries) set(name string, n Node) *entry {
	if e := l.lookup(name); e != nil {
		switch nv := n.(type) {
		case Value:
			if old, ok := e.node.(Value); ok {
				nv.Decor().inherit(old.Decor())
			}
		case *Table:
			if old, ok := e.node.(*Table); ok {
				nv.decor.inherit(&old.decor)
			}
		}
		e.node = n
		return e
	}
	e := &entry{key: newKey(name), node: n, seq: -1}
	l.items = append(l.items, e)
	return e
}

func (l *entries) remove(name string) (*entry, int) {
	i := l.index(name)
	if i < 0 {
		return nil, -1
	}
	e := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return e, i
}

// Table is a block table: the root of a document, a [header] section, an
// element of an array of tables, or a table expressed through dotted keys.
type Table struct {
	entries
	decor    Decor
	header   string // source text between the header brackets
	position int    // order of the header in the source; -1 if none
	implicit bool
	dotted   bool
}

// NewTable returns an empty table that prints with a header.
func NewTable() *Table {
	return &Table{position: -1}
}

func (*Table) Kind() Kind { return KindTable }
func (*Table) sealed()    {}

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.items) }

// Keys returns the keys in document order.
func (t *Table) Keys() []string { return t.keys() }

// Get returns the node stored under key.
func (t *Table) Get(key string) (Node, bool) { return t.get(key) }

// Insert stores n under key, overwriting any existing node.
func (t *Table) Insert(key string, n Node) {
	t.set(key, n)
}

// Remove deletes key and returns the node it held.
func (t *Table) Remove(key string) (Node, bool) {
	e, _ := t.remove(key)
	if e == nil {
		return nil, false
	}
	return e.node, true
}

// Decor returns the trivia around the table's header line.
func (t *Table) Decor() *Decor { return &t.decor }

// IsDotted reports whether the table prints as dotted keys in its parent
// rather than under its own header.
func (t *Table) IsDotted() bool { return t.dotted }

// SetDotted switches between dotted-key and header presentation.
func (t *Table) SetDotted(dotted bool) { t.dotted = dotted }

// IsImplicit reports whether the table's header is omitted while it holds
// no key/value pairs of its own.
func (t *Table) IsImplicit() bool { return t.implicit }

// SetImplicit marks the table as implicit.
func (t *Table) SetImplicit(implicit bool) { t.implicit = implicit }

// Position returns the table's header order in the source document.
func (t *Table) Position() (int, bool) { return t.position, t.position >= 0 }

// InlineTable is a table written on one line between braces.
type InlineTable struct {
	entries
	preamble string // whitespace inside an empty table
	decor    Decor
	dotted   bool
}

// NewInlineTable returns an empty inline table.
func NewInlineTable() *InlineTable {
	return &InlineTable{}
}

func (*InlineTable) Kind() Kind { return KindInlineTable }
func (*InlineTable) sealed()    {}
func (*InlineTable) value()     {}

// Decor returns the trivia around the value.
func (t *InlineTable) Decor() *Decor { return &t.decor }

// Len returns the number of keys.
func (t *InlineTable) Len() int { return len(t.items) }

// Keys returns the keys in document order.
func (t *InlineTable) Keys() []string { return t.keys() }

// Get returns the value stored under key.
func (t *InlineTable) Get(key string) (Value, bool) {
	n, ok := t.get(key)
	if !ok {
		return nil, false
	}
	v, ok := n.(Value)
	return v, ok
}

// Insert stores v under key, overwriting any existing value.
func (t *InlineTable) Insert(key string, v Value) {
	if t.index(key) < 0 && len(t.items) > 0 {
		last, _ := t.items[len(t.items)-1].node.(Value)
		if last != nil {
			moveBlankSuffix(last.Decor(), v.Decor())
		}
	}
	t.set(key, v)
}

// Remove deletes key and returns the value it held.
func (t *InlineTable) Remove(key string) (Value, bool) {
	e, i := t.remove(key)
	if e == nil {
		return nil, false
	}
	v, _ := e.node.(Value)
	switch {
	case len(t.items) == 0:
	case i == 0:
		first := &t.items[0].key.leaf
		if p, ok := e.key.leaf.Prefix(); ok {
			first.SetPrefix(p)
		}
	case i == len(t.items):
		if last, ok := t.items[i-1].node.(Value); ok && v != nil {
			moveBlankSuffix(v.Decor(), last.Decor())
		}
	}
	return v, true
}

// IsDotted reports whether the table prints as dotted keys in its parent.
func (t *InlineTable) IsDotted() bool { return t.dotted }

// SetDotted switches between dotted-key and brace presentation.
func (t *InlineTable) SetDotted(dotted bool) { t.dotted = dotted }

// IntoTable converts t to a block table with default formatting.
func (t *InlineTable) IntoTable() *Table {
	out := NewTable()
	for _, e := range t.items {
		n := e.node
		if v, ok := n.(Value); ok {
			v.Decor().Clear()
		}
		if child, ok := n.(*InlineTable); ok && child.dotted {
			n = child.IntoTable()
			n.(*Table).dotted = true
		}
		out.set(e.key.name, n)
	}
	return out
}

// moveBlankSuffix hands a whitespace-only suffix from one value to another,
// so that closing padding stays next to the closing delimiter.
func moveBlankSuffix(from, to *Decor) {
	s, ok := from.Suffix()
	if !ok || s == "" || strings.TrimSpace(s) != "" {
		return
	}
	if cur, set := to.Suffix(); !set || strings.TrimSpace(cur) == "" {
		to.SetSuffix(s)
	}
	from.SetSuffix("")
}
