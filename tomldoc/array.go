package tomldoc

import "strings"

// Array is an ordered sequence of values written between brackets.
type Array struct {
	values   []Value
	trailing string // trivia between the last value (or comma) and "]"
	comma    bool   // whether the last value is followed by a comma
	decor    Decor
}

// NewArray returns an array holding values.
func NewArray(values ...Value) *Array {
	return &Array{values: values}
}

func (*Array) Kind() Kind { return KindArray }
func (*Array) sealed()    {}
func (*Array) value()     {}

// Decor returns the trivia around the value.
func (a *Array) Decor() *Decor { return &a.decor }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.values) }

// Get returns element i.
func (a *Array) Get(i int) Value { return a.values[i] }

// Values returns the elements. The slice must not be modified.
func (a *Array) Values() []Value { return a.values }

// Push appends v. In a multi-line array the new element is laid out like
// the last one.
func (a *Array) Push(v Value) {
	if n := len(a.values); n > 0 {
		last := a.values[n-1].Decor()
		if p, ok := last.Prefix(); ok && strings.Contains(p, "\n") {
			if _, set := v.Decor().Prefix(); !set {
				v.Decor().SetPrefix(p)
			}
		}
		if !a.comma {
			moveBlankSuffix(last, v.Decor())
		}
	}
	a.values = append(a.values, v)
}

// Set replaces element i with v, keeping the old element's trivia.
func (a *Array) Set(i int, v Value) {
	v.Decor().inherit(a.values[i].Decor())
	a.values[i] = v
}

// Remove deletes element i and returns it.
func (a *Array) Remove(i int) Value {
	v := a.values[i]
	a.values = append(a.values[:i], a.values[i+1:]...)
	switch {
	case len(a.values) == 0:
		a.comma = false
	case i == 0:
		next := a.values[0].Decor()
		if p, ok := v.Decor().Prefix(); ok {
			next.SetPrefix(p)
		} else {
			next.prefix, next.hasPrefix = "", false
		}
	case i == len(a.values) && !a.comma:
		moveBlankSuffix(v.Decor(), a.values[i-1].Decor())
	}
	return v
}

// ArrayOfTables is a sequence of tables, each printed under a repeated
// [[header]].
type ArrayOfTables struct {
	tables []*Table
}

// NewArrayOfTables returns an array of tables holding tables.
func NewArrayOfTables(tables ...*Table) *ArrayOfTables {
	return &ArrayOfTables{tables: tables}
}

func (*ArrayOfTables) Kind() Kind { return KindArrayOfTables }
func (*ArrayOfTables) sealed()    {}

// Len returns the number of tables.
func (a *ArrayOfTables) Len() int { return len(a.tables) }

// Get returns table i.
func (a *ArrayOfTables) Get(i int) *Table { return a.tables[i] }

// Tables returns the tables. The slice must not be modified.
func (a *ArrayOfTables) Tables() []*Table { return a.tables }

// Push appends t.
func (a *ArrayOfTables) Push(t *Table) {
	a.tables = append(a.tables, t)
}

// Set replaces table i with t. The new table takes over the old one's
// header trivia and place in the document.
func (a *ArrayOfTables) Set(i int, t *Table) {
	old := a.tables[i]
	if t.position < 0 {
		t.position = old.position
	}
	if t.header == "" {
		t.header = old.header
	}
	t.decor.inherit(&old.decor)
	a.tables[i] = t
}

// Remove deletes table i and returns it.
func (a *ArrayOfTables) Remove(i int) *Table {
	t := a.tables[i]
	a.tables = append(a.tables[:i], a.tables[i+1:]...)
	return t
}
