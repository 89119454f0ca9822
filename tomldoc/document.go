package tomldoc

import "github.com/joshuapare/tomlkit/internal/tomltext"

// Document is a parsed configuration document. Its root is an implicit
// table that never prints a header.
type Document struct {
	root     *Table
	trailing string // trivia after the last line
	newline  string
	noEOL    bool // the source did not end with a line ending
}

// New returns an empty document.
func New() *Document {
	return NewWithRoot(NewTable())
}

// NewWithRoot returns a document whose root table is root.
func NewWithRoot(root *Table) *Document {
	if root.position < 0 {
		root.position = 0
	}
	return &Document{root: root, newline: tomltext.LF}
}

// Root returns the root table.
func (d *Document) Root() *Table { return d.root }

// IsEmpty reports whether the document holds no keys.
func (d *Document) IsEmpty() bool { return d.root.Len() == 0 }
