package tomldoc

// Kind identifies which of the node shapes a Node is.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindTable
	KindInlineTable
	KindArray
	KindArrayOfTables
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindTable:
		return "table"
	case KindInlineTable:
		return "inline table"
	case KindArray:
		return "array"
	case KindArrayOfTables:
		return "array of tables"
	case KindScalar:
		return "value"
	default:
		return "unknown"
	}
}

// Node is one of *Table, *InlineTable, *Array, *ArrayOfTables, *Scalar or
// Absent. The set is closed: only this package can add implementations.
type Node interface {
	Kind() Kind
	sealed()
}

// Value is a node that may sit on the right-hand side of a key/value pair
// or inside an Array: a *Scalar, *Array or *InlineTable. A *Table has
// decor too but is not a Value.
type Value interface {
	Node
	// Decor returns the whitespace and comments around the value.
	Decor() *Decor
	value()
}

// Absent marks a key that is present but holds no node. It prints nothing.
type Absent struct{}

func (Absent) Kind() Kind { return KindAbsent }
func (Absent) sealed()    {}

// IsValue reports whether n can be stored where only a Value fits.
func IsValue(n Node) bool {
	_, ok := n.(Value)
	return ok
}
