package batch

import (
	"fmt"
	"strings"
)

// Applied counts the operations a plan ran, by kind. Copy and move count as
// an add; move also counts as a remove. Gets and tests count as reads.
type Applied struct {
	Added   int
	Removed int
	Read    int
}

// OpType is the kind of a batch operation.
type OpType uint8

const (
	// OpAdd stores a value, creating missing parents.
	OpAdd OpType = iota
	// OpRemove deletes a node (idempotent if missing).
	OpRemove
	// OpGet reads a node as JSON. A failed get yields null and does not
	// abort the batch.
	OpGet
	// OpTest reads a node and aborts the batch unless it equals Value.
	OpTest
	// OpCopy adds the value found at From under Path.
	OpCopy
	// OpMove is a copy followed by removal of From.
	OpMove
)

var opNames = [...]string{
	OpAdd:    "add",
	OpRemove: "remove",
	OpGet:    "get",
	OpTest:   "test",
	OpCopy:   "copy",
	OpMove:   "move",
}

// String returns the wire name of the OpType.
func (t OpType) String() string {
	if int(t) < len(opNames) {
		return opNames[t]
	}
	return "unknown"
}

// Mutating reports whether the operation can change the document. A failed
// mutating operation aborts the batch.
func (t OpType) Mutating() bool {
	switch t {
	case OpGet, OpTest:
		return false
	default:
		return true
	}
}

// ParseOpType maps a wire name to its OpType.
func ParseOpType(name string) (OpType, error) {
	for i, n := range opNames {
		if n == name {
			return OpType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", ErrMalformedInput, name)
}

// Op is a single batch operation.
type Op struct {
	// Type of operation to perform
	Type OpType

	// Path is the slash-delimited address, e.g. "tool/uv/sources/torch".
	// In header mode it is the dotted path when DottedPath is empty.
	Path string

	// TableHeaderPath selects header mode for adds: the location is
	// realized as block tables, optionally ending in "[[]]".
	TableHeaderPath string

	// DottedPath is realized as dotted keys inside the header table,
	// optionally ending in "[]".
	DottedPath string

	// From is the source address of a copy or move.
	From string

	// Value is the JSON text stored by an add or compared by a test.
	Value string

	// Append means Path names an array and the value goes after its last
	// element. Set for JSON Patch "-" tokens.
	Append bool
}

// Target describes where the operation acts, for messages and logs.
func (op Op) Target() string {
	if op.TableHeaderPath == "" {
		if op.Append {
			return op.Path + "/-"
		}
		return op.Path
	}
	t := "[" + op.TableHeaderPath + "]"
	if d := op.dotted(); d != "" {
		t += " " + d
	}
	return t
}

func (op Op) dotted() string {
	if op.DottedPath != "" {
		return op.DottedPath
	}
	return op.Path
}

// Plan is an ordered list of operations applied to one document.
type Plan struct {
	// Ops is the ordered list of operations to execute
	Ops []Op
}

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{
		Ops: make([]Op, 0),
	}
}

// Add adds an operation storing the JSON value at path.
func (p *Plan) Add(path, value string) {
	p.Ops = append(p.Ops, Op{Type: OpAdd, Path: path, Value: value})
}

// AddUnderHeader adds a header-mode add operation.
func (p *Plan) AddUnderHeader(header, dotted, value string) {
	p.Ops = append(p.Ops, Op{
		Type:            OpAdd,
		TableHeaderPath: header,
		DottedPath:      dotted,
		Value:           value,
	})
}

// Remove adds an operation deleting path.
func (p *Plan) Remove(path string) {
	p.Ops = append(p.Ops, Op{Type: OpRemove, Path: path})
}

// Get adds an operation reading path.
func (p *Plan) Get(path string) {
	p.Ops = append(p.Ops, Op{Type: OpGet, Path: path})
}

// Test adds an operation asserting that path holds the JSON value.
func (p *Plan) Test(path, value string) {
	p.Ops = append(p.Ops, Op{Type: OpTest, Path: path, Value: value})
}

// Copy adds an operation copying from to path.
func (p *Plan) Copy(from, path string) {
	p.Ops = append(p.Ops, Op{Type: OpCopy, From: from, Path: path})
}

// Move adds an operation moving from to path.
func (p *Plan) Move(from, path string) {
	p.Ops = append(p.Ops, Op{Type: OpMove, From: from, Path: path})
}

// Size returns the number of operations in the plan.
func (p *Plan) Size() int {
	return len(p.Ops)
}

// String lists the operations one per line.
func (p *Plan) String() string {
	var b strings.Builder
	for i, op := range p.Ops {
		fmt.Fprintf(&b, "%d: %s %s", i, op.Type, op.Target())
		if op.From != "" {
			fmt.Fprintf(&b, " from %s", op.From)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
