package edit

import (
	"github.com/joshuapare/tomlkit/tomldoc"
)

// Resolve walks path from root and returns the node it names.
//
// last is the segment that will follow path once the caller acts on the
// result; it only matters when create is set, where it picks the shape of
// containers made for the final hop. With create set, missing keys and
// indices equal to an array's length are filled with new containers: under
// a block table a numeric lookahead segment makes an array of tables and
// anything else a table; under an array or inline table a numeric last
// segment makes an array and anything else an inline table. On error the
// document is left as it was.
func Resolve(root *tomldoc.Table, path []string, last string, create bool) (tomldoc.Node, error) {
	r := newResolver(path, last, create)
	return r.resolve(root)
}

// resolver carries one walk and the undo log of the containers it created.
type resolver struct {
	path   []string
	last   string
	create bool
	undo   []func()
}

func newResolver(path []string, last string, create bool) *resolver {
	return &resolver{path: path, last: last, create: create}
}

func (r *resolver) resolve(root *tomldoc.Table) (tomldoc.Node, error) {
	n, err := r.table(root, 0)
	if err != nil {
		r.rollback()
		return nil, err
	}
	return n, nil
}

// created reports whether the walk added anything to the document.
func (r *resolver) created() bool { return len(r.undo) > 0 }

// rollback removes the containers created by the walk, newest first.
func (r *resolver) rollback() {
	for i := len(r.undo) - 1; i >= 0; i-- {
		r.undo[i]()
	}
	r.undo = nil
}

// lookahead returns the segment after position i.
func (r *resolver) lookahead(i int) string {
	if i+1 < len(r.path) {
		return r.path[i+1]
	}
	return r.last
}

func (r *resolver) fail(kind error, i int, format string, args ...any) error {
	if i >= len(r.path) {
		i = len(r.path) - 1
	}
	return pathError(kind, r.path[:i+1], format, args...)
}

func (r *resolver) descend(n tomldoc.Node, i int) (tomldoc.Node, error) {
	switch n := n.(type) {
	case *tomldoc.Table:
		return r.table(n, i)
	case *tomldoc.ArrayOfTables:
		return r.tables(n, i)
	case *tomldoc.Array:
		return r.array(n, i)
	case *tomldoc.InlineTable:
		return r.inline(n, i)
	case *tomldoc.Scalar:
		if i < len(r.path) {
			return nil, r.fail(ErrTypeMismatch, i, "cannot descend into a %s", describe(n))
		}
		return n, nil
	case tomldoc.Absent:
		return nil, r.fail(ErrNotFound, i-1, "no value")
	default:
		return nil, r.fail(ErrTypeMismatch, i, "unsupported node %T", n)
	}
}

func (r *resolver) table(t *tomldoc.Table, i int) (tomldoc.Node, error) {
	if i == len(r.path) {
		return t, nil
	}
	seg := r.path[i]
	child, ok := t.Get(seg)
	if !ok || child.Kind() == tomldoc.KindAbsent {
		if !r.create {
			return nil, r.fail(ErrNotFound, i, "no key %q", seg)
		}
		if _, numeric := ParseIndex(r.lookahead(i)); numeric {
			child = tomldoc.NewArrayOfTables()
		} else {
			child = tomldoc.NewTable()
		}
		prev, hadPrev := t.Get(seg)
		t.Insert(seg, child)
		r.undo = append(r.undo, func() {
			if hadPrev {
				t.Insert(seg, prev)
			} else {
				t.Remove(seg)
			}
		})
	}
	return r.descend(child, i+1)
}

func (r *resolver) tables(a *tomldoc.ArrayOfTables, i int) (tomldoc.Node, error) {
	if i == len(r.path) {
		return a, nil
	}
	idx, err := r.index(a.Len(), i)
	if err != nil {
		return nil, err
	}
	if idx < a.Len() {
		return r.table(a.Get(idx), i+1)
	}
	t := tomldoc.NewTable()
	a.Push(t)
	r.undo = append(r.undo, func() { a.Remove(a.Len() - 1) })
	return r.table(t, i+1)
}

func (r *resolver) array(a *tomldoc.Array, i int) (tomldoc.Node, error) {
	if i == len(r.path) {
		return a, nil
	}
	idx, err := r.index(a.Len(), i)
	if err != nil {
		return nil, err
	}
	if idx < a.Len() {
		return r.descend(a.Get(idx), i+1)
	}
	v := r.container()
	a.Push(v)
	r.undo = append(r.undo, func() { a.Remove(a.Len() - 1) })
	return r.descend(v, i+1)
}

func (r *resolver) inline(t *tomldoc.InlineTable, i int) (tomldoc.Node, error) {
	if i == len(r.path) {
		return t, nil
	}
	seg := r.path[i]
	v, ok := t.Get(seg)
	if !ok {
		if !r.create {
			return nil, r.fail(ErrNotFound, i, "no key %q", seg)
		}
		v = r.container()
		t.Insert(seg, v)
		r.undo = append(r.undo, func() { t.Remove(seg) })
	}
	return r.descend(v, i+1)
}

// index parses segment i as an index into a sequence of length n. The
// result is either in range or equal to n when the walk may create.
func (r *resolver) index(n, i int) (int, error) {
	seg := r.path[i]
	idx, ok := ParseIndex(seg)
	switch {
	case !ok:
		return 0, r.fail(ErrBadIndex, i, "%q is not an array index", seg)
	case idx < n:
		return idx, nil
	case idx == n && r.create:
		return idx, nil
	case idx == n:
		return 0, r.fail(ErrNotFound, i, "index %d is past the end (length %d)", idx, n)
	default:
		return 0, r.fail(ErrBadIndex, i, "index %d is out of range (length %d)", idx, n)
	}
}

// container returns the value made for a missing hop inside an array or
// inline table.
func (r *resolver) container() tomldoc.Value {
	if _, numeric := ParseIndex(r.last); numeric {
		return tomldoc.NewArray()
	}
	return tomldoc.NewInlineTable()
}
