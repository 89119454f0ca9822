package edit

import (
	"github.com/joshuapare/tomlkit/tomldoc"
)

// addPath stores value at path, creating missing parents.
func (e *Editor) addPath(path, value string) (bool, error) {
	parentPath, last := splitLast(SplitPath(path))
	r := newResolver(parentPath, last, true)
	parent, err := r.resolve(e.doc.Root())
	if err != nil {
		return false, err
	}

	// Block parents get block children; anything nested in a value stays inline.
	inline := true
	switch parent.(type) {
	case *tomldoc.Table, *tomldoc.ArrayOfTables:
		inline = false
	}
	v, err := FromJSON(value, inline)
	if err == nil {
		var changed bool
		changed, err = e.insert(parent, childPath(parentPath, last), last, v)
		if err == nil {
			return changed || r.created(), nil
		}
	}
	r.rollback()
	return false, err
}

// insert performs the final step of a simple add on a resolved parent.
func (e *Editor) insert(parent tomldoc.Node, at []string, last string, v tomldoc.Node) (bool, error) {
	switch p := parent.(type) {
	case *tomldoc.Table:
		old, ok := p.Get(last)
		if e.unchanged(old, ok, v) {
			return false, nil
		}
		p.Insert(last, v)
		return true, nil

	case *tomldoc.ArrayOfTables:
		t, ok := v.(*tomldoc.Table)
		if !ok {
			return false, pathError(ErrTypeMismatch, at, "an array of tables only holds tables, not %s", describe(v))
		}
		replace, idx, err := e.place(at, last, p.Len())
		if err != nil {
			return false, err
		}
		if !replace {
			p.Push(t)
			return true, nil
		}
		if e.unchanged(p.Get(idx), true, t) {
			return false, nil
		}
		p.Set(idx, t)
		return true, nil

	case *tomldoc.Array:
		val, ok := v.(tomldoc.Value)
		if !ok {
			return false, pathError(ErrTypeMismatch, at, "%s cannot be an array element", describe(v))
		}
		replace, idx, err := e.place(at, last, p.Len())
		if err != nil {
			return false, err
		}
		if !replace {
			p.Push(val)
			return true, nil
		}
		if e.unchanged(p.Get(idx), true, val) {
			return false, nil
		}
		p.Set(idx, val)
		return true, nil

	case *tomldoc.InlineTable:
		val, ok := v.(tomldoc.Value)
		if !ok {
			return false, pathError(ErrTypeMismatch, at, "%s cannot be stored in an inline table", describe(v))
		}
		old, exists := p.Get(last)
		if e.unchanged(old, exists, val) {
			return false, nil
		}
		p.Insert(last, val)
		return true, nil

	case *tomldoc.Scalar:
		return false, pathError(ErrTypeMismatch, at, "cannot add a key under a %s", describe(p))

	default:
		return false, pathError(ErrTypeMismatch, at, "cannot add under %s", describe(parent))
	}
}

// place decides whether index segment last replaces an element of a
// sequence of length n or appends to it.
func (e *Editor) place(at []string, last string, n int) (replace bool, idx int, err error) {
	idx, ok := ParseIndex(last)
	switch {
	case !ok:
		return false, 0, pathError(ErrBadIndex, at, "%q is not an array index", last)
	case idx < n:
		return true, idx, nil
	case idx == n || e.opts.ClampIndex:
		return false, n, nil
	default:
		return false, 0, pathError(ErrBadIndex, at, "index %d is out of range (length %d)", idx, n)
	}
}
