package edit

import (
	"github.com/joshuapare/tomlkit/tomldoc"
)

// headerAdd is one add in table-header mode.
type headerAdd struct {
	e           *Editor
	header      []string
	dotted      []string
	aot         bool // header path ended in "[[]]"
	appendArray bool // dotted path ended in "[]"
	value       tomldoc.Node
}

// addHeader realizes the header path as block tables and the dotted path
// as dotted keys inside the last of them. New structure is built detached
// and attached only once the whole add has succeeded, so a failed add
// leaves the document untouched.
func (e *Editor) addHeader(req AddRequest) (bool, error) {
	header, aot := trimSentinel(SplitPath(req.TableHeaderPath), ArrayOfTablesSentinel)
	if len(header) == 0 {
		return false, pathError(ErrEmptyPath, nil, "table header path %q names no table", req.TableHeaderPath)
	}

	h := &headerAdd{e: e, header: header, aot: aot}
	dotted := req.DottedPath
	if dotted == "" {
		dotted = req.Path
	}
	if dotted != "" {
		h.dotted, h.appendArray = trimSentinel(SplitPath(dotted), AppendSentinel)
		if len(h.dotted) == 0 {
			return false, pathError(ErrEmptyPath, header, "dotted path %q names no key", dotted)
		}
	}

	v, err := FromJSON(req.Value, true)
	if err != nil {
		return false, err
	}
	h.value = v
	return h.walk(e.doc.Root(), 0)
}

func (h *headerAdd) walk(t *tomldoc.Table, i int) (bool, error) {
	seg := h.header[i]
	at := h.header[:i+1]
	child, ok := t.Get(seg)
	if ok && child.Kind() == tomldoc.KindAbsent {
		ok = false
	}
	if i == len(h.header)-1 {
		return h.final(t, seg, child, ok)
	}

	if !ok {
		nt := tomldoc.NewTable()
		if _, err := h.walk(nt, i+1); err != nil {
			return false, err
		}
		nt.SetDotted(true)
		t.Insert(seg, nt)
		return true, nil
	}

	switch c := child.(type) {
	case *tomldoc.Table:
		changed, err := h.walk(c, i+1)
		if err != nil {
			return false, err
		}
		// Only headerless tables fold into dotted form; a table with its
		// own [header] keeps it.
		if c.IsImplicit() || c.IsDotted() {
			c.SetDotted(true)
		}
		return changed, nil
	case *tomldoc.ArrayOfTables:
		return false, pathError(ErrTypeMismatch, at, "cannot nest a table header under an array of tables")
	default:
		return false, pathError(ErrTypeMismatch, at, "cannot nest a table header under a %s", describe(child))
	}
}

// final handles the last header segment.
func (h *headerAdd) final(parent *tomldoc.Table, seg string, child tomldoc.Node, exists bool) (bool, error) {
	at := h.header
	if !exists {
		nt, err := h.build()
		if err != nil {
			return false, err
		}
		if h.aot {
			parent.Insert(seg, tomldoc.NewArrayOfTables(nt))
		} else {
			parent.Insert(seg, nt)
		}
		return true, nil
	}

	switch c := child.(type) {
	case *tomldoc.Table:
		if h.aot {
			return false, pathError(ErrTypeMismatch, at, "%q is a table, not an array of tables", seg)
		}
		var (
			changed bool
			err     error
		)
		if h.dotted != nil {
			changed, err = h.addDotted(c, 0)
		} else {
			changed, err = h.merge(c)
		}
		if err != nil {
			return false, err
		}
		if c.IsDotted() {
			c.SetDotted(false)
			changed = true
		}
		return changed, nil

	case *tomldoc.ArrayOfTables:
		if !h.aot {
			return false, pathError(ErrTypeMismatch, at, "%q is an array of tables; end the header path with %s to append", seg, ArrayOfTablesSentinel)
		}
		nt, err := h.build()
		if err != nil {
			return false, err
		}
		c.Push(nt)
		return true, nil

	default:
		return false, pathError(ErrTypeMismatch, at, "cannot replace a %s with a table", describe(child))
	}
}

// build makes the detached table a header add installs.
func (h *headerAdd) build() (*tomldoc.Table, error) {
	if h.dotted != nil {
		nt := tomldoc.NewTable()
		if _, err := h.addDotted(nt, 0); err != nil {
			return nil, err
		}
		return nt, nil
	}
	it, ok := h.value.(*tomldoc.InlineTable)
	if !ok {
		return nil, pathError(ErrTypeMismatch, h.header, "a table header needs an object value, not %s", describe(h.value))
	}
	return it.IntoTable(), nil
}

// merge overwrites the keys of an existing header table with the members
// of the object value.
func (h *headerAdd) merge(t *tomldoc.Table) (bool, error) {
	it, ok := h.value.(*tomldoc.InlineTable)
	if !ok {
		return false, pathError(ErrTypeMismatch, h.header, "a table header needs an object value, not %s", describe(h.value))
	}
	changed := false
	for _, k := range it.Keys() {
		v, _ := it.Get(k)
		old, exists := t.Get(k)
		if h.e.unchanged(old, exists, v) {
			continue
		}
		t.Insert(k, v)
		changed = true
	}
	return changed, nil
}

// addDotted places the value under the dotted path inside t.
func (h *headerAdd) addDotted(t *tomldoc.Table, i int) (bool, error) {
	seg := h.dotted[i]
	at := append(append([]string(nil), h.header...), h.dotted[:i+1]...)
	final := i == len(h.dotted)-1
	child, ok := t.Get(seg)
	if ok && child.Kind() == tomldoc.KindAbsent {
		ok = false
	}

	if !ok {
		if !final {
			nt := tomldoc.NewTable()
			if _, err := h.addDotted(nt, i+1); err != nil {
				return false, err
			}
			nt.SetDotted(true)
			t.Insert(seg, nt)
			return true, nil
		}
		if h.appendArray {
			v, ok := h.value.(tomldoc.Value)
			if !ok {
				return false, pathError(ErrTypeMismatch, at, "%s cannot be an array element", describe(h.value))
			}
			t.Insert(seg, tomldoc.NewArray(v))
			return true, nil
		}
		t.Insert(seg, h.value)
		return true, nil
	}

	switch c := child.(type) {
	case *tomldoc.Table:
		if !final {
			return h.addDotted(c, i+1)
		}
		if h.appendArray {
			return false, pathError(ErrTypeMismatch, at, "%q is a table, not an array", seg)
		}
		return h.overwrite(t, seg, child)

	case *tomldoc.ArrayOfTables:
		return false, pathError(ErrTypeMismatch, at, "cannot add a key under an array of tables")

	case *tomldoc.Array:
		switch {
		case !final:
			return false, pathError(ErrTypeMismatch, at, "cannot add a key under an array")
		case h.appendArray:
			v, ok := h.value.(tomldoc.Value)
			if !ok {
				return false, pathError(ErrTypeMismatch, at, "%s cannot be an array element", describe(h.value))
			}
			c.Push(v)
			return true, nil
		}
		return h.overwrite(t, seg, child)

	default:
		switch {
		case !final:
			return false, pathError(ErrTypeMismatch, at, "cannot add a key under a %s", describe(child))
		case h.appendArray:
			return false, pathError(ErrTypeMismatch, at, "cannot append to a %s", describe(child))
		}
		return h.overwrite(t, seg, child)
	}
}

func (h *headerAdd) overwrite(t *tomldoc.Table, seg string, old tomldoc.Node) (bool, error) {
	if h.e.unchanged(old, true, h.value) {
		return false, nil
	}
	t.Insert(seg, h.value)
	return true, nil
}
