package edit

import (
	"errors"

	"github.com/joshuapare/tomlkit/tomldoc"
)

// Remove deletes the node at path. A path that does not exist is not an
// error; an index outside an existing array is.
func (e *Editor) Remove(path string) error {
	changed, err := e.remove(path)
	if err != nil {
		e.log.Debug("remove failed", "path", path, "error", err)
		return err
	}
	e.log.Debug("remove", "path", path, "changed", changed)
	e.changed = e.changed || changed
	return nil
}

func (e *Editor) remove(path string) (bool, error) {
	parentPath, last := splitLast(SplitPath(path))
	parent, err := Resolve(e.doc.Root(), parentPath, last, false)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	at := childPath(parentPath, last)
	switch p := parent.(type) {
	case *tomldoc.Table:
		_, ok := p.Remove(last)
		return ok, nil
	case *tomldoc.InlineTable:
		_, ok := p.Remove(last)
		return ok, nil
	case *tomldoc.Array:
		idx, err := removeIndex(at, last, p.Len())
		if err != nil {
			return false, err
		}
		p.Remove(idx)
		return true, nil
	case *tomldoc.ArrayOfTables:
		idx, err := removeIndex(at, last, p.Len())
		if err != nil {
			return false, err
		}
		p.Remove(idx)
		return true, nil
	case *tomldoc.Scalar:
		return false, pathError(ErrTypeMismatch, at, "cannot remove a key from a %s", describe(p))
	default:
		return false, pathError(ErrTypeMismatch, at, "cannot remove from %s", describe(parent))
	}
}

func removeIndex(at []string, seg string, n int) (int, error) {
	idx, ok := ParseIndex(seg)
	if !ok {
		return 0, pathError(ErrBadIndex, at, "%q is not an array index", seg)
	}
	if idx >= n {
		return 0, pathError(ErrBadIndex, at, "index %d is out of range (length %d)", idx, n)
	}
	return idx, nil
}
