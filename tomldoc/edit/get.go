package edit

import (
	"github.com/joshuapare/tomlkit/tomldoc"
)

// Lookup returns the node at path without creating anything. The empty
// path names the root table.
func (e *Editor) Lookup(path string) (tomldoc.Node, error) {
	if path == "" {
		return e.doc.Root(), nil
	}
	return Resolve(e.doc.Root(), SplitPath(path), "", false)
}

// Get returns the node at path as JSON. A missing path fails with
// ErrNotFound, which is distinct from a value that serializes as null.
func (e *Editor) Get(path string) ([]byte, error) {
	n, err := e.Lookup(path)
	if err != nil {
		e.log.Debug("get failed", "path", path, "error", err)
		return nil, err
	}
	return ToJSON(n)
}
