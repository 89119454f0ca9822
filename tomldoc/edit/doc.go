// Package edit applies path-addressed edits to a parsed document.
//
// # Overview
//
// Locations are addressed by slash-separated paths. A segment names a key
// of a table or inline table, or an index into an array or array of
// tables:
//
//	foo/bar        key "bar" of table "foo"
//	foo/arr/1/x    key "x" of the second table in array of tables "foo.arr"
//	deps/2         third element of array "deps"
//
// Values travel as JSON. FromJSON converts a JSON value into a node, as an
// inline value or as block tables depending on where it will live, and
// ToJSON converts any node back.
//
// # Editing
//
// An Editor owns one document for the duration of a batch:
//
//	doc, err := tomldoc.Parse(src)
//	if err != nil {
//		return err
//	}
//	ed := edit.New(doc, edit.DefaultOptions())
//	if err := ed.Add(edit.AddRequest{Path: "run", Value: `"make"`}); err != nil {
//		return err
//	}
//	if err := ed.Remove("env/DEBUG"); err != nil {
//		return err
//	}
//	out, err := ed.Get("env")
//
// Add creates missing parents on the way. A missing key followed by a
// numeric segment becomes an array of tables, any other missing key a
// table. Indices may replace an element or append at the end of an array;
// anything further out fails with ErrBadIndex unless Options.ClampIndex is
// set. Remove of a path that does not exist succeeds without changing the
// document.
//
// # Header Mode
//
// AddRequest.TableHeaderPath places a value under block tables with the
// remaining keys written in dotted form:
//
//	TableHeaderPath: "tool/uv/index/[[]]", Value: `{"name": "cpu"}`
//	    appends [[tool.uv.index]] with name = "cpu"
//
//	TableHeaderPath: "tool/uv", DottedPath: "sources/torch/[]", Value: `{"index": "cpu"}`
//	    pushes { index = "cpu" } onto sources.torch under [tool.uv]
//
// # Errors
//
// Failures wrap ErrNotFound, ErrTypeMismatch, ErrBadIndex, ErrConversion
// or ErrEmptyPath in a *PathError naming the path prefix that failed. A
// failed edit leaves the document as it was.
package edit
