// Package tomldoc is a format-preserving model of TOML documents.
//
// # Overview
//
// Parse reads a document into a tree of nodes and Document.String prints it
// back. Everything that is not edited is reproduced byte for byte: comments,
// blank lines, indentation, key order, literal spellings, inline versus
// block tables, and dotted keys versus [headers].
//
// # Node Shapes
//
// The tree is built from a closed set of node types:
//
//   - *Table: a block table (the root, a [header] section, an array-of-tables
//     element, or a table written with dotted keys)
//   - *InlineTable: a { key = value } table, only valid as a value
//   - *Array: a sequence of values
//   - *ArrayOfTables: a sequence of tables under repeated [[headers]]
//   - *Scalar: a string, integer, float, boolean or date/time
//   - Absent: a key that holds nothing
//
// *Scalar, *Array and *InlineTable implement Value.
//
// # Editing
//
//	doc, err := tomldoc.Parse(src)
//	env, _ := doc.Root().Get("env")
//	env.(*tomldoc.Table).Insert("DEBUG", tomldoc.NewString("1"))
//	out := doc.String()
//
// New nodes print with canonical spacing. A table created by an edit prints
// right after the section that precedes it in the tree.
package tomldoc
