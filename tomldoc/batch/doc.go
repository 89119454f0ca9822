// Package batch applies ordered lists of edits to a document file.
//
// # Overview
//
// A Plan is a list of operations (add, remove, get, test, copy, move)
// addressed by slash-delimited paths. A Session runs a plan against one
// parsed document; ApplyFile wraps that in a locked read, parse, apply and
// write of a file; Serve runs the line protocol on top of ApplyFile.
//
// # Failure semantics
//
// Operations that can change the document stop the plan on their first
// error, and nothing is written for that plan. A get that fails yields a
// null result and the plan continues. A test whose value differs from the
// expected one fails like a mutation.
//
// # Wire formats
//
// ParseJSON reads the native operation list:
//
//	[{"op":"add","table_header_path":"tool/uv/index/[[]]","value":"{\"name\":\"cpu\"}"}]
//
// ParsePatch reads an RFC 6902 JSON Patch:
//
//	[{"op":"add","path":"/tool/uv/sources/torch/-","value":{"index":"cpu"}}]
//
// Response frames a Result as one JSON line with status, results and an
// optional message and output.
package batch
