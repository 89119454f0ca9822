// Package docfile reads and rewrites the document file behind a batch.
//
// A File holds an advisory lock from Open until Close, so that concurrent
// tools editing the same file serialize their read/modify/write cycles.
// A file that does not exist reads as an empty document and is created by
// the first Commit.
//
// Input may carry a UTF-8 byte order mark or be UTF-16 with a byte order
// mark; Text always returns UTF-8 and Commit writes the original encoding
// back.
package docfile
