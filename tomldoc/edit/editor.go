package edit

import (
	"log/slog"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/joshuapare/tomlkit/internal/logger"
	"github.com/joshuapare/tomlkit/tomldoc"
)

// Options tunes an Editor.
type Options struct {
	// ClampIndex turns an add at an index past the end of an array into an
	// append instead of failing with ErrBadIndex. It applies to the final
	// segment only; intermediate hops never clamp.
	ClampIndex bool

	// SkipUnchanged leaves an existing node, and its formatting, alone when
	// an add would replace it with a JSON-equal value. Such an add does not
	// mark the document changed.
	SkipUnchanged bool

	// Logger receives debug records for each operation. Nil uses logger.L.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the batch driver and the CLI.
func DefaultOptions() Options {
	return Options{SkipUnchanged: true}
}

// AddRequest describes one add.
//
// With TableHeaderPath empty, Path addresses the new node directly. With it
// set, the location is split into block tables (TableHeaderPath) and dotted
// keys inside the last of them (DottedPath, or Path when DottedPath is
// empty). A trailing "[[]]" segment on the header path appends to an array
// of tables; a trailing "[]" segment on the dotted path pushes onto the
// array already stored at that key.
type AddRequest struct {
	Path            string
	TableHeaderPath string
	DottedPath      string
	Value           string // JSON text
}

// Editor applies edits to one document and tracks whether it changed.
// It is not safe for concurrent use.
type Editor struct {
	doc     *tomldoc.Document
	opts    Options
	log     *slog.Logger
	changed bool
}

// New returns an editor over doc.
func New(doc *tomldoc.Document, opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	return &Editor{doc: doc, opts: opts, log: log}
}

// Document returns the document being edited.
func (e *Editor) Document() *tomldoc.Document { return e.doc }

// Changed reports whether any edit has modified the document.
func (e *Editor) Changed() bool { return e.changed }

// Add stores a JSON value at the location described by req.
func (e *Editor) Add(req AddRequest) error {
	var (
		changed bool
		err     error
	)
	if req.TableHeaderPath == "" {
		changed, err = e.addPath(req.Path, req.Value)
	} else {
		changed, err = e.addHeader(req)
	}
	if err != nil {
		e.log.Debug("add failed", "path", req.Path, "header", req.TableHeaderPath, "error", err)
		return err
	}
	e.log.Debug("add", "path", req.Path, "header", req.TableHeaderPath, "changed", changed)
	e.changed = e.changed || changed
	return nil
}

// unchanged reports whether storing v over old would be a no-op.
func (e *Editor) unchanged(old tomldoc.Node, exists bool, v tomldoc.Node) bool {
	if !e.opts.SkipUnchanged || !exists {
		return false
	}
	a, err := ToJSON(old)
	if err != nil {
		return false
	}
	b, err := ToJSON(v)
	if err != nil {
		return false
	}
	return jsonpatch.Equal(a, b)
}
