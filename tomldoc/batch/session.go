package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/joshuapare/tomlkit/internal/logger"
	"github.com/joshuapare/tomlkit/tomldoc"
	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

var (
	// ackResult is the result entry of a successful mutating operation.
	ackResult = json.RawMessage(`"ok"`)

	// nullResult is the result entry of a get that found nothing.
	nullResult = json.RawMessage(`null`)
)

// Result reports the outcome of applying a plan.
type Result struct {
	// Results holds one JSON entry per executed operation, in order.
	Results []json.RawMessage

	// Applied counts the executed operations by kind.
	Applied Applied

	// Changed is true when an operation modified the document.
	Changed bool

	// Persisted is true when the edited document was written back.
	Persisted bool

	// Output is the edited document when it was requested instead of
	// being written.
	Output *string
}

// Session applies plans to one in-memory document. Operations run in
// order and each sees the effects of the ones before it.
//
// A Session is not safe for concurrent use.
type Session struct {
	ed  *edit.Editor
	log *slog.Logger
}

// NewSession creates a session editing doc.
func NewSession(doc *tomldoc.Document, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	eo := opts.Edit
	if eo.Logger == nil {
		eo.Logger = log
	}
	return &Session{ed: edit.New(doc, eo), log: log}
}

// Document returns the document being edited.
func (s *Session) Document() *tomldoc.Document { return s.ed.Document() }

// Apply runs plan. The first failing add, remove, copy, move or test stops
// the plan and is returned as an *OpError together with the results of the
// operations before it. A failing get records null and the plan goes on.
func (s *Session) Apply(ctx context.Context, plan *Plan) (Result, error) {
	var res Result
	res.Results = make([]json.RawMessage, 0, plan.Size())

	for i, op := range plan.Ops {
		if err := ctx.Err(); err != nil {
			return s.finish(res), err
		}

		entry, err := s.apply(op, &res.Applied)
		if err != nil && op.Type == OpGet {
			s.log.Warn("get failed, returning null", "index", i, "path", op.Path, "error", err)
			entry, err = nullResult, nil
		}
		if err != nil {
			return s.finish(res), &OpError{Index: i, Op: op.Type, Path: op.Target(), Err: err}
		}
		res.Results = append(res.Results, entry)
	}
	return s.finish(res), nil
}

func (s *Session) finish(res Result) Result {
	res.Changed = s.ed.Changed()
	return res
}

func (s *Session) apply(op Op, applied *Applied) (json.RawMessage, error) {
	switch op.Type {
	case OpAdd:
		req := edit.AddRequest{
			Path:            op.Path,
			TableHeaderPath: op.TableHeaderPath,
			DottedPath:      op.DottedPath,
			Value:           op.Value,
		}
		if op.Append {
			var err error
			if req.Path, req.Value, err = s.appendTarget(op.Path, op.Value); err != nil {
				return nil, err
			}
		}
		if err := s.ed.Add(req); err != nil {
			return nil, err
		}
		applied.Added++
		return ackResult, nil

	case OpRemove:
		if err := s.ed.Remove(op.Path); err != nil {
			return nil, err
		}
		applied.Removed++
		return ackResult, nil

	case OpGet:
		v, err := s.ed.Get(op.Path)
		if err != nil {
			return nil, err
		}
		applied.Read++
		return v, nil

	case OpTest:
		got, err := s.ed.Get(op.Path)
		if err != nil {
			return nil, err
		}
		if !jsonpatch.Equal(got, []byte(op.Value)) {
			return nil, fmt.Errorf("%w: found %s, want %s", ErrTestFailed, got, op.Value)
		}
		applied.Read++
		return ackResult, nil

	case OpCopy, OpMove:
		return s.transfer(op, applied)

	default:
		return nil, fmt.Errorf("%w: unknown operation type %d", ErrMalformedInput, op.Type)
	}
}

// transfer implements copy and move: the source is read as JSON and added
// at the target, after the source is removed for a move.
func (s *Session) transfer(op Op, applied *Applied) (json.RawMessage, error) {
	v, err := s.ed.Get(op.From)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", op.From, err)
	}
	if op.Type == OpMove {
		if op.Path == op.From && !op.Append {
			applied.Added++
			applied.Removed++
			return ackResult, nil
		}
		if isWithin(op.Path, op.From) {
			return nil, fmt.Errorf("%w: cannot move %s into itself", edit.ErrTypeMismatch, op.From)
		}
		if err := s.ed.Remove(op.From); err != nil {
			return nil, err
		}
		applied.Removed++
	}

	path, value := op.Path, string(v)
	if op.Append {
		if path, value, err = s.appendTarget(op.Path, value); err != nil {
			return nil, err
		}
	}
	if err := s.ed.Add(edit.AddRequest{Path: path, Value: value}); err != nil {
		return nil, err
	}
	applied.Added++
	return ackResult, nil
}

// appendTarget turns an append to the array at path into a plain add: at
// the slot after the last element, or of a one-element array when nothing
// is stored at path yet.
func (s *Session) appendTarget(path, value string) (string, string, error) {
	n, err := s.ed.Lookup(path)
	if errors.Is(err, edit.ErrNotFound) {
		return path, "[" + value + "]", nil
	}
	if err != nil {
		return "", "", err
	}
	switch a := n.(type) {
	case *tomldoc.Array:
		return join(path, strconv.Itoa(a.Len())), value, nil
	case *tomldoc.ArrayOfTables:
		return join(path, strconv.Itoa(a.Len())), value, nil
	default:
		return "", "", fmt.Errorf("%w: cannot append to %s at %q", edit.ErrTypeMismatch, n.Kind(), path)
	}
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + edit.Separator + seg
}

// isWithin reports whether path lies strictly below parent.
func isWithin(path, parent string) bool {
	return len(path) > len(parent) && path[:len(parent)] == parent && path[len(parent):len(parent)+1] == edit.Separator
}
