package batch

import (
	"context"
	"fmt"

	"github.com/joshuapare/tomlkit/internal/docfile"
	"github.com/joshuapare/tomlkit/tomldoc"
)

// ApplyFile applies plan to the document stored at path.
//
// The file is locked, read and parsed; a file that does not exist reads as
// an empty document. The plan runs against that private copy. If an
// operation modified the document and the plan succeeded, the document is
// written back while the lock is still held, unless opts asks for a dry run
// or for the output to be returned instead.
//
// On a failed plan nothing is written and the returned Result holds the
// entries of the operations that ran before the failure.
//
// Example:
//
//	plan := batch.NewPlan()
//	plan.Add("tool/ruff/line-length", "100")
//	res, err := batch.ApplyFile(ctx, "pyproject.toml", plan, batch.DefaultOptions())
func ApplyFile(ctx context.Context, path string, plan *Plan, opts Options) (Result, error) {
	f, err := docfile.Open(path, docfile.Options{Validate: opts.Validate, Sync: opts.Sync})
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	doc, err := tomldoc.Parse(f.Text())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrMalformedInput, path, err)
	}

	sess := NewSession(doc, opts)
	res, err := sess.Apply(ctx, plan)
	if err != nil {
		return res, err
	}

	if opts.ReturnOutput {
		out := doc.String()
		res.Output = &out
	}
	if res.Changed && opts.persists() {
		if err := f.Commit(doc.String()); err != nil {
			return res, fmt.Errorf("write %s: %w", path, err)
		}
		res.Persisted = true
	}
	sess.log.Debug("batch applied",
		"path", path,
		"ops", plan.Size(),
		"changed", res.Changed,
		"persisted", res.Persisted)
	return res, nil
}

// ApplyText applies plan to the document src and returns the edited text
// in Result.Output. Nothing is read from or written to disk.
func ApplyText(ctx context.Context, src string, plan *Plan, opts Options) (Result, error) {
	doc, err := tomldoc.Parse(src)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	res, err := NewSession(doc, opts).Apply(ctx, plan)
	if err != nil {
		return res, err
	}
	out := doc.String()
	res.Output = &out
	return res, nil
}
