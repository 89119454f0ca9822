package tomlfile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/tomlkit/internal/docfile"
	"github.com/joshuapare/tomlkit/tomldoc"
	"github.com/joshuapare/tomlkit/tomldoc/batch"
	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

// Errors returned by the editing engine, for errors.Is checks.
var (
	ErrNotFound     = edit.ErrNotFound
	ErrTypeMismatch = edit.ErrTypeMismatch
	ErrBadIndex     = edit.ErrBadIndex
	ErrConversion   = edit.ErrConversion
)

// Add stores the JSON value at key in the file at path, creating the file
// and any missing tables.
//
// Example:
//
//	err := tomlfile.Add("pyproject.toml", "project/dependencies/2", `"rich"`, nil)
func Add(path, key, value string, opts *Options) error {
	plan := batch.NewPlan()
	plan.Add(key, value)
	_, err := Apply(context.Background(), path, plan, opts)
	return err
}

// AddUnderHeader stores the JSON value in header mode: header names block
// tables ("tool/uv/index/[[]]" appends to an array of tables) and dotted
// names keys inside the last of them ("sources/torch/[]" pushes onto an
// existing array).
func AddUnderHeader(path, header, dotted, value string, opts *Options) error {
	plan := batch.NewPlan()
	plan.AddUnderHeader(header, dotted, value)
	_, err := Apply(context.Background(), path, plan, opts)
	return err
}

// Remove deletes key from the file at path. Removing a key that does not
// exist succeeds without writing.
func Remove(path, key string, opts *Options) error {
	plan := batch.NewPlan()
	plan.Remove(key)
	_, err := Apply(context.Background(), path, plan, opts)
	return err
}

// Get returns the node at key as JSON. The empty key returns the whole
// document. A missing key fails with ErrNotFound.
func Get(path, key string) (json.RawMessage, error) {
	f, err := docfile.Open(path, docfile.Options{})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := tomldoc.Parse(f.Text())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return edit.New(doc, edit.Options{}).Get(key)
}

// Apply runs plan against the file at path and writes the result if the
// document changed. See batch.ApplyFile.
func Apply(ctx context.Context, path string, plan *batch.Plan, opts *Options) (batch.Result, error) {
	if opts.backup() && planMutates(plan) {
		if err := backupFile(path); err != nil {
			return batch.Result{}, err
		}
	}
	return batch.ApplyFile(ctx, path, plan, opts.batchOptions())
}

// ApplyPatch applies an RFC 6902 JSON Patch to the file at path.
func ApplyPatch(ctx context.Context, path string, patch []byte, opts *Options) (batch.Result, error) {
	plan, err := batch.ParsePatch(patch)
	if err != nil {
		return batch.Result{}, err
	}
	return Apply(ctx, path, plan, opts)
}

// Preview runs plan against the file at path without writing it and
// returns the document text before and after.
func Preview(ctx context.Context, path string, plan *batch.Plan, opts *Options) (before, after string, err error) {
	f, err := docfile.Open(path, docfile.Options{})
	if err != nil {
		return "", "", err
	}
	before = f.Text()
	if err := f.Close(); err != nil {
		return "", "", err
	}

	res, err := batch.ApplyText(ctx, before, plan, opts.batchOptions())
	if err != nil {
		return before, "", err
	}
	return before, *res.Output, nil
}

func planMutates(plan *batch.Plan) bool {
	for _, op := range plan.Ops {
		if op.Type.Mutating() {
			return true
		}
	}
	return false
}
