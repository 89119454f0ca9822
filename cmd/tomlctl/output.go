package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

var (
	addedColor   = color.New(color.FgGreen).SprintFunc()
	removedColor = color.New(color.FgRed).SprintFunc()
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	okColor      = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// setupColor turns colors off for --no-color and when stdout is not a
// terminal.
func setupColor() {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// writeValue prints a JSON value in the requested format: "json" (indented)
// or "yaml".
func writeValue(w io.Writer, raw []byte, format string) error {
	switch format {
	case "", "json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	case "yaml":
		out, err := yaml.JSONToYAML(raw)
		if err != nil {
			return fmt.Errorf("convert to yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// writeResult prints the outcome of a batch: the protocol response with
// --json, otherwise one line per operation.
func writeResult(w io.Writer, plan *batch.Plan, res batch.Result) error {
	if jsonOut {
		resp, err := batch.Response(res, nil)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", resp)
		return err
	}
	if quiet {
		return nil
	}
	for i, r := range res.Results {
		op := plan.Ops[i]
		if op.Type.Mutating() || op.Type == batch.OpTest {
			fmt.Fprintf(w, "%s %s %s\n", okColor("✓"), op.Type, op.Target())
			continue
		}
		fmt.Fprintf(w, "%s %s %s =\n", okColor("✓"), op.Type, op.Target())
		if err := writeValue(w, r, "json"); err != nil {
			return err
		}
	}
	switch {
	case res.Persisted:
		fmt.Fprintln(w, "Document written.")
	case res.Changed:
		fmt.Fprintln(w, "Document changed (not written).")
	default:
		fmt.Fprintln(w, "No changes.")
	}
	return nil
}

// writeDiff prints a line diff between two documents. Unchanged lines are
// shown with two spaces, removed lines with "-" and added lines with "+".
func writeDiff(w io.Writer, name, before, after string) bool {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	changed := false
	fmt.Fprintln(w, headerColor("--- "+name))
	fmt.Fprintln(w, headerColor("+++ "+name+" (edited)"))
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint, changed = "+ ", addedColor, true
		case diffmatchpatch.DiffDelete:
			prefix, paint, changed = "- ", removedColor, true
		}
		for _, line := range splitLines(d.Text) {
			fmt.Fprintln(w, paint(prefix+line))
		}
	}
	return changed
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
