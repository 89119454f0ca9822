/*
Package tomlfile provides one-call edits of configuration files on disk.

# Quick Start

Set a key, creating the tables above it:

	err := tomlfile.Add("pyproject.toml", "tool/ruff/line-length", "100", nil)

# Basic Usage

Values are JSON text. Objects become tables (or inline tables inside
arrays and inline tables), arrays of objects become arrays of tables:

	err := tomlfile.Add(".replit", "env", `{"PATH":"${VIRTUAL_ENV}/bin"}`, nil)

Append a table under a repeated header, or push onto an array reached
through dotted keys:

	err := tomlfile.AddUnderHeader("pyproject.toml", "tool/uv/index/[[]]", "",
	    `{"name":"pytorch-cpu","url":"https://download.pytorch.org/whl/cpu"}`, nil)
	err = tomlfile.AddUnderHeader("pyproject.toml", "tool/uv", "sources/torch/[]",
	    `{"index":"pytorch-cpu"}`, nil)

Remove a key (missing keys are not an error) and read one back as JSON:

	err := tomlfile.Remove(".replit", "env/PATH", nil)
	raw, err := tomlfile.Get(".replit", "deployment")

Run several edits as one batch, written once:

	plan := batch.NewPlan()
	plan.Add("project/version", `"0.2.0"`)
	plan.Remove("project/dependencies/0")
	res, err := tomlfile.Apply(ctx, "pyproject.toml", plan, nil)

# Formatting

Edits keep comments, blank lines, key order and the spelling of untouched
values. New tables print under their own header after the section that
precedes them; new keys print after the last key of their table.
*/
package tomlfile
