package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffCommand(t *testing.T) {
	resetFlags()
	path := writeTemp(t, "config.toml", envDoc)
	ops := writeTemp(t, "ops.json", `[{"op": "add", "path": "env/PATH", "value": "\"/usr/bin\""}]`)

	output, err := captureOutput(t, func() error { return runDiff([]string{path, ops}) })
	require.NoError(t, err)
	assertContains(t, output, []string{
		"--- " + path,
		`  HOME = "/root"`,
		`+ PATH = "/usr/bin"`,
	})
	assertNotContains(t, output, []string{"\n- "})
	require.Equal(t, envDoc, readBack(t, path))
}

func TestDiffCommandPatch(t *testing.T) {
	resetFlags()
	diffPatch = true
	path := writeTemp(t, "config.toml", envDoc)
	patch := writeTemp(t, "patch.json", `[{"op": "replace", "path": "/env/HOME", "value": "/home"}]`)

	output, err := captureOutput(t, func() error { return runDiff([]string{path, patch}) })
	require.NoError(t, err)
	assertContains(t, output, []string{`- HOME = "/root"`, `+ HOME = "/home"`})
	require.Equal(t, envDoc, readBack(t, path))
}

func TestDiffCommandNoChanges(t *testing.T) {
	resetFlags()
	path := writeTemp(t, "config.toml", envDoc)
	ops := writeTemp(t, "ops.json", `[{"op": "add", "path": "env/HOME", "value": "\"/root\""}]`)

	output, err := captureOutput(t, func() error { return runDiff([]string{path, ops}) })
	require.NoError(t, err)
	require.Equal(t, "No changes.\n", output)
}
