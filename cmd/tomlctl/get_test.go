package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
)

func TestGetCommand(t *testing.T) {
	const doc = "[env]\nHOME = \"/root\"\nPATH = \"/usr/bin\"\n\n[[ports]]\nlocalPort = 8080\n"

	tests := []struct {
		name           string
		path           string
		output         string
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "scalar",
			path:        "env/HOME",
			wantContain: []string{`"/root"`},
		},
		{
			name:        "table as json",
			path:        "env",
			wantJSON:    true,
			wantContain: []string{`"HOME": "/root"`, `"PATH": "/usr/bin"`},
		},
		{
			name:           "table as yaml",
			path:           "env",
			output:         "yaml",
			wantContain:    []string{"HOME: /root", "PATH: /usr/bin"},
			wantNotContain: []string{"{"},
		},
		{
			name:        "array of tables element",
			path:        "ports/0/localPort",
			wantContain: []string{"8080"},
		},
		{
			name:        "whole document",
			wantJSON:    true,
			wantContain: []string{`"env"`, `"ports"`},
		},
		{
			name:    "missing key",
			path:    "env/LANG",
			wantErr: true,
		},
		{
			name:    "unknown format",
			path:    "env",
			output:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			if tt.output != "" {
				getOutput = tt.output
			}

			path := writeTemp(t, "config.toml", doc)
			args := []string{path}
			if tt.path != "" {
				args = append(args, tt.path)
			}
			output, err := captureOutput(t, func() error { return runGet(args) })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestGetCommandNotFound(t *testing.T) {
	resetFlags()
	path := writeTemp(t, "config.toml", envDoc)
	_, err := captureOutput(t, func() error { return runGet([]string{path, "nix/channel"}) })
	require.True(t, errors.Is(err, tomlfile.ErrNotFound), "got %v", err)
}
