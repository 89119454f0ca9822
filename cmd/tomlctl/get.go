package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
)

var getOutput string

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVarP(&getOutput, "output", "o", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print a value as JSON or YAML",
		Long: `The get command prints the value at a path. Without a path the whole
document is printed. A missing path is an error.

Example:
  tomlctl get pyproject.toml project/version
  tomlctl get .replit env --output yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	printVerbose("Reading %q from %s\n", path, args[0])

	raw, err := tomlfile.Get(args[0], path)
	if err != nil {
		return fmt.Errorf("failed to get %q: %w", path, err)
	}
	format := getOutput
	if jsonOut {
		format = "json"
	}
	return writeValue(os.Stdout, raw, format)
}
