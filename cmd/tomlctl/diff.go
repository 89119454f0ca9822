package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
)

var diffPatch bool

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffPatch, "patch", false, "Read the operations as an RFC 6902 JSON Patch")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file> <ops-file>",
		Short: "Show what a batch would change without writing",
		Long: `The diff command applies a batch in memory and prints a line diff of the
document before and after. The file is never written.

Example:
  tomlctl diff pyproject.toml ops.json
  tomlctl diff .replit changes.json --patch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

func runDiff(args []string) error {
	plan, err := loadPlan(args[1], diffPatch)
	if err != nil {
		return err
	}
	before, after, err := tomlfile.Preview(context.Background(), args[0], plan, nil)
	if err != nil {
		return err
	}
	if before == after {
		printInfo("No changes.\n")
		return nil
	}
	writeDiff(os.Stdout, args[0], before, after)
	return nil
}
