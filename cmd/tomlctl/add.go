package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

var (
	addHeader     string
	addDotted     string
	addClampIndex bool
	addDryRun     bool
	addBackup     bool
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVar(&addHeader, "header", "", "Table header path (ends in [[]] to append to an array of tables)")
	cmd.Flags().StringVar(&addDotted, "dotted", "", "Dotted key path inside the header table (ends in [] to push onto an array)")
	cmd.Flags().BoolVar(&addClampIndex, "clamp-index", false, "Treat array indices past the end as appends")
	cmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Print the edited document instead of writing it")
	cmd.Flags().BoolVar(&addBackup, "backup", false, "Create <file>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file> [path] <json-value>",
		Short: "Add or replace a value",
		Long: `The add command stores a JSON value at a slash-delimited path, creating
missing tables and arrays on the way. Numeric segments index arrays; an index
equal to the array length appends.

With --header the location is given as block tables plus optional dotted keys
(--dotted, or the path argument).

Example:
  tomlctl add pyproject.toml tool/ruff/line-length 100
  tomlctl add .replit env '{"PATH": "${VIRTUAL_ENV}/bin"}'
  tomlctl add pyproject.toml --header 'tool/uv/index/[[]]' '{"name": "cpu", "url": "https://download.pytorch.org/whl/cpu"}'
  tomlctl add pyproject.toml --header tool/uv --dotted 'sources/torch/[]' '{"index": "cpu"}'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
	return cmd
}

func runAdd(args []string) error {
	file, value := args[0], args[len(args)-1]
	path := ""
	if len(args) == 3 {
		path = args[1]
	}
	if path == "" && addHeader == "" {
		return fmt.Errorf("a path or --header is required")
	}

	plan := batch.NewPlan()
	if addHeader != "" {
		dotted := addDotted
		if dotted == "" {
			dotted = path
		}
		plan.AddUnderHeader(addHeader, dotted, value)
	} else {
		plan.Add(path, value)
	}

	printVerbose("Applying to %s:\n%s", file, plan)
	return applyPlan(file, plan, addDryRun, &tomlfile.Options{
		ClampIndex:   addClampIndex,
		CreateBackup: addBackup,
	})
}

// applyPlan writes plan to file, or prints the edited document for a dry
// run.
func applyPlan(file string, plan *batch.Plan, dryRun bool, opts *tomlfile.Options) error {
	ctx := context.Background()
	if dryRun {
		_, after, err := tomlfile.Preview(ctx, file, plan, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, after)
		return nil
	}

	res, err := tomlfile.Apply(ctx, file, plan, opts)
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, plan, res)
}
