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
	applyDryRun       bool
	applyReturnOutput bool
	applyClampIndex   bool
	applyBackup       bool
)

func init() {
	cmd := newApplyCmd()
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the edited document instead of writing it")
	cmd.Flags().BoolVar(&applyReturnOutput, "return-output", false, "Include the edited document in the --json response")
	cmd.Flags().BoolVar(&applyClampIndex, "clamp-index", false, "Treat array indices past the end as appends")
	cmd.Flags().BoolVar(&applyBackup, "backup", false, "Create <file>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <file> <ops-file>",
		Short: "Apply a batch of operations from a JSON or YAML file",
		Long: `The apply command runs a list of operations against the file in one
transaction. The list uses the serve protocol's operation objects and may be
written in JSON or YAML; "-" reads it from stdin.

Example:
  tomlctl apply pyproject.toml ops.json
  tomlctl apply .replit ops.yaml --dry-run
  cat ops.json | tomlctl apply .replit - --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args)
		},
	}
	return cmd
}

func runApply(args []string) error {
	plan, err := loadPlan(args[1], false)
	if err != nil {
		return err
	}
	return runPlan(args[0], plan, applyDryRun, applyReturnOutput, &tomlfile.Options{
		ClampIndex:   applyClampIndex,
		CreateBackup: applyBackup,
	})
}

// runPlan applies a loaded plan. With returnOutput the document is not
// written and is carried in the --json response instead.
func runPlan(file string, plan *batch.Plan, dryRun, returnOutput bool, opts *tomlfile.Options) error {
	printVerbose("Applying %d operation(s) to %s:\n%s", plan.Size(), file, plan)
	if !returnOutput {
		return applyPlan(file, plan, dryRun, opts)
	}

	bopts := batch.DefaultOptions()
	bopts.Edit.ClampIndex = opts.ClampIndex
	bopts.ReturnOutput = true
	res, err := batch.ApplyFile(context.Background(), file, plan, bopts)
	if jsonOut {
		resp, rerr := batch.Response(res, err)
		if rerr != nil {
			return rerr
		}
		fmt.Fprintf(os.Stdout, "%s\n", resp)
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, *res.Output)
	return nil
}
