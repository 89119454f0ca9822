package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

var (
	removeDryRun bool
	removeBackup bool
)

func init() {
	cmd := newRemoveCmd()
	cmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Print the edited document instead of writing it")
	cmd.Flags().BoolVar(&removeBackup, "backup", false, "Create <file>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <file> <path>...",
		Aliases: []string{"rm"},
		Short:   "Remove keys or array elements",
		Long: `The remove command deletes each path in order. Paths that do not exist
are skipped; an index outside an existing array is an error.

Example:
  tomlctl remove .replit env/PATH
  tomlctl remove pyproject.toml project/dependencies/0 tool/black`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args)
		},
	}
	return cmd
}

func runRemove(args []string) error {
	plan := batch.NewPlan()
	for _, p := range args[1:] {
		plan.Remove(p)
	}
	printVerbose("Applying to %s:\n%s", args[0], plan)
	return applyPlan(args[0], plan, removeDryRun, &tomlfile.Options{CreateBackup: removeBackup})
}
