package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/pkg/tomlfile"
)

var (
	patchDryRun bool
	patchBackup bool
)

func init() {
	cmd := newPatchCmd()
	cmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Print the edited document instead of writing it")
	cmd.Flags().BoolVar(&patchBackup, "backup", false, "Create <file>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file> <patch-file>",
		Short: "Apply an RFC 6902 JSON Patch",
		Long: `The patch command applies a JSON Patch document (RFC 6902) to the file.
JSON Pointers map onto table keys and array indices; "-" appends to an array.
The patch may be written in JSON or YAML; "-" reads it from stdin.

Example:
  tomlctl patch pyproject.toml changes.json
  echo '[{"op":"replace","path":"/project/version","value":"0.2.0"}]' | tomlctl patch pyproject.toml -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(args)
		},
	}
	return cmd
}

func runPatch(args []string) error {
	plan, err := loadPlan(args[1], true)
	if err != nil {
		return err
	}
	return runPlan(args[0], plan, patchDryRun, false, &tomlfile.Options{CreateBackup: patchBackup})
}
