package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/internal/logger"
	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

var (
	serveDryRun       bool
	serveReturnOutput bool
	serveClampIndex   bool
)

func init() {
	cmd := newServeCmd()
	cmd.Flags().BoolVar(&serveDryRun, "dry-run", false, "Apply batches in memory only")
	cmd.Flags().BoolVar(&serveReturnOutput, "return-output", false, "Return the edited document instead of writing it")
	cmd.Flags().BoolVar(&serveClampIndex, "clamp-index", false, "Treat array indices past the end as appends")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Apply JSON batches read line by line from stdin",
		Long: `The serve command reads one JSON array of operations per line from stdin,
applies it to the file and writes one JSON response line to stdout.

Each operation is {"op": "add"|"remove"|"get", "path": ..., "value": ...,
"table_header_path": ..., "dotted_path": ...}; add values are JSON text.
Responses are {"status": "success"|"error", "results": [...], "message": ...}.
The file is re-read for every line.

Example:
  echo '[{"op":"add","path":"env/PATH","value":"\"/usr/bin\""}]' | tomlctl serve .replit
  tomlctl serve pyproject.toml --return-output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), os.Stdin, os.Stdout, args)
		},
	}
	return cmd
}

func runServe(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := batch.DefaultOptions()
	opts.Edit.ClampIndex = serveClampIndex
	opts.DryRun = serveDryRun
	opts.ReturnOutput = serveReturnOutput
	opts.Logger = logger.L

	printVerbose("Serving %s\n", args[0])
	return batch.Serve(ctx, in, out, args[0], opts)
}
