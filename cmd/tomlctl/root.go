package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tomlkit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	noColor  bool
	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "tomlctl",
	Short: "Edit TOML configuration files without losing formatting",
	Long: `tomlctl adds, removes and reads values in TOML documents addressed by
slash-delimited paths, keeping comments, key order and table styles intact.
It can run single edits, batches of edits from a file, RFC 6902 JSON Patches,
or serve a line-oriented JSON protocol on stdin/stdout.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write structured logs to this file")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setup configures logging and colors before any command runs. Logs go to
// stderr with --verbose, or to --log-file; stdout carries command output.
func setup(_ *cobra.Command, _ []string) error {
	setupColor()

	opts := logger.Options{
		Enabled: verbose || logFile != "",
		Level:   logger.ParseLevel(logLevel),
		JSON:    logFile != "",
	}
	if verbose && logFile == "" {
		opts.Level = min(opts.Level, slog.LevelDebug)
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		opts.Writer = f
	}
	return logger.Init(opts)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, errorColor("Error: ")+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
