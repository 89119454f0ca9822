package batch

import (
	"log/slog"

	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

// Options configures how a plan is applied and persisted.
//
// Use DefaultOptions() for the behavior of the serve loop.
type Options struct {
	// Edit tunes the editing engine (index clamping, skip-unchanged).
	Edit edit.Options

	// DryRun applies the plan in memory and never writes the file.
	DryRun bool

	// ReturnOutput returns the edited document in Result.Output instead of
	// writing the file.
	ReturnOutput bool

	// Validate re-parses the edited document before writing it and refuses
	// to write invalid output.
	// Default: true
	Validate bool

	// Sync flushes the file to stable storage after writing.
	// Default: true
	Sync bool

	// Logger receives one debug record per batch and a warning per failed
	// get. Nil uses logger.L.
	Logger *slog.Logger
}

// DefaultOptions returns validating, syncing options with skip-unchanged
// adds.
func DefaultOptions() Options {
	return Options{
		Edit:     edit.DefaultOptions(),
		Validate: true,
		Sync:     true,
	}
}

// persists reports whether a changed document is written back.
func (o Options) persists() bool {
	return !o.DryRun && !o.ReturnOutput
}
