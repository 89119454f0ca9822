package tomlfile

import (
	"github.com/joshuapare/tomlkit/tomldoc/batch"
	"github.com/joshuapare/tomlkit/tomldoc/edit"
)

// Options controls how a file is edited. A nil *Options uses the
// defaults: strict indices, unchanged values left alone, validated and
// synced writes, no backup.
type Options struct {
	// ClampIndex turns an add past the end of an array into an append.
	ClampIndex bool

	// KeepFormattingOnEqual leaves a value that is re-added with an equal
	// value untouched, including its formatting. Nil means true.
	KeepFormattingOnEqual *bool

	// CreateBackup copies the file to <path>.bak before it is modified.
	CreateBackup bool

	// NoValidate skips re-parsing the output before it is written.
	NoValidate bool

	// NoSync skips flushing the file to stable storage.
	NoSync bool
}

// batchOptions maps opts to the batch layer.
func (o *Options) batchOptions() batch.Options {
	bo := batch.DefaultOptions()
	if o == nil {
		return bo
	}
	bo.Edit = edit.Options{
		ClampIndex:    o.ClampIndex,
		SkipUnchanged: o.KeepFormattingOnEqual == nil || *o.KeepFormattingOnEqual,
	}
	bo.Validate = !o.NoValidate
	bo.Sync = !o.NoSync
	return bo
}

func (o *Options) backup() bool {
	return o != nil && o.CreateBackup
}
