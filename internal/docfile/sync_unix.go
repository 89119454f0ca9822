//go:build linux || freebsd

package docfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. fdatasync is sufficient here; the full flag
// has no stronger equivalent.
func syncFile(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
