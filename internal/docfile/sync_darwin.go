//go:build darwin

package docfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. With full set it uses F_FULLFSYNC so the data
// also leaves the drive cache.
func syncFile(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
