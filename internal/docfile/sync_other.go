//go:build !linux && !freebsd && !darwin

package docfile

import "os"

func syncFile(f *os.File, _ bool) error {
	return f.Sync()
}
